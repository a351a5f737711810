package rules

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

// ID identifies a rule. IDs are dense and used as direct indices into a table.
type ID int

// MaxID is the largest rule ID a table will hold. Tables are dense, so a
// single large ID would allocate a slot for every smaller one.
const MaxID ID = 1<<16 - 1

// Kind is the variant tag of a rule.
type Kind int8

// Rule variants. A table slot which has never been defined holds an
// Undefined rule.
const (
	Undefined Kind = iota
	Terminal
	Alternation
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Terminal:
		return "terminal"
	case Alternation:
		return "alternation"
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// Sequence is an ordered, non-empty concatenation of rule references.
type Sequence []ID

func (seq Sequence) String() string {
	var b bytes.Buffer
	for i, id := range seq {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

// Rule is a production rule. It is either a terminal, matching a single
// character, or an alternation of sequences. Alternatives are kept in
// declaration order.
type Rule struct {
	Kind         Kind
	Char         byte       // for terminals
	Alternatives []Sequence // for alternations
}

// T creates a terminal rule for character ch.
func T(ch byte) Rule {
	return Rule{Kind: Terminal, Char: ch}
}

// Alt creates an alternation rule from a list of sequences.
//
//    r := Alt(Sequence{42}, Sequence{42, 8})   // 42 | 42 8
//
func Alt(seqs ...Sequence) Rule {
	return Rule{Kind: Alternation, Alternatives: seqs}
}

// Seq creates an alternation rule with a single sequence.
func Seq(ids ...ID) Rule {
	return Alt(Sequence(ids))
}

// IsTerminal is a predicate.
func (r Rule) IsTerminal() bool {
	return r.Kind == Terminal
}

// IsDefined is a predicate: has this rule been defined?
func (r Rule) IsDefined() bool {
	return r.Kind != Undefined
}

// References returns all rule IDs referenced by r, in order of appearance and
// without duplicates.
func (r Rule) References() []ID {
	var refs []ID
	for _, seq := range r.Alternatives {
		for _, id := range seq {
			if !slices.Contains(refs, id) {
				refs = append(refs, id)
			}
		}
	}
	return refs
}

// Equal is a predicate: are r and other the same rule?
func (r Rule) Equal(other Rule) bool {
	if r.Kind != other.Kind || r.Char != other.Char {
		return false
	}
	if len(r.Alternatives) != len(other.Alternatives) {
		return false
	}
	for i, seq := range r.Alternatives {
		if !slices.Equal(seq, other.Alternatives[i]) {
			return false
		}
	}
	return true
}

func (r Rule) clone() Rule {
	if r.Kind != Alternation {
		return r
	}
	c := Rule{Kind: r.Kind, Alternatives: make([]Sequence, len(r.Alternatives))}
	for i, seq := range r.Alternatives {
		c.Alternatives[i] = slices.Clone(seq)
	}
	return c
}

// String returns a rule in the notation of rule definitions, without the
// leading rule number.
func (r Rule) String() string {
	switch r.Kind {
	case Terminal:
		return strconv.Quote(string(r.Char))
	case Alternation:
		var b bytes.Buffer
		for i, seq := range r.Alternatives {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(seq.String())
		}
		return b.String()
	}
	return "<" + r.Kind.String() + ">"
}

// Patch is a replacement of a single rule of a table.
type Patch struct {
	ID   ID
	Rule Rule
}

func (p Patch) String() string {
	return fmt.Sprintf("%d: %s", p.ID, p.Rule)
}

// SelfReferentialPatch returns the replacements which turn rules 8 and 11
// into loops:
//
//    8: 42 | 42 8
//   11: 42 31 | 42 11 31
//
func SelfReferentialPatch() []Patch {
	return []Patch{
		{ID: 8, Rule: Alt(Sequence{42}, Sequence{42, 8})},
		{ID: 11, Rule: Alt(Sequence{42, 31}, Sequence{42, 11, 31})},
	}
}
