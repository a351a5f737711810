package rules

import (
	"errors"
	"fmt"
)

// ErrUndefinedRule is raised (as a panic) if a rule is looked up which is
// out of range of a table.
var ErrUndefinedRule = errors.New("undefined rule")

// ErrDanglingReference is returned by Validate if a rule references a rule
// which is not defined.
var ErrDanglingReference = errors.New("dangling rule reference")

// ErrNoStartRule is returned by Validate if rule 0 is not defined.
var ErrNoStartRule = errors.New("start rule 0 not defined")

// ErrUnitCycle is returned by Validate if rules refer to each other through
// single-rule sequences only, e.g. "1: 2" and "2: 1". Matching would not
// terminate for such rules.
var ErrUnitCycle = errors.New("cycle of single-rule sequences")

// Table is an indexed collection of rules. IDs are used as direct indices,
// thus lookup is O(1). Slots for IDs which have never been defined hold an
// Undefined rule.
//
// A table is not safe for concurrent modification, and Fingerprint memoizes
// into the table. Clients wanting to match with different versions of a
// grammar concurrently should use Clone.
type Table struct {
	rules []Rule
	stamp string // memoized fingerprint, reset by Replace
}

// NewTable creates an empty table with room for size rules.
func NewTable(size int) *Table {
	if size < 0 {
		size = 0
	}
	return &Table{rules: make([]Rule, size)}
}

// Len returns the number of slots in the table, i.e. the highest rule ID + 1.
func (t *Table) Len() int {
	return len(t.rules)
}

// Size returns the number of defined rules.
func (t *Table) Size() int {
	n := 0
	for _, r := range t.rules {
		if r.IsDefined() {
			n++
		}
	}
	return n
}

// Rule returns the rule for id. If id is out of range, Rule will panic with
// ErrUndefinedRule. Slots within range which have not been defined return a
// rule of kind Undefined.
func (t *Table) Rule(id ID) Rule {
	if id < 0 || int(id) >= len(t.rules) {
		panic(fmt.Errorf("%w: rule %d not in table of size %d", ErrUndefinedRule, id, len(t.rules)))
	}
	return t.rules[id]
}

// Lookup returns the rule for id and a flag indicating if it is defined.
// It never panics.
func (t *Table) Lookup(id ID) (Rule, bool) {
	if id < 0 || int(id) >= len(t.rules) {
		return Rule{}, false
	}
	r := t.rules[id]
	return r, r.IsDefined()
}

// Replace overwrites the table entry for id in place. If id is beyond the
// current size of t, the table grows. Replace does not validate the new rule.
// It panics with ErrUndefinedRule for IDs outside 0…MaxID.
//
// Facts derived from the table before the replacement are stale afterwards;
// it is up to the client to invalidate them.
func (t *Table) Replace(id ID, r Rule) {
	if id < 0 || id > MaxID {
		panic(fmt.Errorf("%w: cannot replace rule %d, IDs range 0…%d", ErrUndefinedRule, id, MaxID))
	}
	if int(id) >= len(t.rules) {
		grown := make([]Rule, int(id)+1)
		copy(grown, t.rules)
		t.rules = grown
	}
	tracer().Debugf("replacing rule %d: %s  ⟶  %s", id, t.rules[id], r)
	t.rules[id] = r
	t.stamp = ""
}

// Apply replaces a number of rules.
func (t *Table) Apply(patches ...Patch) {
	for _, p := range patches {
		t.Replace(p.ID, p.Rule)
	}
}

// Each calls f for every defined rule, in order of IDs.
func (t *Table) Each(f func(ID, Rule)) {
	for i, r := range t.rules {
		if r.IsDefined() {
			f(ID(i), r)
		}
	}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := NewTable(len(t.rules))
	for i, r := range t.rules {
		c.rules[i] = r.clone()
	}
	return c
}

// Validate checks that rule 0 is defined, that every reference within an
// alternation points to a defined rule, and that there are no unit cycles.
// It returns the first problem found; all dangling references are traced
// as errors.
func (t *Table) Validate() error {
	var err error
	if _, ok := t.Lookup(0); !ok {
		err = ErrNoStartRule
	}
	t.Each(func(id ID, r Rule) {
		for _, ref := range r.References() {
			if _, ok := t.Lookup(ref); !ok {
				tracer().Errorf("rule %d references undefined rule %d", id, ref)
				if err == nil {
					err = fmt.Errorf("%w: rule %d references %d", ErrDanglingReference, id, ref)
				}
			}
		}
		if err == nil && t.unitCycle(id) {
			err = fmt.Errorf("%w: rule %d", ErrUnitCycle, id)
		}
	})
	return err
}

// unitCycle is a predicate: can rule id reach itself through single-rule
// sequences only?
func (t *Table) unitCycle(id ID) bool {
	var seen IDSet
	worklist := []ID{id}
	for len(worklist) > 0 {
		top := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		r, _ := t.Lookup(top)
		for _, seq := range r.Alternatives {
			if len(seq) != 1 {
				continue
			}
			if seq[0] == id {
				return true
			}
			if !seen.Contains(seq[0]) {
				seen = seen.Add(seq[0])
				worklist = append(worklist, seq[0])
			}
		}
	}
	return false
}

// Dump is a debugging helper, tracing all rules of the table.
func (t *Table) Dump() {
	tracer().Debugf("--- rule table (%d rules) --------------------", t.Size())
	t.Each(func(id ID, r Rule) {
		tracer().Debugf("%4d: %s", id, r)
	})
	tracer().Debugf("----------------------------------------------")
}
