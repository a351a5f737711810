package rules

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// ErrMalformedRule is returned by a TableBuilder for rules which cannot be part
// of a table.
var ErrMalformedRule = errors.New("malformed rule")

// TableBuilder is a builder type for rule tables. Rules may be defined in any
// order, and forward references are legal. References are not checked by the
// builder (use Table.Validate for that).
//
//    b := NewTableBuilder()
//    b.Rule(0).Seq(8, 11).End()              // 0: 8 11
//    b.Rule(8).Seq(42).Seq(42, 8).End()      // 8: 42 | 42 8
//    b.Rule(42).T('a')                       // 42: "a"
//
type TableBuilder struct {
	defs *treemap.Map // ID → Rule, sorted by ID
	err  error
}

// NewTableBuilder creates a builder for a rule table.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		defs: treemap.NewWith(utils.IntComparator),
	}
}

// RuleBuilder collects the alternatives of a single rule. Create one with
// TableBuilder.Rule.
type RuleBuilder struct {
	tb   *TableBuilder
	id   ID
	alts []Sequence
}

// Rule starts the definition of rule id.
func (tb *TableBuilder) Rule(id ID) *RuleBuilder {
	return &RuleBuilder{tb: tb, id: id}
}

// Define adds a complete rule to the table.
func (tb *TableBuilder) Define(id ID, r Rule) *TableBuilder {
	if tb.err != nil {
		return tb
	}
	if id < 0 || id > MaxID {
		tb.err = fmt.Errorf("%w: rule ID %d out of range 0…%d", ErrMalformedRule, id, MaxID)
		return tb
	}
	switch r.Kind {
	case Terminal:
	case Alternation:
		if len(r.Alternatives) == 0 {
			tb.err = fmt.Errorf("%w: rule %d has no alternatives", ErrMalformedRule, id)
			return tb
		}
		for _, seq := range r.Alternatives {
			if len(seq) == 0 {
				tb.err = fmt.Errorf("%w: rule %d has an empty sequence", ErrMalformedRule, id)
				return tb
			}
		}
	default:
		tb.err = fmt.Errorf("%w: rule %d is of kind %s", ErrMalformedRule, id, r.Kind)
		return tb
	}
	if _, found := tb.defs.Get(int(id)); found {
		tb.err = fmt.Errorf("%w: rule %d defined twice", ErrMalformedRule, id)
		return tb
	}
	tb.defs.Put(int(id), r)
	return tb
}

// Table returns the rule table, or the first error encountered while
// building.
func (tb *TableBuilder) Table() (*Table, error) {
	if tb.err != nil {
		return nil, tb.err
	}
	size := 0
	it := tb.defs.Iterator()
	for it.Next() { // keys are sorted; the last one is the maximum
		size = it.Key().(int) + 1
	}
	table := NewTable(size)
	it = tb.defs.Iterator()
	for it.Next() {
		table.rules[it.Key().(int)] = it.Value().(Rule)
	}
	tracer().Debugf("built rule table with %d rules in %d slots", tb.defs.Size(), size)
	return table, nil
}

// T finishes a rule as a terminal for character ch.
func (rb *RuleBuilder) T(ch byte) *TableBuilder {
	if len(rb.alts) > 0 {
		if rb.tb.err == nil {
			rb.tb.err = fmt.Errorf("%w: rule %d mixes sequences and a terminal", ErrMalformedRule, rb.id)
		}
		return rb.tb
	}
	return rb.tb.Define(rb.id, T(ch))
}

// Seq adds an alternative sequence to a rule.
func (rb *RuleBuilder) Seq(ids ...ID) *RuleBuilder {
	rb.alts = append(rb.alts, Sequence(ids))
	return rb
}

// End finishes the definition of an alternation rule.
func (rb *RuleBuilder) End() *TableBuilder {
	return rb.tb.Define(rb.id, Alt(rb.alts...))
}
