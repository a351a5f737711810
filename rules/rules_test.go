package rules

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use the self-referential grammar
//
//     0: 8 11
//     8: 42 | 42 8
//    11: 42 31 | 42 11 31
//    42: "a"
//    31: "b"
//
func makeLoopTable(t *testing.T) *Table {
	b := NewTableBuilder()
	b.Rule(0).Seq(8, 11).End()
	b.Rule(8).Seq(42).Seq(42, 8).End()
	b.Rule(11).Seq(42, 31).Seq(42, 11, 31).End()
	b.Rule(42).T('a')
	b.Rule(31).T('b')
	table, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	table := makeLoopTable(t)
	tracer().SetTraceLevel(tracing.LevelDebug)
	table.Dump()
	if table.Len() != 43 {
		t.Errorf("expected table to have 43 slots, has %d", table.Len())
	}
	if table.Size() != 5 {
		t.Errorf("expected table to have 5 rules, has %d", table.Size())
	}
	if r := table.Rule(42); !r.IsTerminal() || r.Char != 'a' {
		t.Errorf("expected rule 42 to be terminal 'a', is %v", r)
	}
	if r := table.Rule(11); r.String() != "42 31 | 42 11 31" {
		t.Errorf("unexpected rule 11: %s", r)
	}
	if r := table.Rule(5); r.IsDefined() {
		t.Errorf("expected rule 5 to be undefined, is %v", r)
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	b := NewTableBuilder()
	b.Rule(1).T('a')
	b.Rule(1).T('b')
	if _, err := b.Table(); !errors.Is(err, ErrMalformedRule) {
		t.Errorf("expected duplicate definition to be rejected, err = %v", err)
	}
	b = NewTableBuilder()
	b.Rule(0).Seq(1).Seq().End()
	if _, err := b.Table(); !errors.Is(err, ErrMalformedRule) {
		t.Errorf("expected empty sequence to be rejected, err = %v", err)
	}
	b = NewTableBuilder()
	b.Rule(MaxID + 1).T('a')
	if _, err := b.Table(); !errors.Is(err, ErrMalformedRule) {
		t.Errorf("expected rule ID beyond MaxID to be rejected, err = %v", err)
	}
	b = NewTableBuilder()
	b.Rule(0).Seq(1).T('x')
	if _, err := b.Table(); !errors.Is(err, ErrMalformedRule) {
		t.Errorf("expected mixed rule to be rejected, err = %v", err)
	}
}

func TestLookupOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	table := makeLoopTable(t)
	if _, ok := table.Lookup(100); ok {
		t.Errorf("expected lookup of rule 100 to fail")
	}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUndefinedRule) {
			t.Errorf("expected panic with ErrUndefinedRule, got %v", r)
		}
	}()
	table.Rule(100)
}

func TestReplace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	b := NewTableBuilder()
	b.Rule(0).Seq(8, 11).End()
	b.Rule(8).Seq(42).End()
	b.Rule(11).Seq(42, 31).End()
	b.Rule(42).T('a')
	b.Rule(31).T('b')
	table, _ := b.Table()
	before := table.Fingerprint()
	clone := table.Clone()
	if table.Recursive(8) || table.Recursive(11) {
		t.Errorf("rules 8 and 11 should not be recursive before patching")
	}
	table.Apply(SelfReferentialPatch()...)
	if !table.Recursive(8) || !table.Recursive(11) {
		t.Errorf("rules 8 and 11 should be recursive after patching")
	}
	if table.Recursive(0) {
		t.Errorf("rule 0 should not be recursive")
	}
	if table.Fingerprint() == before {
		t.Errorf("expected fingerprint to change after patching")
	}
	if clone.Fingerprint() != before {
		t.Errorf("expected clone to be unaffected by patch")
	}
	if !table.Rule(8).Equal(Alt(Sequence{42}, Sequence{42, 8})) {
		t.Errorf("unexpected rule 8 after patch: %s", table.Rule(8))
	}
	table.Replace(50, T('c'))
	if table.Len() != 51 {
		t.Errorf("expected table to grow to 51 slots, has %d", table.Len())
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	table := makeLoopTable(t)
	if err := table.Validate(); err != nil {
		t.Errorf("expected table to be valid, err = %v", err)
	}
	table.Replace(3, Seq(7))
	if err := table.Validate(); !errors.Is(err, ErrDanglingReference) {
		t.Errorf("expected dangling reference, err = %v", err)
	}
	b := NewTableBuilder()
	b.Rule(1).T('a')
	table, _ = b.Table()
	if err := table.Validate(); !errors.Is(err, ErrNoStartRule) {
		t.Errorf("expected missing start rule, err = %v", err)
	}
}

func TestReachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	table := makeLoopTable(t)
	table.Replace(99, T('z')) // unreachable
	reach := table.Reachable(0).Sorted()
	expected := []ID{0, 8, 11, 31, 42}
	if len(reach) != len(expected) {
		t.Fatalf("expected reachable rules %v, have %v", expected, reach)
	}
	for i, id := range expected {
		if reach[i] != id {
			t.Errorf("expected reachable rules %v, have %v", expected, reach)
			break
		}
	}
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	table := makeLoopTable(t)
	g := table.DependencyGraph(0)
	if n := len(g.Nodes()); n != 5 {
		t.Errorf("expected 5 nodes, have %d", n)
	}
	// 0→8, 0→11, 8→42 (alt 0), 8→42, 8→8 (alt 1), 11→42, 11→31, 11→42, 11→11, 11→31
	if n := len(g.Edges()); n != 10 {
		t.Errorf("expected 10 edges, have %d: %v", n, g.Edges())
	}
	var buf bytes.Buffer
	if err := g.ToGraphViz(&buf); err != nil {
		t.Fatal(err)
	}
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph {") {
		t.Errorf("expected Dot output to start with digraph")
	}
	if !strings.Contains(dot, "r008 -> r008") {
		t.Errorf("expected self-loop for rule 8 in Dot output")
	}
	if !strings.Contains(dot, "lightblue") {
		t.Errorf("expected recursive rules to be colored")
	}
}

func TestIDSet(t *testing.T) {
	var set IDSet
	if set.Contains(1) {
		t.Errorf("empty set should not contain anything")
	}
	set = set.Add(3).Add(1).Add(2)
	set.Delete(2)
	if set.Contains(2) || !set.Contains(3) || set.Size() != 2 {
		t.Errorf("unexpected set content %v", set.Sorted())
	}
	if s := set.Sorted(); s[0] != 1 || s[1] != 3 {
		t.Errorf("expected sorted IDs [1 3], have %v", s)
	}
}

func TestReplaceOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.rules")
	defer teardown()
	//
	table := makeLoopTable(t)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUndefinedRule) {
			t.Errorf("expected panic with ErrUndefinedRule, got %v", r)
		}
		if table.Len() != 43 {
			t.Errorf("expected table not to grow, has %d slots", table.Len())
		}
	}()
	table.Replace(MaxID+1, T('a'))
}
