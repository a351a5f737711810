package rules

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === Reachability ==========================================================

// Reachable returns the set of rule IDs reachable from start, including start.
// References to undefined rules are included, but not followed.
func (t *Table) Reachable(start ID) IDSet {
	var seen IDSet
	seen = seen.Add(start)
	worklist := []ID{start}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		r, ok := t.Lookup(id)
		if !ok {
			continue
		}
		for _, ref := range r.References() {
			if !seen.Contains(ref) {
				seen = seen.Add(ref)
				worklist = append(worklist, ref)
			}
		}
	}
	return seen
}

// Recursive is a predicate: does rule id (directly or indirectly) refer to
// itself?
func (t *Table) Recursive(id ID) bool {
	r, ok := t.Lookup(id)
	if !ok {
		return false
	}
	for _, ref := range r.References() {
		if t.Reachable(ref).Contains(id) {
			return true
		}
	}
	return false
}

// === Dependency Graph ======================================================

// Edge is a directed edge of a dependency graph: alternative number Alt of
// rule From references rule To.
type Edge struct {
	From, To ID
	Alt      int
}

// DependencyGraph is the graph of rule references reachable from a start rule.
// Nodes are kept sorted by rule ID.
type DependencyGraph struct {
	table *Table
	start ID
	nodes *treeset.Set    // rule IDs
	edges *arraylist.List // edges between rules
}

// DependencyGraph creates the reference graph of all rules reachable from
// start.
func (t *Table) DependencyGraph(start ID) *DependencyGraph {
	g := &DependencyGraph{
		table: t,
		start: start,
		nodes: treeset.NewWith(utils.IntComparator),
		edges: arraylist.New(),
	}
	for _, id := range t.Reachable(start).Sorted() {
		g.nodes.Add(int(id))
		r, ok := t.Lookup(id)
		if !ok {
			continue
		}
		for n, seq := range r.Alternatives {
			var done IDSet
			for _, ref := range seq {
				if !done.Contains(ref) {
					done = done.Add(ref)
					g.edges.Add(Edge{From: id, To: ref, Alt: n})
				}
			}
		}
	}
	return g
}

// Nodes returns the rule IDs of the graph in increasing order.
func (g *DependencyGraph) Nodes() []ID {
	ids := make([]ID, 0, g.nodes.Size())
	for _, x := range g.nodes.Values() {
		ids = append(ids, ID(x.(int)))
	}
	return ids
}

// Edges returns all the edges of the graph.
func (g *DependencyGraph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges.Size())
	it := g.edges.Iterator()
	for it.Next() {
		edges = append(edges, it.Value().(Edge))
	}
	return edges
}

// ToGraphViz exports a dependency graph to the Graphviz Dot format.
func (g *DependencyGraph) ToGraphViz(w io.Writer) error {
	var b bytes.Buffer
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, x := range g.nodes.Values() {
		id := ID(x.(int))
		r, _ := g.table.Lookup(id)
		b.WriteString(fmt.Sprintf("r%03d [fillcolor=%s label=\"{%d | %s}\"]\n",
			id, g.nodecolor(id, r), id, forGraphviz(r)))
	}
	it := g.edges.Iterator()
	for it.Next() {
		e := it.Value().(Edge)
		b.WriteString(fmt.Sprintf("r%03d -> r%03d [label=\"%d\"]\n", e.From, e.To, e.Alt))
	}
	b.WriteString("}\n")
	_, err := w.Write(b.Bytes())
	return err
}

func (g *DependencyGraph) nodecolor(id ID, r Rule) string {
	switch {
	case !r.IsDefined():
		return "red"
	case r.IsTerminal():
		return "lightgray"
	case g.table.Recursive(id):
		return "lightblue"
	}
	return "white"
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `|`, `\|`, `{`, `\{`, `}`, `\}`, `<`, `\<`, `>`, `\>`)

func forGraphviz(r Rule) string {
	return dotEscaper.Replace(r.String())
}
