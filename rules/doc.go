/*
Package rules implements rule tables for self-referential grammars.

Building a Rule Table

A rule table is an indexed collection of production rules. Every rule is
identified by a small non-negative integer, which is used as a direct index
into the table. A rule is either a terminal, matching exactly one character,
or an alternation of sequences of other rules. Rules may refer to themselves,
directly or indirectly.

Rule tables are usually read from text (see package ruletext), but may as well
be specified using a builder object.

Example:

    b := rules.NewTableBuilder()
    b.Rule(0).Seq(1, 2).Seq(2, 1).End()   // 0: 1 2 | 2 1
    b.Rule(1).T('a')                      // 1: "a"
    b.Rule(2).T('b')                      // 2: "b"
    table, err := b.Table()

This results in the following trivial table:

   table.Dump()

   0: 1 2 | 2 1
   1: "a"
   2: "b"

Patching a Rule Table

Tables are immutable for the matcher, with one exception: single rules may be
replaced in place. This is used to switch a grammar to a self-referential
variant between two runs of a matcher:

    table.Apply(rules.SelfReferentialPatch()...)

   8: 42 | 42 8
  11: 42 31 | 42 11 31

Facts memoized by a matcher for the old table are invalid afterwards. Clients
are responsible to clear the matcher's cache (match.Matcher.Patch does both
in one step).

Static Analysis

Some simple static analysis is available for a table: checking for dangling
references, finding the rules reachable from a start rule, and finding
recursive rules. The dependency graph of a table may be exported to Graphviz's
Dot format.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rules

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ruley.rules'.
func tracer() tracing.Trace {
	return tracing.Select("ruley.rules")
}
