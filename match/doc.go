/*
Package match implements a span matcher for self-referential rule tables.

Matching a Message

A matcher decides if a message is derivable from a rule of a rule table,
usually rule 0. It works on spans, i.e. half-open windows of a message,
and recursively splits spans between the elements of rule sequences.

    m := match.New(table)
    ok := m.Match("ababbb")              // derivable from rule 0?
    n := m.Count(messages)               // number of accepted messages

Splitting Spans

For a sequence of n rules, a span has to be partitioned into n non-empty
sub-spans. Terminal rules always consume exactly one character; only the
positions of alternation rules take part in the search for a partition.
The search starts by giving all the slack to the last variable-length
position and then moves the slack, one character at a time, to the left.
Every candidate partition is checked from left to right and dropped at the
first sub-span not matching its rule.

As every element of a sequence consumes at least one character, spans strictly
shrink during recursion and matching terminates, even for rules referencing
themselves. The only exception are cycles of single-rule sequences (e.g.,
"1: 2" and "2: 1"), which are detected and reported as fatal.

Memoization

Results for alternation rules are memoized in a cache, keyed by rule and by
the content of the span, not by its position. Equal substrings at different
positions of the same or of different messages share cache entries. Results
for terminals are not cached.

If rules of a table are replaced, cached facts are stale. Use Matcher.Patch to
replace rules and clear the cache in one step.

Fatal Conditions

A matcher does not return errors: a message either matches or it does not.
Internal inconsistencies (empty spans, broken partitions, rules of unknown kind,
unit cycles) cause a panic with one of the errors ErrInvalidSpan, ErrPartition,
ErrUnknownVariant or ErrUnitCycle.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package match

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ruley.match'.
func tracer() tracing.Trace {
	return tracing.Select("ruley.match")
}
