package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/ruley"
	"github.com/npillmayer/ruley/rules"
)

// Errors raised as panics by a matcher. They all signal internal
// inconsistencies, never a message which does not match.
var (
	ErrInvalidSpan    = errors.New("invalid span")
	ErrPartition      = errors.New("partition out of range")
	ErrUnknownVariant = errors.New("unknown rule variant")
	ErrUnitCycle      = rules.ErrUnitCycle
)

// Matcher matches messages against the rules of a rule table. A matcher is
// not safe for concurrent use; its cache is shared between all calls.
type Matcher struct {
	table      *rules.Table
	cache      *Cache
	trace      bool
	partitions int // partitions tried since last reset
}

// Option configures a matcher.
type Option func(*Matcher)

// WithCache lets a matcher use an existing cache. A nil cache is replaced by
// a new one.
func WithCache(c *Cache) Option {
	return func(m *Matcher) {
		if c != nil {
			m.cache = c
		}
	}
}

// TraceDerivation sets or clears tracing of every match attempt. The trace is
// indented by recursion depth and written at debug level.
func TraceDerivation(b bool) Option {
	return func(m *Matcher) {
		m.trace = b
	}
}

// New creates a matcher for a rule table.
func New(table *rules.Table, opts ...Option) *Matcher {
	m := &Matcher{table: table}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = NewCache()
	}
	m.cache.bind(m.table.Fingerprint())
	return m
}

// Matches decides if the span of input is derivable from rule id of table.
// Results are memoized in cache, which may be nil.
func Matches(table *rules.Table, id rules.ID, input string, span ruley.Span, cache *Cache, opts ...Option) bool {
	opts = append(opts, WithCache(cache))
	return New(table, opts...).MatchRule(id, input, span)
}

// Table returns the rule table of a matcher.
func (m *Matcher) Table() *rules.Table {
	return m.table
}

// Cache returns the cache of a matcher.
func (m *Matcher) Cache() *Cache {
	return m.cache
}

// Match decides if msg is derivable from rule 0. An empty message never
// matches, as every rule consumes at least one character. MatchRule with an
// empty span, however, will panic with ErrInvalidSpan.
func (m *Matcher) Match(msg string) bool {
	if msg == "" {
		return false
	}
	return m.MatchRule(0, msg, ruley.SpanOf(msg))
}

// MatchRule decides if the span of input is derivable from rule id.
// span must not be empty.
//
// If the rule table has been changed without resetting the matcher, the
// cache is found stale and cleared before matching.
func (m *Matcher) MatchRule(id rules.ID, input string, span ruley.Span) bool {
	if !span.Within(ruley.SpanOf(input)) {
		panic(fmt.Errorf("%w: %v outside of message of length %d", ErrInvalidSpan, span, len(input)))
	}
	m.cache.bind(m.table.Fingerprint())
	return m.match(id, input, span, 0, nil)
}

// Count returns the number of messages derivable from rule 0.
func (m *Matcher) Count(msgs []string) int {
	count := 0
	for _, msg := range msgs {
		if m.Match(msg) {
			count++
		}
	}
	tracer().Infof("%d of %d messages match", count, len(msgs))
	return count
}

// Patch replaces rules of the matcher's table and clears the cache, as facts
// derived from the old rules are no longer valid.
func (m *Matcher) Patch(patches ...rules.Patch) {
	for _, p := range patches {
		tracer().Infof("patching rule %v", p)
	}
	m.table.Apply(patches...)
	m.Reset()
}

// Reset clears the cache and the statistics, and binds the cache to the
// current version of the rule table.
func (m *Matcher) Reset() {
	m.cache.Clear()
	m.cache.bind(m.table.Fingerprint())
	m.partitions = 0
}

// Stats holds statistics about the work of a matcher.
type Stats struct {
	Hits       int // cache hits
	Misses     int // cache misses
	Entries    int // cache size
	Partitions int // partitions of spans tried
}

// Stats returns statistics since the last reset.
func (m *Matcher) Stats() Stats {
	hits, misses := m.cache.Stats()
	return Stats{
		Hits:       hits,
		Misses:     misses,
		Entries:    m.cache.Len(),
		Partitions: m.partitions,
	}
}

// --- Matching --------------------------------------------------------------

// match is the recursive workhorse. depth is the recursion depth, used for
// tracing only. chain holds the rules entered for the very same span through
// single-rule sequences.
func (m *Matcher) match(id rules.ID, input string, span ruley.Span, depth int, chain []rules.ID) bool {
	if span.IsNull() {
		panic(fmt.Errorf("%w: %v for rule %d", ErrInvalidSpan, span, id))
	}
	r := m.table.Rule(id)
	switch r.Kind {
	case rules.Terminal:
		return span.Len() == 1 && input[span.From()] == r.Char
	case rules.Alternation:
		text := span.Text(input)
		if result, found := m.cache.Lookup(id, text); found {
			return result
		}
		if m.trace {
			tracer().Debugf("%s%d: %s", indent(depth), id, text)
		}
		result := m.alternation(r, input, span, depth, append(chain, id))
		m.cache.Store(id, text, result)
		if m.trace {
			tracer().Debugf("%s=> %v", indent(depth), result)
		}
		return result
	}
	panic(fmt.Errorf("%w: rule %d is %s", ErrUnknownVariant, id, r.Kind))
}

// alternation tries the sequences of r in declaration order.
func (m *Matcher) alternation(r rules.Rule, input string, span ruley.Span,
	depth int, chain []rules.ID) bool {
	//
	for _, seq := range r.Alternatives {
		if span.Len() < len(seq) { // every element consumes at least one character
			continue
		}
		if m.sequence(seq, input, span, depth, chain) {
			return true
		}
	}
	return false
}

// sequence checks if span can be partitioned between the elements of seq.
func (m *Matcher) sequence(seq rules.Sequence, input string, span ruley.Span,
	depth int, chain []rules.ID) bool {
	//
	if len(seq) == 1 {
		for _, c := range chain {
			if c == seq[0] {
				panic(fmt.Errorf("%w: rule %d re-entered for %v via %v", ErrUnitCycle, c, span, chain))
			}
		}
		return m.match(seq[0], input, span, depth+1, chain)
	}
	p, ok := newPartition(m.table, seq, span.Len())
	if !ok {
		return false
	}
	for {
		m.partitions++
		if m.partitioned(seq, p, input, span, depth) {
			return true
		}
		if !p.next() {
			return false
		}
	}
}

// partitioned checks a single partition, from left to right.
func (m *Matcher) partitioned(seq rules.Sequence, p *partition, input string, span ruley.Span,
	depth int) bool {
	//
	offset := 0
	for i, id := range seq {
		sub := span.Sub(offset, offset+p.size(i))
		offset += p.size(i)
		if sub.IsNull() || !sub.Within(span) {
			panic(fmt.Errorf("%w: %v not within %v", ErrPartition, sub, span))
		}
		if !m.match(id, input, sub, depth+1, nil) {
			return false
		}
	}
	if offset != span.Len() {
		panic(fmt.Errorf("%w: partition covers %d of %v", ErrPartition, offset, span))
	}
	return true
}

func indent(level int) string {
	return strings.Repeat(". ", level)
}
