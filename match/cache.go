package match

import (
	"strings"

	"github.com/npillmayer/ruley/rules"
)

// key addresses a memoized fact by content, not by position.
type key struct {
	rule rules.ID
	text string
}

// Cache memoizes match results for (rule, substring) pairs. A cache is valid
// for one version of a rule table only; it is stamped with the fingerprint of
// the table it has been filled under. It is not safe for concurrent use.
type Cache struct {
	entries map[key]bool
	stamp   string // fingerprint of the rule table, "" if unbound
	hits    int
	misses  int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[key]bool)}
}

// Lookup returns a memoized result for rule id and text, together with a flag
// indicating if there has been an entry.
func (c *Cache) Lookup(id rules.ID, text string) (result bool, found bool) {
	result, found = c.entries[key{rule: id, text: text}]
	if found {
		c.hits++
	} else {
		c.misses++
	}
	return
}

// Store memoizes a result. The cache keeps its own copy of text, never a
// reference into the message text originates from.
func (c *Cache) Store(id rules.ID, text string, result bool) {
	c.entries[key{rule: id, text: strings.Clone(text)}] = result
}

// Clear drops all entries and resets the statistics. The cache is no longer
// bound to a rule table afterwards.
func (c *Cache) Clear() {
	tracer().Debugf("clearing cache with %d entries", len(c.entries))
	c.entries = make(map[key]bool)
	c.stamp = ""
	c.hits, c.misses = 0, 0
}

// Stamp returns the fingerprint of the rule table the cache has been filled
// under, or "" for an unbound cache.
func (c *Cache) Stamp() string {
	return c.stamp
}

// bind stamps the cache with a table fingerprint. If the cache holds entries
// for a different table, they are dropped and bind returns true.
func (c *Cache) bind(stamp string) (stale bool) {
	if c.stamp == stamp {
		return false
	}
	stale = c.stamp != "" && len(c.entries) > 0
	if stale {
		tracer().Errorf("rule table %.8s replaced under cache for %.8s, dropping %d entries",
			stamp, c.stamp, len(c.entries))
		c.Clear()
	}
	c.stamp = stamp
	return stale
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns the number of cache hits and misses since the last Clear.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}
