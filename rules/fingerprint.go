package rules

import (
	"github.com/cnf/structhash"
)

// fingerprint mirrors a table for hashing; structhash only sees exported fields.
type fingerprint struct {
	Rules []rulePrint
}

type rulePrint struct {
	ID           int
	Kind         int
	Char         string
	Alternatives [][]int
}

// Fingerprint returns a hash identifying the grammar version of a table.
// Tables with equal rules have equal fingerprints. After a rule has been
// replaced the fingerprint changes (unless the replacement is identical).
// The hash is computed once per version of the table.
func (t *Table) Fingerprint() string {
	if t.stamp != "" {
		return t.stamp
	}
	fp := fingerprint{Rules: make([]rulePrint, 0, len(t.rules))}
	t.Each(func(id ID, r Rule) {
		rp := rulePrint{ID: int(id), Kind: int(r.Kind)}
		if r.IsTerminal() {
			rp.Char = string(r.Char)
		}
		for _, seq := range r.Alternatives {
			ids := make([]int, len(seq))
			for i, ref := range seq {
				ids[i] = int(ref)
			}
			rp.Alternatives = append(rp.Alternatives, ids)
		}
		fp.Rules = append(fp.Rules, rp)
	})
	hash, err := structhash.Hash(fp, 1)
	if err != nil {
		tracer().Errorf("cannot compute fingerprint of rule table: %v", err)
		return ""
	}
	t.stamp = hash
	return hash
}
