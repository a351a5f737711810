package match

import (
	"github.com/npillmayer/ruley/rules"
)

// partition is a split of a span between the elements of a sequence. Every
// element consumes 1+extra[i] characters. Only variable-length positions
// (non-terminals) ever get extra characters.
//
// The last variable-length position always holds the slack not assigned to
// the others. The other variable-length positions form the digits of an
// odometer, the leftmost one turning fastest.
type partition struct {
	extra []int // characters beyond the first, per sequence position
	vars  []int // variable-length positions
	slack int   // span length - sequence length
	sum   int   // extras of vars[:len(vars)-1]
}

// newPartition classifies the positions of seq and creates the first
// partition for a span of length n. It returns false if no partition exists.
func newPartition(table *rules.Table, seq rules.Sequence, n int) (*partition, bool) {
	slack := n - len(seq)
	if slack < 0 {
		return nil, false
	}
	p := &partition{
		extra: make([]int, len(seq)),
		slack: slack,
	}
	for i, id := range seq {
		if !table.Rule(id).IsTerminal() {
			p.vars = append(p.vars, i)
		}
	}
	if len(p.vars) == 0 {
		return p, slack == 0
	}
	p.extra[p.vars[len(p.vars)-1]] = slack
	return p, true
}

// size returns the length of position i.
func (p *partition) size(i int) int {
	return 1 + p.extra[i]
}

// variable returns the number of variable-length positions.
func (p *partition) variable() int {
	return len(p.vars)
}

// next moves to the next partition, taking one character from the last
// variable-length position and giving it to the first one, carrying
// rightwards when the slack is exhausted. It returns false if all partitions
// have been visited.
func (p *partition) next() bool {
	if len(p.vars) < 2 {
		return false
	}
	last := p.vars[len(p.vars)-1]
	for k := 0; k < len(p.vars)-1; k++ {
		i := p.vars[k]
		if p.sum < p.slack {
			p.extra[i]++
			p.sum++
			p.extra[last] = p.slack - p.sum
			return true
		}
		p.sum -= p.extra[i]
		p.extra[i] = 0
	}
	return false
}
