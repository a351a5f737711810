package rules

import (
	"golang.org/x/exp/slices"
)

// IDSet is a set of rule IDs. The zero value (nil) is an empty set, but
// callers must use the return value of Add.
type IDSet map[ID]struct{}

var exists = struct{}{}

// Add adds id to the set, creating the set if necessary.
func (set IDSet) Add(id ID) IDSet {
	if set == nil {
		set = IDSet{}
	}
	set[id] = exists
	return set
}

// Contains is a predicate.
func (set IDSet) Contains(id ID) bool {
	if set == nil {
		return false
	}
	_, ok := set[id]
	return ok
}

// Delete removes id from the set.
func (set IDSet) Delete(id ID) {
	if set != nil {
		delete(set, id)
	}
}

// Size returns the number of IDs in the set.
func (set IDSet) Size() int {
	return len(set)
}

// Sorted returns the IDs of the set in increasing order.
func (set IDSet) Sorted() []ID {
	ids := make([]ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
