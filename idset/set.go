package idset

import (
	"cmp"
	"maps"
	"slices"
)

// SetOf is a set of IDs of type T.
type SetOf[T cmp.Ordered] map[T]struct{}

// Of returns a set that holds the given ids.
func Of[T cmp.Ordered](ids ...T) SetOf[T] {
	set := make(SetOf[T], len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Contains returns true if the given id is present in the set.
func (set SetOf[T]) Contains(id T) bool {
	_, present := set[id]
	return present
}

// ContainsAll returns true if every one of the given ids is present in the
// set. It returns true when no ids are given.
func (set SetOf[T]) ContainsAll(ids ...T) bool {
	for _, id := range ids {
		if !set.Contains(id) {
			return false
		}
	}
	return true
}

// ContainsAny returns true if at least one of the given ids is present in the
// set.
func (set SetOf[T]) ContainsAny(ids ...T) bool {
	for _, id := range ids {
		if set.Contains(id) {
			return true
		}
	}
	return false
}

// Add adds the given id to the set. If it is already present, it takes
// no action.
func (set SetOf[T]) Add(id T) {
	set[id] = struct{}{}
}

// Remove removes the given id from the set. If it is not present, it takes
// no action.
func (set SetOf[T]) Remove(id T) {
	delete(set, id)
}

// Clone returns an independent copy of the set.
func (set SetOf[T]) Clone() SetOf[T] {
	out := make(SetOf[T], len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the members of the set in ascending order.
func (set SetOf[T]) Sorted() []T {
	return slices.Sorted(maps.Keys(set))
}
