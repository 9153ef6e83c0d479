package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

// A Set of types. The zero value is the empty set.
//
// Sets are values: Union and Add return new sets.
type Set uint16

// SetOf creates a Set from types.
func SetOf(types ...Type) Set {
	var s Set
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

// Add returns the set with t added.
func (s Set) Add(t Type) Set { return s | 1<<uint(t) }

// Union returns the union of both sets.
func (s Set) Union(other Set) Set { return s | other }

// Has returns true if t is in the set.
func (s Set) Has(t Type) bool { return s&(1<<uint(t)) != 0 }

// Contains returns true if every type in other is in the set.
func (s Set) Contains(other Set) bool { return s&other == other }

// Empty returns true if the set has no members.
func (s Set) Empty() bool { return s == 0 }

// Len is the number of types in the set.
func (s Set) Len() int { return len(s.Types()) }

// ScalarOnly returns true if the set is non-empty and every member is scalar.
func (s Set) ScalarOnly() bool {
	if s.Empty() {
		return false
	}
	for _, t := range s.Types() {
		if !t.IsScalar() {
			return false
		}
	}
	return true
}

// Types in the set, weakest first.
func (s Set) Types() []Type {
	out := []Type{}
	for t := Nil; t < typeCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b Type) bool { return rank(a) < rank(b) })
	return out
}

func (s Set) String() string {
	names := []string{}
	for _, t := range s.Types() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Nil and Any sort before the dominance order.
func rank(t Type) int {
	idx := slices.Index(dominance, t)
	if idx < 0 {
		return int(t) - int(typeCount)
	}
	return len(dominance) - idx
}
