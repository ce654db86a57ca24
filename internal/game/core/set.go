package core

import (
	"maps"
	"slices"
)

// Set is an unordered collection of hex or edge keys
type Set[K ~string] map[K]struct{}

// NewSet builds a set holding keys
func NewSet[K ~string](keys ...K) Set[K] {
	s := make(Set[K], len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s Set[K]) Add(k K) { s[k] = struct{}{} }

// Has is safe on a nil set
func (s Set[K]) Has(k K) bool {
	_, ok := s[k]
	return ok
}

func (s Set[K]) Len() int { return len(s) }

// Sorted returns the members in ascending key order
func (s Set[K]) Sorted() []K {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy, never nil
func (s Set[K]) Clone() Set[K] {
	out := make(Set[K], len(s))
	maps.Copy(out, s)
	return out
}

// Union returns a new set with the members of both sets
func (s Set[K]) Union(other Set[K]) Set[K] {
	out := s.Clone()
	maps.Copy(out, other)
	return out
}
