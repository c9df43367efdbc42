// Package skillkey canonicalizes free-text skill names into comparable keys.
package skillkey

import (
	"sort"
	"strings"
)

// Normalize trims surrounding whitespace and case-folds name.
// Empty input yields an empty key.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Set is a collection of normalized skill keys.
type Set map[string]struct{}

// NewSet normalizes every name and drops the ones that normalize to "".
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add normalizes name and inserts it unless it is blank.
func (s Set) Add(name string) {
	if k := Normalize(name); k != "" {
		s[k] = struct{}{}
	}
}

func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Union returns a new set holding the keys of s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Keys returns the keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
