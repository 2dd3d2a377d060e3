package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Paths are repeated across the project, the include graph and the timestamp
// table, so they are interned for cheap comparison.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	return is.h.Value()
}

// Value returns the underlying unique.Handle[string].
func (is InternedString) Value() unique.Handle[string] {
	return is.h
}

// PathSet is an insertion-ordered set of strings.
// The zero value is ready to use.
type PathSet struct {
	items []InternedString
	index map[unique.Handle[string]]struct{}
}

// Add appends s unless it is already present. It reports whether s was added.
func (p *PathSet) Add(s string) bool {
	is := NewInternedString(s)
	if p.index == nil {
		p.index = make(map[unique.Handle[string]]struct{})
	}
	if _, ok := p.index[is.Value()]; ok {
		return false
	}
	p.index[is.Value()] = struct{}{}
	p.items = append(p.items, is)
	return true
}

// Contains reports whether s is in the set.
func (p *PathSet) Contains(s string) bool {
	_, ok := p.index[unique.Make(s)]
	return ok
}

// Len returns the number of entries.
func (p *PathSet) Len() int {
	return len(p.items)
}

// Values returns the entries in insertion order.
func (p *PathSet) Values() []string {
	out := make([]string, len(p.items))
	for i, is := range p.items {
		out[i] = is.String()
	}
	return out
}
