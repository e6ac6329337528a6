// Package types provides the core data structures shared by the parser and
// the public API: metadata elements, the sentinel-terminated list, a tag
// lookup view, and the parse error type.
package types

import (
	"iter"
)

// Element is one metadata entry, a TAG=VALUE pair.
//
// Value may contain embedded newlines when it was written as a multi-line
// block in the source file.
type Element struct {
	Tag   string
	Value string
}

// IsSentinel reports whether e is the end-of-list marker.
//
// Real elements always have a non-empty tag.
func (e Element) IsSentinel() bool {
	return e.Tag == ""
}

// List is an ordered sequence of elements terminated by exactly one
// sentinel element.
//
// Order matches the order of appearance in the source file. A List returned
// by the parser is never modified afterwards.
type List []Element

// Len returns the number of real elements (the sentinel is not counted).
func (l List) Len() int {
	for i, e := range l {
		if e.IsSentinel() {
			return i
		}
	}
	return len(l)
}

// Entries returns the real elements without the trailing sentinel.
//
// The returned slice shares memory with l.
func (l List) Entries() []Element {
	return l[:l.Len()]
}

// All returns an iterator over the real elements and their positions.
//
// Example:
//
//	for i, e := range list.All() {
//		fmt.Printf("%d: %s=%s\n", i, e.Tag, e.Value)
//	}
func (l List) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, e := range l {
			if e.IsSentinel() || !yield(i, e) {
				return
			}
		}
	}
}

// Equal reports whether both lists hold the same elements in the same order.
func (l List) Equal(other List) bool {
	a, b := l.Entries(), other.Entries()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Tags builds a case-insensitive lookup view over the list.
func (l List) Tags() *Tags {
	return NewTags(l.Entries())
}
