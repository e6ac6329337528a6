package types

import (
	"iter"
	"slices"
	"strings"
)

// Tags is a read-only, case-insensitive view of parsed metadata.
//
// Vorbis comment field names are case-insensitive, so "Title", "TITLE" and
// "title" all address the same values. Tags keeps every value of a
// repeated field, in file order.
//
// For access in source order, including the original tag spelling, iterate
// the List instead.
type Tags struct {
	raw  map[string][]string
	keys []string // normalized keys in order of first appearance
}

// NewTags builds a Tags view from elements.
func NewTags(elems []Element) *Tags {
	t := &Tags{raw: make(map[string][]string)}
	for _, e := range elems {
		key := normalizeKey(e.Tag)
		if _, ok := t.raw[key]; !ok {
			t.keys = append(t.keys, key)
		}
		t.raw[key] = append(t.raw[key], e.Value)
	}
	return t
}

// normalizeKey folds ASCII letters to upper case. Tag characters are
// restricted to 0x20..0x7D so no other folding applies.
func normalizeKey(key string) string {
	return strings.ToUpper(key)
}

// All returns an iterator over all tags in order of first appearance.
//
// Keys are normalized to upper case. Do not modify the returned slices.
//
// Example:
//
//	for key, values := range list.Tags().All() {
//		fmt.Printf("%s: %v\n", key, values)
//	}
func (t *Tags) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		if t == nil {
			return
		}
		for _, key := range t.keys {
			if !yield(key, t.raw[key]) {
				return
			}
		}
	}
}

// Keys returns the normalized tag names in order of first appearance.
func (t *Tags) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

// Len returns the number of distinct tag names.
func (t *Tags) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Get retrieves all values for a tag name.
//
// Returns nil if the tag does not exist.
//
// Example:
//
//	for _, artist := range tags.Get("artist") {
//		fmt.Println(artist)
//	}
func (t *Tags) Get(key string) []string {
	if t == nil {
		return nil
	}
	values := t.raw[normalizeKey(key)]
	if values == nil {
		return nil
	}
	return slices.Clone(values) // Return a copy to prevent modification
}

// GetFirst retrieves the first value for a tag name.
//
// Returns empty string if the tag doesn't exist.
func (t *Tags) GetFirst(key string) string {
	values := t.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// GetBest tries multiple tag names and returns the first non-empty value.
//
//	year := tags.GetBest("DATE", "YEAR", "ORIGINALDATE")
func (t *Tags) GetBest(candidates ...string) string {
	for _, key := range candidates {
		if value := t.GetFirst(key); value != "" {
			return value
		}
	}
	return ""
}

// Has reports whether the tag appears at least once.
func (t *Tags) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.raw[normalizeKey(key)]
	return ok
}

// Filter returns an iterator over tags whose normalized name matches predicate.
//
// Example:
//
//	// Find all MusicBrainz tags
//	for key, values := range tags.Filter(func(k string) bool {
//		return strings.HasPrefix(k, "MUSICBRAINZ_")
//	}) {
//		fmt.Printf("%s: %v\n", key, values)
//	}
func (t *Tags) Filter(predicate func(string) bool) iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for key, values := range t.All() {
			if predicate(key) {
				if !yield(key, values) {
					return
				}
			}
		}
	}
}
