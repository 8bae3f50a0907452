// Package snippet defines the core domain types for named text snippets.
package snippet

// Snippet is a short piece of text stored under a unique keyword.
// Any string is a valid keyword, including the empty string.
type Snippet struct {
	Keyword string `json:"keyword"`
	Message string `json:"message"`
	Hidden  bool   `json:"hidden"` // Excluded from search results
}

// Lookup is the outcome of a read that may legitimately match nothing.
// A missing keyword or an empty search is a NotFound lookup, not an error.
type Lookup[T any] struct {
	Value T
	Found bool
}

// Found wraps a value that was located.
func Found[T any](v T) Lookup[T] {
	return Lookup[T]{Value: v, Found: true}
}

// NotFound returns an empty lookup.
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}
