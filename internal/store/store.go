// Package store is the blog data access layer. It hides SQL behind typed
// operations that distinguish expected-absence outcomes (unknown category,
// unknown post) from backend failures: the former are returned as typed
// not-found values callers check with errors.Is / errors.As, the latter
// propagate wrapped.
package store

import (
	"errors"
	"fmt"
)

// ErrPostNotFound is returned when a post lookup finds no row for the
// given slug.
var ErrPostNotFound = errors.New("post not found")

// CategoryNotFoundError is returned when a category lookup fails. It carries
// the full set of valid category names so API clients can self-correct.
type CategoryNotFoundError struct {
	Name      string
	Available []string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q not found", e.Name)
}
