// Package models defines the data structures shared between the store layer
// and the HTTP handlers.
package models

import "time"

// Category is a top-level grouping for posts. Names are unique and stored
// lowercase; lookups are case-insensitive.
type Category struct {
	ID        int       `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Tag labels a post. Tags are shared across posts via a join table.
type Tag struct {
	ID   int    `json:"-"`
	Name string `json:"name"`
}

// PostSummary is a post as it appears in category listings. The external
// identifier is the slug; the surrogate database id never leaves the store.
// Tags is always non-nil — a post without tags serializes as [].
type PostSummary struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Excerpt string    `json:"excerpt"`
	Tags    []string  `json:"tags"`
}

// PostDetail is a full post including its body, returned by slug lookups.
type PostDetail struct {
	PostSummary
	Content string `json:"content"`
}

// CategoryPosts is the payload for a category listing: the normalized
// category name and its posts ordered by date, newest first.
type CategoryPosts struct {
	Category string        `json:"category"`
	Posts    []PostSummary `json:"posts"`
}

// Comment is a reader comment on a post. The author fields come from the
// verified token of the commenting user, not from client input.
type Comment struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
