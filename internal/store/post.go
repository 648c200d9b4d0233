package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"devinsights/internal/models"
)

// PostStore manages posts in the database. Posts are addressed externally
// by slug — the surrogate id column never crosses this package boundary.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// ListByCategory returns all posts in the named category ordered by date,
// newest first. The lookup is case-insensitive. An unknown category yields
// a *CategoryNotFoundError carrying the full set of valid category names.
func (s *PostStore) ListByCategory(category string) (*models.CategoryPosts, error) {
	normalized := strings.ToLower(category)

	var categoryID int
	err := s.db.QueryRow(`SELECT id FROM categories WHERE name = $1`, normalized).Scan(&categoryID)
	if err == sql.ErrNoRows {
		available, listErr := s.availableCategories()
		if listErr != nil {
			return nil, listErr
		}
		return nil, &CategoryNotFoundError{Name: normalized, Available: available}
	}
	if err != nil {
		return nil, fmt.Errorf("find category %q: %w", normalized, err)
	}

	rows, err := s.db.Query(`
		SELECT p.slug, p.title, p.author, p.date, p.excerpt,
		       COALESCE(json_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '[]')
		FROM posts p
		LEFT JOIN post_tags pt ON p.id = pt.post_id
		LEFT JOIN tags t ON pt.tag_id = t.id
		WHERE p.category_id = $1
		GROUP BY p.id
		ORDER BY p.date DESC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	defer rows.Close()

	// Posts is non-nil even for an empty category so it serializes as [].
	posts := []models.PostSummary{}
	for rows.Next() {
		var p models.PostSummary
		var tagsJSON []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.Date, &p.Excerpt, &tagsJSON); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
			return nil, fmt.Errorf("decode post tags: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}

	return &models.CategoryPosts{Category: normalized, Posts: posts}, nil
}

// FindBySlug retrieves a single post, including its body, by its slug.
// Returns ErrPostNotFound when no post carries the slug.
func (s *PostStore) FindBySlug(slug string) (*models.PostDetail, error) {
	var p models.PostDetail
	var tagsJSON []byte
	err := s.db.QueryRow(`
		SELECT p.slug, p.title, p.author, p.date, p.excerpt, p.content,
		       COALESCE(json_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '[]')
		FROM posts p
		LEFT JOIN post_tags pt ON p.id = pt.post_id
		LEFT JOIN tags t ON pt.tag_id = t.id
		WHERE p.slug = $1
		GROUP BY p.id
	`, slug).Scan(&p.ID, &p.Title, &p.Author, &p.Date, &p.Excerpt, &p.Content, &tagsJSON)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode post tags: %w", err)
	}
	return &p, nil
}

// RecentTitles returns up to limit post titles ordered by date descending,
// starting at offset. Used by the latency benchmark as a representative
// read query.
func (s *PostStore) RecentTitles(limit, offset int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT title FROM posts ORDER BY date DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("recent titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// availableCategories returns every category name, used to enrich
// CategoryNotFoundError values.
func (s *PostStore) availableCategories() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("available categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
