package store

import (
	"database/sql"
	"fmt"

	"devinsights/internal/models"
)

// CommentStore manages reader comments. Comments reference posts by their
// internal id, but this API addresses posts by slug like everything else.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListBySlug returns all comments on the post with the given slug, oldest
// first. Returns ErrPostNotFound when the post does not exist.
func (s *CommentStore) ListBySlug(slug string) ([]models.Comment, error) {
	postID, err := s.postID(slug)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, user_id, user_name, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create adds a comment to the post with the given slug and returns the
// stored comment. Returns ErrPostNotFound when the post does not exist.
func (s *CommentStore) Create(slug, userID, userName, content string) (*models.Comment, error) {
	postID, err := s.postID(slug)
	if err != nil {
		return nil, err
	}

	var c models.Comment
	err = s.db.QueryRow(`
		INSERT INTO comments (post_id, user_id, user_name, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, user_name, content, created_at
	`, postID, userID, userName, content).Scan(&c.ID, &c.UserID, &c.UserName, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &c, nil
}

// Author is a distinct commenting user with their comment count.
type Author struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Comments int    `json:"comments"`
}

// DistinctAuthors returns every user who has commented, with comment
// counts, ordered by most active first. Used by the admin user listing.
func (s *CommentStore) DistinctAuthors() ([]Author, error) {
	rows, err := s.db.Query(`
		SELECT user_id, MAX(user_name), COUNT(*)
		FROM comments
		GROUP BY user_id
		ORDER BY COUNT(*) DESC, user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("distinct authors: %w", err)
	}
	defer rows.Close()

	authors := []Author{}
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.UserID, &a.UserName, &a.Comments); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// postID resolves a slug to the internal post id.
func (s *CommentStore) postID(slug string) (int, error) {
	var id int
	err := s.db.QueryRow(`SELECT id FROM posts WHERE slug = $1`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find post id for slug %q: %w", slug, err)
	}
	return id, nil
}
