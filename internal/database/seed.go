package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"devinsights/internal/slug"
)

// Seed populates the database with the demo blog content: categories, tags,
// and sample posts. It runs inside a single transaction and is idempotent —
// categories and tags are upserted by name, posts by slug, and each post's
// tag links are rebuilt on every run.
func Seed(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	// Categories, upserted by name so existing ids are preserved.
	categoryIDs := make(map[string]int, len(seedCategories))
	for _, name := range seedCategories {
		var id int
		err := tx.QueryRow(`
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
			RETURNING id
		`, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		categoryIDs[name] = id
	}

	// Tags, same upsert pattern.
	tagIDs := make(map[string]int, len(seedTags))
	for _, name := range seedTags {
		var id int
		err := tx.QueryRow(`
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP
			RETURNING id
		`, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed tag %q: %w", name, err)
		}
		tagIDs[name] = id
	}

	// Posts, upserted by slug. The slug is the externally visible post id,
	// so it is normalized to its URL-safe form before writing.
	for _, p := range seedPosts {
		categoryID, ok := categoryIDs[p.Category]
		if !ok {
			return fmt.Errorf("seed post %q: unknown category %q", p.Slug, p.Category)
		}

		var postID int
		err := tx.QueryRow(`
			INSERT INTO posts (slug, title, author, excerpt, content, category_id, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (slug) DO UPDATE
			SET title = EXCLUDED.title,
			    author = EXCLUDED.author,
			    excerpt = EXCLUDED.excerpt,
			    content = EXCLUDED.content,
			    category_id = EXCLUDED.category_id,
			    date = EXCLUDED.date,
			    updated_at = CURRENT_TIMESTAMP
			RETURNING id
		`, slug.Normalize(p.Slug), p.Title, p.Author, p.Excerpt, p.Content, categoryID, p.Date).Scan(&postID)
		if err != nil {
			return fmt.Errorf("seed post %q: %w", p.Slug, err)
		}

		// Rebuild tag links so removed tags don't linger across reseeds.
		if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
			return fmt.Errorf("seed post %q clear tags: %w", p.Slug, err)
		}
		for _, tagName := range p.Tags {
			tagID, ok := tagIDs[tagName]
			if !ok {
				return fmt.Errorf("seed post %q: unknown tag %q", p.Slug, tagName)
			}
			_, err := tx.Exec(`
				INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, postID, tagID)
			if err != nil {
				return fmt.Errorf("seed post %q link tag %q: %w", p.Slug, tagName, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded",
		"categories", len(seedCategories),
		"tags", len(seedTags),
		"posts", len(seedPosts),
	)
	return nil
}
