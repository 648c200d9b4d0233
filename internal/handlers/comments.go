package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"devinsights/internal/middleware"
	"devinsights/internal/store"
)

// maxCommentLength bounds comment bodies; anything longer is rejected.
const maxCommentLength = 2000

// Comments groups the per-post comment handlers. Reading is public;
// posting requires authentication, and the author identity always comes
// from the verified token, never from the request body.
type Comments struct {
	comments *store.CommentStore
}

// NewComments creates the comment handler group.
func NewComments(comments *store.CommentStore) *Comments {
	return &Comments{comments: comments}
}

// List handles GET /api/post/{id}/comments.
func (c *Comments) List(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "id")

	comments, err := c.comments.ListBySlug(slug)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":     "Post not found",
				"timestamp": timestamp(),
			})
			return
		}
		serverError(w, "listing comments failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"post":      slug,
		"comments":  comments,
		"timestamp": timestamp(),
	})
}

// createCommentRequest is the accepted POST body. Only the content is
// client-supplied.
type createCommentRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/post/{id}/comments. Routed behind RequireAuth.
func (c *Comments) Create(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "id")
	identity := middleware.IdentityFromCtx(r.Context())

	var req createCommentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     "Invalid request body",
			"timestamp": timestamp(),
		})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" || len(content) > maxCommentLength {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     "Comment content must be between 1 and 2000 characters",
			"timestamp": timestamp(),
		})
		return
	}

	p := identity.Principal
	comment, err := c.comments.Create(slug, p.Subject, p.DisplayName(), content)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":     "Post not found",
				"timestamp": timestamp(),
			})
			return
		}
		serverError(w, "creating comment failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"comment":   comment,
		"timestamp": timestamp(),
	})
}
