package handlers

import (
	"net/http"

	"devinsights/internal/cache"
	"devinsights/internal/middleware"
	"devinsights/internal/store"
)

// Admin groups handlers behind RequireRole("admin").
type Admin struct {
	comments  *store.CommentStore
	respCache *cache.ResponseCache
}

// NewAdmin creates the admin handler group. respCache may be nil.
func NewAdmin(comments *store.CommentStore, respCache *cache.ResponseCache) *Admin {
	return &Admin{comments: comments, respCache: respCache}
}

// Users handles GET /api/admin/users, listing the distinct users who have
// commented. The identity provider owns the real user database; this is
// the application-side view of it.
func (a *Admin) Users(w http.ResponseWriter, r *http.Request) {
	authors, err := a.comments.DistinctAuthors()
	if err != nil {
		serverError(w, "listing comment authors failed", err)
		return
	}

	requestor := middleware.IdentityFromCtx(r.Context()).Principal.Username
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Admin-only data",
		"users":     authors,
		"requestor": requestor,
		"timestamp": timestamp(),
	})
}

// PurgeCache handles POST /api/admin/cache/purge, dropping every cached
// response so edits become visible immediately.
func (a *Admin) PurgeCache(w http.ResponseWriter, r *http.Request) {
	deleted := a.respCache.InvalidateAll(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Response cache purged",
		"deleted":   deleted,
		"timestamp": timestamp(),
	})
}
