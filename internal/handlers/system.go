package handlers

import (
	"database/sql"
	"net/http"

	"devinsights/internal/config"
)

// System groups the operational endpoints: health, the API index, and the
// identity-provider discovery config consumed by the frontend.
type System struct {
	db  *sql.DB
	cfg *config.Config
}

// NewSystem creates the system handler group.
func NewSystem(db *sql.DB, cfg *config.Config) *System {
	return &System{db: db, cfg: cfg}
}

// Health handles GET /health. Database reachability is part of the check.
func (s *System) Health(w http.ResponseWriter, r *http.Request) {
	var one int
	if err := s.db.QueryRowContext(r.Context(), "SELECT 1").Scan(&one); err != nil {
		serverError(w, "health check failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"database":  "connected",
		"timestamp": timestamp(),
		"keycloak": map[string]string{
			"url":   s.cfg.KeycloakURL,
			"realm": s.cfg.KeycloakRealm,
		},
	})
}

// AuthConfig handles GET /api/auth/config, telling the frontend where and
// how to reach the identity provider.
func (s *System) AuthConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"realm":    s.cfg.KeycloakRealm,
		"url":      s.cfg.KeycloakURL,
		"clientId": s.cfg.KeycloakClientID,
	})
}

// Index handles GET /, the endpoint map for humans poking at the API.
func (s *System) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "DevInsights Blog API",
		"endpoints": map[string]string{
			"getAllCategories":   "/api/categories",
			"getPostsByCategory": "/api/posts/{category}",
			"getPostById":        "/api/post/{id}",
			"postComments":       "/api/post/{id}/comments",
			"userProfile":        "/api/user/profile (protected)",
			"adminUsers":         "/api/admin/users (admin)",
			"authConfig":         "/api/auth/config",
			"benchmarks":         "/api/benchmark/{cpu|memory|latency}",
		},
	})
}
