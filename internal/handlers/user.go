package handlers

import (
	"net/http"

	"devinsights/internal/middleware"
)

// Profile handles GET /api/user/profile. Routed behind RequireAuth; the
// body echoes the verified claims so the frontend never has to decode the
// token itself.
func Profile(w http.ResponseWriter, r *http.Request) {
	p := middleware.IdentityFromCtx(r.Context()).Principal

	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"sub":                p.Subject,
			"preferred_username": p.Username,
			"name":               p.Name,
			"email":              p.Email,
			"given_name":         p.GivenName,
			"family_name":        p.FamilyName,
			"realm_access":       map[string]any{"roles": p.Roles},
		},
		"message":   "This is protected data visible only to authenticated users",
		"timestamp": timestamp(),
	})
}
