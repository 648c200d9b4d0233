package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"devinsights/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// IdentityKey is the context key for the request's authentication decision.
const IdentityKey contextKey = "identity"

// Identity is the per-request authentication decision. It is an immutable
// value stored in the request context — never shared or mutated across
// requests. The zero value means anonymous.
type Identity struct {
	Authenticated bool
	Principal     *auth.Principal
}

// Authenticate classifies every request as anonymous or authenticated-as-X.
// A missing, malformed, expired, or otherwise unverifiable token downgrades
// the request to anonymous — it never aborts here. Endpoints that actually
// need authentication enforce it downstream with RequireAuth / RequireRole.
func Authenticate(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// Expired tokens are routine (tab left open); other
				// failures are worth a closer look.
				if errors.Is(err, jwt.ErrTokenExpired) {
					slog.Debug("expired token, proceeding as anonymous", "path", r.URL.Path)
				} else {
					slog.Warn("token verification failed, proceeding as anonymous",
						"path", r.URL.Path,
						"error", err,
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, Identity{
				Authenticated: true,
				Principal:     principal,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401. Must be applied after
// Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromCtx(r.Context())
		if !id.Authenticated {
			denyJSON(w, http.StatusUnauthorized, map[string]any{
				"error":   "Authentication required",
				"message": "You must be logged in to access this resource",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose principal lacks the given realm role
// with 403. Anonymous requests get 401 — the two outcomes are never
// conflated. Must be applied after Authenticate.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromCtx(r.Context())
			if !id.Authenticated {
				denyJSON(w, http.StatusUnauthorized, map[string]any{
					"error":   "Authentication required",
					"message": "You must be logged in to access this resource",
				})
				return
			}

			if !id.Principal.HasRole(role) {
				denyJSON(w, http.StatusForbidden, map[string]any{
					"error":        "Insufficient permissions",
					"message":      "You need the '" + role + "' role to access this resource",
					"requiredRole": role,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromCtx extracts the authentication decision from the request
// context. Requests that never passed Authenticate, or failed verification,
// yield the zero (anonymous) Identity.
func IdentityFromCtx(ctx context.Context) Identity {
	id, _ := ctx.Value(IdentityKey).(Identity)
	return id
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or not a bearer scheme.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// denyJSON writes an authorization denial response body.
func denyJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
