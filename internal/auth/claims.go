// Package auth verifies bearer tokens issued by the Keycloak identity
// provider. Signing keys are fetched from the realm's published JWKS
// endpoint and cached in memory; verified tokens are reduced to a Principal
// carrying only the claims the rest of the application needs.
package auth

import "github.com/golang-jwt/jwt/v5"

// RealmAccess holds the realm-level roles embedded in a Keycloak token.
type RealmAccess struct {
	Roles []string `json:"roles"`
}

// Claims is the subset of Keycloak access-token claims this application reads.
type Claims struct {
	jwt.RegisteredClaims
	PreferredUsername string      `json:"preferred_username,omitempty"`
	Name              string      `json:"name,omitempty"`
	GivenName         string      `json:"given_name,omitempty"`
	FamilyName        string      `json:"family_name,omitempty"`
	Email             string      `json:"email,omitempty"`
	RealmAccess       RealmAccess `json:"realm_access,omitempty"`
}

// Principal is the verified caller identity derived from a token. It lives
// only for the duration of one request.
type Principal struct {
	Subject    string   `json:"sub"`
	Username   string   `json:"preferred_username"`
	Name       string   `json:"name"`
	GivenName  string   `json:"given_name,omitempty"`
	FamilyName string   `json:"family_name,omitempty"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
}

// HasRole reports whether the principal carries the given realm role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DisplayName returns the best human-readable name for the principal:
// the preferred username, falling back to the full name, then "User".
func (p *Principal) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.Name != "" {
		return p.Name
	}
	return "User"
}

// principal converts verified claims into a Principal.
func (c *Claims) principal() *Principal {
	return &Principal{
		Subject:    c.Subject,
		Username:   c.PreferredUsername,
		Name:       c.Name,
		GivenName:  c.GivenName,
		FamilyName: c.FamilyName,
		Email:      c.Email,
		Roles:      c.RealmAccess.Roles,
	}
}
