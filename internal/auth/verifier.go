package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnknownIssuer is returned when a token's issuer is not in the
// configured allow-list.
var ErrUnknownIssuer = errors.New("token issuer not in allow-list")

// defaultKeyTimeout bounds how long a single verification may wait on the
// identity provider for a signing key.
const defaultKeyTimeout = 5 * time.Second

// Verifier validates RS256 bearer tokens against a KeySet and an issuer
// allow-list. The allow-list replaces hostname rewriting: when the identity
// provider is reachable under both an in-cluster and an external hostname,
// both issuer forms are simply configured as acceptable.
type Verifier struct {
	keys       *KeySet
	issuers    map[string]bool
	parser     *jwt.Parser
	keyTimeout time.Duration
}

// NewVerifier creates a Verifier accepting tokens signed by a key in the
// given KeySet and issued by any of the given issuer URLs.
func NewVerifier(keys *KeySet, issuers []string) *Verifier {
	allowed := make(map[string]bool, len(issuers))
	for _, iss := range issuers {
		allowed[iss] = true
	}
	return &Verifier{
		keys:       keys,
		issuers:    allowed,
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{"RS256"})),
		keyTimeout: defaultKeyTimeout,
	}
}

// Verify parses and cryptographically verifies a raw bearer token, returning
// the caller's Principal. All failures — malformed token, unknown key id,
// bad signature, expiry, issuer mismatch, unreachable key endpoint — come
// back as errors; expiry is distinguishable via errors.Is(err,
// jwt.ErrTokenExpired) so callers can log it separately.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Principal, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header missing kid")
		}

		keyCtx, cancel := context.WithTimeout(ctx, v.keyTimeout)
		defer cancel()
		return v.keys.Key(keyCtx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	if !v.issuers[claims.Issuer] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIssuer, claims.Issuer)
	}

	return claims.principal(), nil
}
