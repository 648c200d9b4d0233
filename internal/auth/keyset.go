package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// Cache and rate-limit defaults for the JWKS fetcher.
const (
	// DefaultKeyTTL is how long a fetched signing key stays cached.
	DefaultKeyTTL = 10 * time.Minute

	// DefaultMaxKeys bounds the number of cached keys. Keycloak realms
	// publish a handful of keys at most, so anything beyond this is churn
	// from unknown key ids.
	DefaultMaxKeys = 5

	// DefaultFetchLimit and DefaultFetchWindow bound how often the JWKS
	// endpoint is hit, so key rotation or a flood of tokens with bogus
	// key ids cannot hammer the identity provider.
	DefaultFetchLimit  = 10
	DefaultFetchWindow = time.Minute
)

// ErrFetchLimited is returned when the JWKS fetch rate limit is exhausted
// and the requested key id is not cached.
var ErrFetchLimited = errors.New("jwks fetch rate limit exceeded")

// KeySet fetches RSA public keys from a JWKS endpoint and caches them in
// memory by key id. The cache is bounded and entries expire after a TTL.
// Concurrent population of the same key id is an idempotent overwrite,
// not an error.
type KeySet struct {
	uri    string
	client *http.Client

	ttl     time.Duration
	maxKeys int

	mu   sync.RWMutex
	keys map[string]cachedKey

	limitMu     sync.Mutex
	fetches     []time.Time
	fetchLimit  int
	fetchWindow time.Duration
}

type cachedKey struct {
	key       *rsa.PublicKey
	expiresAt time.Time
}

// NewKeySet creates a KeySet for the given JWKS endpoint with the default
// cache and rate-limit settings.
func NewKeySet(uri string) *KeySet {
	return &KeySet{
		uri:         uri,
		client:      &http.Client{Timeout: 10 * time.Second},
		ttl:         DefaultKeyTTL,
		maxKeys:     DefaultMaxKeys,
		keys:        make(map[string]cachedKey),
		fetchLimit:  DefaultFetchLimit,
		fetchWindow: DefaultFetchWindow,
	}
}

// Key returns the RSA public key for the given key id, fetching the key set
// from the provider when the id is not cached or its entry has expired.
func (ks *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	ks.mu.RLock()
	entry, ok := ks.keys[kid]
	ks.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.key, nil
	}

	if !ks.allowFetch() {
		return nil, ErrFetchLimited
	}

	fetched, err := ks.fetch(ctx)
	if err != nil {
		return nil, err
	}

	expires := time.Now().Add(ks.ttl)
	ks.mu.Lock()
	for id, key := range fetched {
		ks.keys[id] = cachedKey{key: key, expiresAt: expires}
	}
	ks.evictLocked(kid)
	entry, ok = ks.keys[kid]
	ks.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("signing key %q not found in key set", kid)
	}
	return entry.key, nil
}

// allowFetch applies the sliding-window rate limit on JWKS requests.
func (ks *KeySet) allowFetch() bool {
	ks.limitMu.Lock()
	defer ks.limitMu.Unlock()

	now := time.Now()
	cutoff := now.Add(-ks.fetchWindow)

	valid := ks.fetches[:0]
	for _, ts := range ks.fetches {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	ks.fetches = valid

	if len(ks.fetches) >= ks.fetchLimit {
		return false
	}
	ks.fetches = append(ks.fetches, now)
	return true
}

// jwksDocument is the standard JWKS wire format.
type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// fetch downloads and parses the key set, returning all usable RSA
// signature keys by key id.
func (ks *KeySet) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ks.uri, nil)
	if err != nil {
		return nil, fmt.Errorf("jwks request: %w", err)
	}

	resp, err := ks.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jwks fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks fetch: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("jwks read: %w", err)
	}

	var doc jwksDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("jwks decode: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || (k.Use != "" && k.Use != "sig") || k.Kid == "" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			slog.Warn("skipping unparsable jwk", "kid", k.Kid, "error", err)
			continue
		}
		keys[k.Kid] = pub
	}

	if len(keys) == 0 {
		return nil, errors.New("jwks document contains no usable RSA signature keys")
	}
	return keys, nil
}

// publicKey builds an rsa.PublicKey from the base64url modulus and exponent.
func (k jwk) publicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}

	e := new(big.Int).SetBytes(eBytes)
	if !e.IsInt64() || e.Int64() <= 0 || e.Int64() > int64(1)<<31 {
		return nil, fmt.Errorf("exponent out of range")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(e.Int64()),
	}, nil
}

// evictLocked trims the cache down to maxKeys, never evicting keep.
// Expired entries go first, then the entries closest to expiry.
// Callers must hold ks.mu.
func (ks *KeySet) evictLocked(keep string) {
	now := time.Now()
	for kid, entry := range ks.keys {
		if len(ks.keys) <= ks.maxKeys {
			return
		}
		if kid != keep && !entry.expiresAt.After(now) {
			delete(ks.keys, kid)
		}
	}

	for len(ks.keys) > ks.maxKeys {
		oldestKid := ""
		var oldest time.Time
		for kid, entry := range ks.keys {
			if kid == keep {
				continue
			}
			if oldestKid == "" || entry.expiresAt.Before(oldest) {
				oldestKid = kid
				oldest = entry.expiresAt
			}
		}
		if oldestKid == "" {
			return
		}
		delete(ks.keys, oldestKid)
	}
}
