package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// testRSAKey generates an RSA key pair for signing test tokens.
func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate RSA key: %v", err)
	}
	return key
}

// jwksJSON renders a JWKS document exposing the public halves of the given
// keys under their key ids.
func jwksJSON(keys map[string]*rsa.PublicKey) string {
	doc := `{"keys":[`
	first := true
	for kid, pub := range keys {
		if !first {
			doc += ","
		}
		first = false
		n := base64.RawURLEncoding.EncodeToString(pub.N.Bytes())
		e := base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes())
		doc += fmt.Sprintf(`{"kty":"RSA","use":"sig","kid":%q,"alg":"RS256","n":%q,"e":%q}`, kid, n, e)
	}
	return doc + `]}`
}

// jwksServer serves a JWKS document and counts how many times it was hit.
func jwksServer(t *testing.T, keys map[string]*rsa.PublicKey) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, jwksJSON(keys))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestKeySet_FetchAndCache(t *testing.T) {
	key := testRSAKey(t)
	srv, hits := jwksServer(t, map[string]*rsa.PublicKey{"kid-1": &key.PublicKey})

	ks := NewKeySet(srv.URL)
	ctx := context.Background()

	got, err := ks.Key(ctx, "kid-1")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if got.N.Cmp(key.PublicKey.N) != 0 || got.E != key.PublicKey.E {
		t.Error("fetched key does not match the published key")
	}

	// Second lookup must come from the cache.
	if _, err := ks.Key(ctx, "kid-1"); err != nil {
		t.Fatalf("cached Key: %v", err)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("JWKS endpoint hit %d times, want 1", n)
	}
}

func TestKeySet_UnknownKid(t *testing.T) {
	key := testRSAKey(t)
	srv, _ := jwksServer(t, map[string]*rsa.PublicKey{"kid-1": &key.PublicKey})

	ks := NewKeySet(srv.URL)
	if _, err := ks.Key(context.Background(), "kid-rotated-away"); err == nil {
		t.Fatal("expected error for unknown kid")
	}
}

func TestKeySet_FetchRateLimit(t *testing.T) {
	key := testRSAKey(t)
	srv, hits := jwksServer(t, map[string]*rsa.PublicKey{"kid-1": &key.PublicKey})

	ks := NewKeySet(srv.URL)
	ks.fetchLimit = 3

	ctx := context.Background()
	// Each unknown kid misses the cache and triggers a fetch until the
	// window is exhausted.
	for i := 0; i < 3; i++ {
		ks.Key(ctx, fmt.Sprintf("unknown-%d", i))
	}

	_, err := ks.Key(ctx, "unknown-final")
	if !errors.Is(err, ErrFetchLimited) {
		t.Fatalf("expected ErrFetchLimited, got %v", err)
	}
	if n := atomic.LoadInt32(hits); n != 3 {
		t.Errorf("JWKS endpoint hit %d times, want 3", n)
	}

	// A cached key stays available while fetches are limited.
	if _, err := ks.Key(ctx, "kid-1"); err != nil {
		t.Errorf("cached key should survive rate limiting, got %v", err)
	}
}

func TestKeySet_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	ks := NewKeySet(srv.URL)
	if _, err := ks.Key(context.Background(), "kid-1"); err == nil {
		t.Fatal("expected error when the provider returns 500")
	}
}

func TestKeySet_EvictionBound(t *testing.T) {
	published := make(map[string]*rsa.PublicKey)
	for i := 0; i < 8; i++ {
		k := testRSAKey(t)
		published[fmt.Sprintf("kid-%d", i)] = &k.PublicKey
	}
	srv, _ := jwksServer(t, published)

	ks := NewKeySet(srv.URL)
	if _, err := ks.Key(context.Background(), "kid-0"); err != nil {
		t.Fatalf("Key: %v", err)
	}

	ks.mu.RLock()
	cached := len(ks.keys)
	ks.mu.RUnlock()
	if cached > ks.maxKeys {
		t.Errorf("cache holds %d keys, want at most %d", cached, ks.maxKeys)
	}
}

func TestKeySet_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	ks := NewKeySet(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := ks.Key(ctx, "kid-1"); err == nil {
		t.Fatal("expected error when the fetch context expires")
	}
}

func TestJWK_PublicKey(t *testing.T) {
	t.Run("rejects bad base64", func(t *testing.T) {
		k := jwk{Kty: "RSA", Kid: "x", N: "!!!", E: "AQAB"}
		if _, err := k.publicKey(); err == nil {
			t.Error("expected error for invalid modulus encoding")
		}
	})

	t.Run("round-trips a real key", func(t *testing.T) {
		key := testRSAKey(t)
		k := jwk{
			Kty: "RSA",
			Kid: "x",
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}
		pub, err := k.publicKey()
		if err != nil {
			t.Fatalf("publicKey: %v", err)
		}
		if pub.N.Cmp(key.PublicKey.N) != 0 || pub.E != key.PublicKey.E {
			t.Error("decoded key does not match original")
		}
	})
}
