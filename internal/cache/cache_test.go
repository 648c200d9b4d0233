package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "resp:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestResponseCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := rc.Get(ctx, PostsKey("devops"))
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set.
	body := []byte(`{"category":"devops","posts":[]}`)
	rc.Set(ctx, PostsKey("devops"), body)

	// Hit.
	data, ok = rc.Get(ctx, PostsKey("devops"))
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(body) {
		t.Errorf("data mismatch: got %q, want %q", data, body)
	}
}

func TestResponseCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	rc.Set(ctx, PostKey("some-post"), []byte("cached"))

	_, ok := rc.Get(ctx, PostKey("some-post"))
	if !ok {
		t.Fatal("expected cache hit before invalidation")
	}

	rc.Invalidate(ctx, PostKey("some-post"))

	_, ok = rc.Get(ctx, PostKey("some-post"))
	if ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewResponseCache(client, 1*time.Minute)

	ctx := context.Background()

	rc.Set(ctx, PostsKey("devops"), []byte("a"))
	rc.Set(ctx, PostKey("some-post"), []byte("b"))
	rc.Set(ctx, CategoriesKey(), []byte("c"))

	deleted := rc.InvalidateAll(ctx)
	if deleted < 3 {
		t.Errorf("InvalidateAll deleted %d keys, want at least 3", deleted)
	}

	for _, key := range []string{PostsKey("devops"), PostKey("some-post"), CategoriesKey()} {
		_, ok := rc.Get(ctx, key)
		if ok {
			t.Errorf("expected miss for %q after InvalidateAll", key)
		}
	}
}

func TestNilResponseCache(t *testing.T) {
	// A nil cache is the degraded mode when Valkey is unavailable;
	// every operation must be a harmless no-op.
	var rc *ResponseCache

	ctx := context.Background()

	if _, ok := rc.Get(ctx, "anything"); ok {
		t.Error("nil cache should always miss")
	}
	rc.Set(ctx, "anything", []byte("x"))
	rc.Invalidate(ctx, "anything")
	if n := rc.InvalidateAll(ctx); n != 0 {
		t.Errorf("nil cache InvalidateAll = %d, want 0", n)
	}
}

func TestNewResponseCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	rc := NewResponseCache(client, 0)
	if rc.ttl != DefaultResponseTTL {
		t.Errorf("expected DefaultResponseTTL (%v), got %v", DefaultResponseTTL, rc.ttl)
	}
}
