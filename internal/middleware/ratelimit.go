package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter applies a per-client sliding-window request limit. It guards
// the benchmark endpoints, which deliberately burn CPU and memory and would
// otherwise be an easy denial-of-service vector.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu    sync.Mutex
	seen  map[string][]time.Time
	sweep time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window for
// each client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
		sweep:  time.Now(),
	}
}

// allow records a request for key and reports whether it fits the window.
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Idle entries accumulate from one-off clients; sweep them out once
	// per window instead of running a background goroutine.
	if now.Sub(rl.sweep) > rl.window {
		for k, stamps := range rl.seen {
			if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
				delete(rl.seen, k)
			}
		}
		rl.sweep = now
	}

	stamps := rl.seen[key]
	live := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}

	if len(live) >= rl.limit {
		rl.seen[key] = live
		return false
	}

	rl.seen[key] = append(live, now)
	return true
}

// Middleware rejects requests over the limit with a 429 JSON body.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			denyJSON(w, http.StatusTooManyRequests, map[string]any{
				"error": "Too many requests",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, honoring the proxy headers
// set by the ingress in front of the service.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
