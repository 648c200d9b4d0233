package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devinsights/internal/auth"
	"devinsights/internal/benchmark"
	"devinsights/internal/config"
	"devinsights/internal/handlers"
)

// testRouter wires a router with no database behind it. Only routes that
// never reach a store are exercised here; the store and handler packages
// cover the data paths.
func testRouter() http.Handler {
	cfg := &config.Config{
		Env:              "testing",
		FrontendURL:      "http://localhost:3000",
		KeycloakURL:      "http://localhost:8080",
		KeycloakRealm:    "it-blog-realm",
		KeycloakClientID: "it-blog-client",
	}
	verifier := auth.NewVerifier(auth.NewKeySet("http://localhost:1/certs"), nil)

	h := Handlers{
		System:     handlers.NewSystem(nil, cfg),
		Blog:       handlers.NewBlog(nil, nil, nil),
		Comments:   handlers.NewComments(nil),
		Admin:      handlers.NewAdmin(nil, nil),
		Benchmarks: handlers.NewBenchmarks(benchmark.NewInstance(), nil),
	}
	return New(cfg, verifier, h)
}

func TestRouterIndex(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestRouterAuthConfig(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/config", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body["realm"] != "it-blog-realm" {
		t.Errorf("realm = %q", body["realm"])
	}
}

func TestRouterUnknownRouteIs404JSON(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	routes := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/user/profile", http.StatusUnauthorized},
		{http.MethodPost, "/api/post/some-post/comments", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/users", http.StatusUnauthorized},
		{http.MethodPost, "/api/admin/cache/purge", http.StatusUnauthorized},
	}

	r := testRouter()
	for _, tt := range routes {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		if rr.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rr.Code, tt.want)
		}
	}
}

func TestRouterSecureHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestRouterCORS(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the frontend origin", got)
	}

	// An unknown origin gets no CORS headers.
	req = httptest.NewRequest(http.MethodOptions, "/api/categories", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for unknown origin, want empty", got)
	}
}
