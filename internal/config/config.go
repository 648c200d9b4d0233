// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Allowed CORS origin for the React frontend.
	FrontendURL string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache). Optional — the API serves requests
	// directly from PostgreSQL when Valkey is not reachable.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Keycloak identity provider
	KeycloakURL      string
	KeycloakRealm    string
	KeycloakClientID string

	// Additional acceptable issuer URLs, comma-separated. Covers deployments
	// where the provider is reachable under a different hostname inside the
	// cluster than the one browsers see (e.g. http://keycloak:8080 vs
	// http://localhost:8080).
	ExtraIssuers []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host:        envOrDefault("APP_HOST", "0.0.0.0"),
		Port:        envOrDefault("APP_PORT", "3001"),
		Env:         envOrDefault("APP_ENV", "development"),
		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "devinsights"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "devinsights"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		KeycloakURL:      envOrDefault("KEYCLOAK_URL", "http://localhost:8080"),
		KeycloakRealm:    envOrDefault("KEYCLOAK_REALM", "it-blog-realm"),
		KeycloakClientID: envOrDefault("KEYCLOAK_CLIENT_ID", "it-blog-client"),

		ExtraIssuers: splitList(os.Getenv("KEYCLOAK_EXTRA_ISSUERS")),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IssuerURL returns the canonical issuer string Keycloak embeds in tokens.
func (c *Config) IssuerURL() string {
	return fmt.Sprintf("%s/realms/%s", strings.TrimRight(c.KeycloakURL, "/"), c.KeycloakRealm)
}

// JWKSURI returns the realm's published key-set endpoint.
func (c *Config) JWKSURI() string {
	return c.IssuerURL() + "/protocol/openid-connect/certs"
}

// Issuers returns every acceptable token issuer: the canonical realm URL
// plus any configured extras. Duplicates are removed.
func (c *Config) Issuers() []string {
	issuers := []string{c.IssuerURL()}
	seen := map[string]bool{c.IssuerURL(): true}
	for _, iss := range c.ExtraIssuers {
		if !seen[iss] {
			issuers = append(issuers, iss)
			seen[iss] = true
		}
	}
	return issuers
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated environment value into a slice,
// trimming whitespace and dropping empty entries.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
