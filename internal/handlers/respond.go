// Package handlers implements the JSON API surface: public blog reads,
// authenticated user endpoints, admin operations, and the synthetic
// benchmark workloads. Every response body carries an ISO-8601 timestamp;
// 500 bodies stay generic and the underlying error only reaches the logs.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// timestamp returns the current time in the ISO-8601 form every response
// body carries.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response failed", "error", err)
	}
}

// writeRawJSON writes an already-serialized JSON body, as produced by the
// response cache.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// mustMarshal serializes a value that is known to be marshalable; it is
// only used for response bodies built from our own types.
func mustMarshal(v any) []byte {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshaling cache body failed", "error", err)
		return nil
	}
	return body
}

// serverError logs the cause and writes the generic 500 body. Internals
// never leak to clients.
func serverError(w http.ResponseWriter, what string, err error) {
	slog.Error(what, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":     "An error occurred processing your request",
		"timestamp": timestamp(),
	})
}

// NotFound is the router's fallback for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":     "Not found",
		"message":   "Route " + r.Method + " " + r.URL.Path + " not found",
		"timestamp": timestamp(),
	})
}
