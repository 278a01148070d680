// Package api holds small HTTP response helpers shared by all handler
// packages.
package api

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error envelope {"error": msg}.
func WriteError(w http.ResponseWriter, msg string, code int) {
	WriteJSON(w, code, map[string]string{"error": msg})
}
