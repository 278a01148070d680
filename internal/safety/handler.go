// HTTP handler for the safety checker.
//
// Routes:
//
//	POST /safety/check  → recall lookup for a listing URL
package safety

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Vill-8/nursery-scout/internal/api"
	"github.com/Vill-8/nursery-scout/internal/auth"
)

// Handler serves the safety-check route over any Checker implementation.
type Handler struct {
	checker Checker
}

// NewHandler returns a configured Handler.
func NewHandler(checker Checker) *Handler {
	return &Handler{checker: checker}
}

// RegisterRoutes mounts the safety routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/safety/check", h.handleCheck)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if auth.UserID(r.Context()) == "" {
		api.WriteError(w, "missing user identity", http.StatusUnauthorized)
		return
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.URL) == "" {
		api.WriteError(w, "listing url is required", http.StatusBadRequest)
		return
	}

	result, err := h.checker.Check(r.Context(), body.URL)
	if err != nil {
		slog.Error("safety check failed", "err", err)
		api.WriteError(w, "safety check failed", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, result)
}
