// HTTP handlers for the found-item routes.
//
// Routes:
//
//	GET  /items              → list the caller's found items
//	POST /items/{id}/viewed  → mark an item viewed
package found

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Vill-8/nursery-scout/internal/api"
	"github.com/Vill-8/nursery-scout/internal/auth"
)

// Handler holds shared dependencies for the found-item routes.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the found-item routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/items", h.handleItems)
	mux.HandleFunc("/items/", h.handleItemAction)
}

func (h *Handler) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := auth.UserID(r.Context())
	if userID == "" {
		api.WriteError(w, "missing user identity", http.StatusUnauthorized)
		return
	}

	items, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("list found items failed", "userId", userID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

// handleItemAction handles POST /items/{id}/viewed.
func (h *Handler) handleItemAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "viewed" {
		api.WriteError(w, "invalid path", http.StatusNotFound)
		return
	}
	itemID := parts[1]

	userID := auth.UserID(r.Context())
	if userID == "" {
		api.WriteError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	if _, err := uuid.Parse(itemID); err != nil {
		api.WriteError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.svc.MarkViewed(r.Context(), userID, itemID); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, "found item not found", http.StatusNotFound)
			return
		}
		slog.Error("mark viewed failed", "itemId", itemID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "viewed"})
}
