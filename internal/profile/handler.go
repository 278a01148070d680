// HTTP handlers for the profile routes.
//
// Routes:
//
//	GET  /profile                   → the caller's profile row
//	PUT  /profile                   → update display name + Telegram handle
//	POST /profile/telegram/connect  → placeholder for the bot handshake
package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Vill-8/nursery-scout/internal/api"
	"github.com/Vill-8/nursery-scout/internal/auth"
)

// Handler holds shared dependencies for the profile routes.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the profile routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/profile", h.handleProfile)
	mux.HandleFunc("/profile/telegram/connect", h.connectTelegram)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		api.WriteError(w, "missing user identity", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, userID)
	case http.MethodPut:
		h.update(w, r, userID)
	default:
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, "profile not found", http.StatusNotFound)
			return
		}
		slog.Error("get profile failed", "userId", userID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, userID string) {
	var body struct {
		FullName         string `json:"full_name"`
		TelegramUsername string `json:"telegram_username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Update(r.Context(), userID, body.FullName, body.TelegramUsername)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, "profile not found", http.StatusNotFound)
			return
		}
		slog.Error("update profile failed", "userId", userID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

// connectTelegram is a placeholder: the bot handshake does not exist
// yet, so the endpoint only reports that.
func (h *Handler) connectTelegram(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if auth.UserID(r.Context()) == "" {
		api.WriteError(w, "missing user identity", http.StatusUnauthorized)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Telegram integration coming soon! You'll be able to receive instant deal alerts.",
	})
}
