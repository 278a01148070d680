// HTTP handlers for the hunt routes.
//
// Routes:
//
//	GET    /hunts              → list the caller's hunts
//	POST   /hunts              → create a hunt
//	POST   /hunts/{id}/toggle  → pause/resume (flip is_active)
//	POST   /hunts/{id}/scout   → trigger the scout worker for this hunt
//	DELETE /hunts/{id}         → delete the hunt
package hunt

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Vill-8/nursery-scout/internal/api"
	"github.com/Vill-8/nursery-scout/internal/auth"
	"github.com/Vill-8/nursery-scout/internal/model"
	"github.com/Vill-8/nursery-scout/internal/scout"
)

// Store is the hunt persistence surface the handlers call. *Service
// satisfies it.
type Store interface {
	List(ctx context.Context, userID string) ([]model.Hunt, error)
	Get(ctx context.Context, userID, huntID string) (*model.Hunt, error)
	Create(ctx context.Context, userID string, in CreateInput) (*model.Hunt, error)
	Toggle(ctx context.Context, userID, huntID string) (*model.Hunt, error)
	Delete(ctx context.Context, userID, huntID string) error
}

// Scouter triggers one scout run on the worker. *scout.Client satisfies it.
type Scouter interface {
	Scout(ctx context.Context, req scout.Request) (*scout.Response, error)
}

// Locker serialises scout triggers per hunt. *scout.Locker satisfies it.
type Locker interface {
	TryLock(ctx context.Context, huntID string) (bool, error)
	Unlock(ctx context.Context, huntID string) error
}

// Handler holds shared dependencies for the hunt routes.
type Handler struct {
	svc   Store
	scout Scouter
	locks Locker
}

// NewHandler returns a configured Handler.
func NewHandler(svc Store, scoutClient Scouter, locks Locker) *Handler {
	return &Handler{svc: svc, scout: scoutClient, locks: locks}
}

// RegisterRoutes mounts the hunt routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/hunts", h.handleHunts)
	mux.HandleFunc("/hunts/", h.handleHuntAction)
}

// ─── Route dispatch ──────────────────────────────────────────────────────────

func (h *Handler) handleHunts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleHuntAction handles DELETE /hunts/{id} and POST /hunts/{id}/toggle|scout.
func (h *Handler) handleHuntAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(parts) == 2 && r.Method == http.MethodDelete {
		h.delete(w, r, parts[1])
		return
	}

	if len(parts) == 3 && r.Method == http.MethodPost {
		switch parts[2] {
		case "toggle":
			h.toggle(w, r, parts[1])
		case "scout":
			h.scoutNow(w, r, parts[1])
		default:
			api.WriteError(w, "unknown action", http.StatusNotFound)
		}
		return
	}

	api.WriteError(w, "invalid path", http.StatusNotFound)
}

// requireUser extracts the authenticated user id, writing 401 when absent.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		api.WriteError(w, "missing user identity", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

func validHuntID(w http.ResponseWriter, id string) bool {
	if _, err := uuid.Parse(id); err != nil {
		api.WriteError(w, "invalid hunt id", http.StatusBadRequest)
		return false
	}
	return true
}

// ─── Individual handlers ─────────────────────────────────────────────────────

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	hunts, err := h.svc.List(r.Context(), userID)
	if err != nil {
		slog.Error("list hunts failed", "userId", userID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, hunts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(r.Context(), userID, in)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			api.WriteError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		slog.Error("create hunt failed", "userId", userID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, huntID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !validHuntID(w, huntID) {
		return
	}

	updated, err := h.svc.Toggle(r.Context(), userID, huntID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, "hunt not found", http.StatusNotFound)
			return
		}
		slog.Error("toggle hunt failed", "huntId", huntID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, huntID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !validHuntID(w, huntID) {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, huntID); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, "hunt not found", http.StatusNotFound)
			return
		}
		slog.Error("delete hunt failed", "huntId", huntID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// scoutNow forwards a hunt to the scout worker and relays the number of
// deals it found. A Redis SETNX lock keeps concurrent triggers for the
// same hunt from stacking up.
func (h *Handler) scoutNow(w http.ResponseWriter, r *http.Request, huntID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if !validHuntID(w, huntID) {
		return
	}

	target, err := h.svc.Get(r.Context(), userID, huntID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, "hunt not found", http.StatusNotFound)
			return
		}
		slog.Error("load hunt failed", "huntId", huntID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}

	acquired, err := h.locks.TryLock(r.Context(), huntID)
	switch {
	case err != nil:
		// Lock store unavailable: proceed unlocked rather than block the
		// user. No lock was taken, so there is nothing to release.
		slog.Warn("scout lock unavailable", "huntId", huntID, "err", err)
	case !acquired:
		api.WriteError(w, "a scout run is already in progress for this hunt", http.StatusConflict)
		return
	default:
		defer func() {
			if err := h.locks.Unlock(r.Context(), huntID); err != nil {
				slog.Warn("scout unlock failed", "huntId", huntID, "err", err)
			}
		}()
	}

	resp, err := h.scout.Scout(r.Context(), scout.Request{
		Brand:    string(target.Brand),
		ItemName: target.ItemName,
		HuntID:   target.ID,
		MaxPrice: target.MaxPrice,
	})
	if err != nil {
		slog.Error("scout worker call failed", "huntId", huntID, "err", err)
		api.WriteError(w, "failed to scout deals", http.StatusBadGateway)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]int{"deals_found": resp.DealsFound})
}
