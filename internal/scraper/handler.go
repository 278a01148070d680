// HTTP surface of the scout worker.
//
// Routes:
//
//	POST /api/scout  → run one scout cycle for a hunt
//
// The worker sits behind the API service, not the public internet, so
// requests are trusted and carry no user identity.
package scraper

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vill-8/nursery-scout/internal/api"
)

// Handler serves the worker's scout endpoint.
type Handler struct {
	pool   *pgxpool.Pool
	worker *Worker
}

// NewHandler returns a configured Handler.
func NewHandler(pool *pgxpool.Pool, worker *Worker) *Handler {
	return &Handler{pool: pool, worker: worker}
}

// RegisterRoutes mounts the worker routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/scout", h.handleScout)
}

// scoutRequest mirrors the API service's scout.Request.
type scoutRequest struct {
	Brand    string  `json:"brand"`
	ItemName *string `json:"item_name"`
	HuntID   string  `json:"hunt_id"`
	MaxPrice int     `json:"max_price"`
}

func (h *Handler) handleScout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HuntID == "" {
		api.WriteError(w, "body must contain hunt_id", http.StatusBadRequest)
		return
	}

	// The hunt row is authoritative for brand, category and price; the
	// request fields only exist for contract compatibility.
	hunt, err := GetHunt(r.Context(), h.pool, req.HuntID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, "hunt not found", http.StatusNotFound)
			return
		}
		slog.Error("load hunt failed", "huntId", req.HuntID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}

	deals, err := h.worker.Run(r.Context(), *hunt)
	if err != nil {
		slog.Error("scout run failed", "huntId", hunt.ID, "err", err)
		api.WriteError(w, "scout run failed", http.StatusInternalServerError)
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"query":       BuildQuery(hunt.Brand, hunt.ItemName),
		"deals_found": len(deals),
		"deals":       deals,
	})
}
