// Package dashboard assembles the single-call dashboard view: the
// caller's hunts, their found items, and the derived counts the client
// renders in the header and on each hunt card.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/Vill-8/nursery-scout/internal/api"
	"github.com/Vill-8/nursery-scout/internal/auth"
	"github.com/Vill-8/nursery-scout/internal/found"
	"github.com/Vill-8/nursery-scout/internal/hunt"
	"github.com/Vill-8/nursery-scout/internal/model"
)

// Summary is the response body of GET /dashboard.
type Summary struct {
	Hunts       []model.Hunt      `json:"hunts"`
	Items       []model.FoundItem `json:"items"`
	ActiveHunts int               `json:"active_hunts"`
	NewItems    int               `json:"new_items"`
	// MatchCounts maps hunt id → number of unviewed items for that hunt.
	MatchCounts map[string]int `json:"match_counts"`
}

// BuildSummary derives the dashboard counts from already-fetched rows:
// active hunts, unviewed items, and per-hunt unviewed match counts.
func BuildSummary(hunts []model.Hunt, items []model.FoundItem) Summary {
	s := Summary{
		Hunts:       hunts,
		Items:       items,
		MatchCounts: make(map[string]int, len(hunts)),
	}
	for _, h := range hunts {
		if h.IsActive {
			s.ActiveHunts++
		}
		s.MatchCounts[h.ID] = 0
	}
	for _, it := range items {
		if it.IsViewed {
			continue
		}
		s.NewItems++
		if _, ok := s.MatchCounts[it.HuntID]; ok {
			s.MatchCounts[it.HuntID]++
		}
	}
	return s
}

// Handler serves GET /dashboard.
type Handler struct {
	hunts *hunt.Service
	items *found.Service
}

// NewHandler returns a configured Handler.
func NewHandler(hunts *hunt.Service, items *found.Service) *Handler {
	return &Handler{hunts: hunts, items: items}
}

// RegisterRoutes mounts the dashboard route on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/dashboard", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := auth.UserID(r.Context())
	if userID == "" {
		api.WriteError(w, "missing user identity", http.StatusUnauthorized)
		return
	}

	hunts, err := h.hunts.List(r.Context(), userID)
	if err != nil {
		slog.Error("dashboard hunts fetch failed", "userId", userID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}

	items, err := h.items.List(r.Context(), userID)
	if err != nil {
		slog.Error("dashboard items fetch failed", "userId", userID, "err", err)
		api.WriteError(w, "database error", http.StatusInternalServerError)
		return
	}

	api.WriteJSON(w, http.StatusOK, BuildSummary(hunts, items))
}
