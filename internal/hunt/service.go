// Package hunt contains the business logic and HTTP surface for hunts:
// user-owned saved searches the scout worker matches marketplace
// listings against.
package hunt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Vill-8/nursery-scout/internal/model"
)

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates hunt business logic. It is transport-agnostic.
type Service struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client) *Service {
	return &Service{pool: pool, rdb: rdb}
}

const huntCols = `id, user_id, brand, item_name, category, max_price,
	zip_code, radius_miles, is_active, created_at, updated_at`

func scanHunt(row interface{ Scan(...any) error }) (*model.Hunt, error) {
	var h model.Hunt
	err := row.Scan(
		&h.ID, &h.UserID, &h.Brand, &h.ItemName, &h.Category, &h.MaxPrice,
		&h.ZipCode, &h.RadiusMiles, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ─── Business logic ──────────────────────────────────────────────────────────

// List returns all hunts owned by userID, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]model.Hunt, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+huntCols+`
		 FROM hunts
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list hunts query: %w", err)
	}
	defer rows.Close()

	hunts := make([]model.Hunt, 0)
	for rows.Next() {
		h, err := scanHunt(rows)
		if err != nil {
			return nil, fmt.Errorf("list hunts scan: %w", err)
		}
		hunts = append(hunts, *h)
	}
	return hunts, rows.Err()
}

// Get returns a single hunt by id, validating ownership.
func (s *Service) Get(ctx context.Context, userID, huntID string) (*model.Hunt, error) {
	h, err := scanHunt(s.pool.QueryRow(ctx,
		`SELECT `+huntCols+` FROM hunts WHERE id = $1 AND user_id = $2`,
		huntID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get hunt: %w", err)
	}
	return h, nil
}

// Create validates input, inserts a new active hunt for userID and
// publishes EVENT_HUNT_CREATED (non-fatal).
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.Hunt, error) {
	p, err := in.Validate()
	if err != nil {
		return nil, err
	}

	h, err := scanHunt(s.pool.QueryRow(ctx,
		`INSERT INTO hunts (user_id, brand, item_name, category, max_price,
		                    zip_code, radius_miles, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		 RETURNING `+huntCols,
		userID, p.Brand, p.ItemName, p.Category, p.MaxPrice, p.ZipCode, p.RadiusMiles,
	))
	if err != nil {
		return nil, fmt.Errorf("create hunt: %w", err)
	}

	// Let the scout worker pick the new hunt up without waiting for the
	// next cron tick (non-fatal).
	event, _ := json.Marshal(map[string]string{
		"type":   "EVENT_HUNT_CREATED",
		"huntId": h.ID,
		"userId": userID,
		"brand":  string(h.Brand),
	})
	if err := s.rdb.Publish(ctx, "EVENT_HUNT_CREATED", event).Err(); err != nil {
		slog.Warn("publish EVENT_HUNT_CREATED failed", "err", err)
	}

	return h, nil
}

// Toggle flips a hunt's active flag and returns the updated row.
// Returns ErrNotFound if the hunt does not exist or belong to userID.
func (s *Service) Toggle(ctx context.Context, userID, huntID string) (*model.Hunt, error) {
	h, err := scanHunt(s.pool.QueryRow(ctx,
		`UPDATE hunts
		 SET is_active  = NOT is_active,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+huntCols,
		huntID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle hunt: %w", err)
	}
	return h, nil
}

// Delete removes a hunt permanently. Its found items go with it
// (ON DELETE CASCADE at the store layer).
func (s *Service) Delete(ctx context.Context, userID, huntID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM hunts WHERE id = $1 AND user_id = $2`,
		huntID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete hunt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when a hunt is missing or does not belong to the user.
var ErrNotFound = fmt.Errorf("hunt not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
