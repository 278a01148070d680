// Package profile contains the business logic and HTTP surface for the
// per-user settings row.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vill-8/nursery-scout/internal/model"
)

// Service encapsulates profile business logic.
type Service struct {
	pool *pgxpool.Pool
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

const profileCols = `id, user_id, full_name, telegram_username,
	telegram_connected, created_at, updated_at`

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.TelegramUsername,
		&p.TelegramConnected, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the profile row for userID. The row is created by the
// backend on signup, so zero rows means the signup trigger has not run
// yet; that case surfaces as ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE user_id = $1`,
		userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update sets the display name and Telegram handle and returns the
// updated row. Empty strings clear the corresponding field.
func (s *Service) Update(ctx context.Context, userID, fullName, telegramUsername string) (*model.Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx,
		`UPDATE profiles
		 SET full_name         = NULLIF($1, ''),
		     telegram_username = NULLIF($2, ''),
		     updated_at        = NOW()
		 WHERE user_id = $3
		 RETURNING `+profileCols,
		fullName, telegramUsername, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// ErrNotFound is returned when no profile row exists for the user yet.
var ErrNotFound = fmt.Errorf("profile not found")
