// Package found contains the business logic and HTTP surface for found
// items: listings the scout worker discovered for a user's hunts.
//
// Rows are written only by the worker. The API reads them and flips the
// viewed flag; everything else on a found item is immutable here.
package found

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vill-8/nursery-scout/internal/model"
)

// Service encapsulates found-item business logic.
type Service struct {
	pool *pgxpool.Pool
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// List returns the found items for every hunt owned by userID, newest
// first. Visibility is scoped through the owning hunt so one user never
// sees another's matches. Derived fields (discount percent, safety
// badge) are filled in before return.
func (s *Service) List(ctx context.Context, userID string) ([]model.FoundItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT fi.id, fi.hunt_id, fi.brand, fi.category, fi.title, fi.price,
		        fi.retail_price, fi.link, fi.image_url, fi.safety_status,
		        fi.location, fi.found_at, fi.is_viewed
		 FROM found_items fi
		 JOIN hunts h ON h.id = fi.hunt_id
		 WHERE h.user_id = $1
		 ORDER BY fi.found_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list found items query: %w", err)
	}
	defer rows.Close()

	items := make([]model.FoundItem, 0)
	for rows.Next() {
		var it model.FoundItem
		if err := rows.Scan(
			&it.ID, &it.HuntID, &it.Brand, &it.Category, &it.Title, &it.Price,
			&it.RetailPrice, &it.Link, &it.ImageURL, &it.SafetyStatus,
			&it.Location, &it.FoundAt, &it.IsViewed,
		); err != nil {
			return nil, fmt.Errorf("list found items scan: %w", err)
		}
		if pct, ok := DiscountPercent(it.Price, it.RetailPrice); ok {
			it.DiscountPercent = &pct
		}
		it.SafetyBadge = it.SafetyStatus.Badge()
		items = append(items, it)
	}
	return items, rows.Err()
}

// MarkViewed flips an item's viewed flag. Ownership is checked through
// the owning hunt. Returns ErrNotFound when the item is missing or not
// visible to userID.
func (s *Service) MarkViewed(ctx context.Context, userID, itemID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE found_items fi
		 SET is_viewed = true
		 FROM hunts h
		 WHERE fi.id = $1
		   AND h.id = fi.hunt_id
		   AND h.user_id = $2`,
		itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("mark viewed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ErrNotFound is returned when a found item is missing or not visible to
// the user.
var ErrNotFound = fmt.Errorf("found item not found")
