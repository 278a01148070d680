package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Vill-8/nursery-scout/internal/model"
)

// Execer is the single pgxpool method the worker writes found items
// through. *pgxpool.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Worker runs the full scout cycle for a single hunt: it queries every
// marketplace fetcher, drops listings over the price ceiling, dedups by
// listing link and inserts the rest into found_items.
type Worker struct {
	db       Execer
	rdb      *redis.Client
	fetchers []Fetcher
}

// NewWorker constructs a Worker over the given fetchers.
func NewWorker(db Execer, rdb *redis.Client, fetchers ...Fetcher) *Worker {
	return &Worker{db: db, rdb: rdb, fetchers: fetchers}
}

// Run executes one scout cycle for the hunt and returns the listings
// that became new found items, cheapest first. A failing fetcher is
// logged and skipped; the cycle continues with the remaining platforms.
func (w *Worker) Run(ctx context.Context, h model.Hunt) ([]Listing, error) {
	query := BuildQuery(h.Brand, h.ItemName)
	slog.Info("scout cycle started", "huntId", h.ID, "query", query, "maxPrice", h.MaxPrice)

	var listings []Listing
	for _, f := range w.fetchers {
		batch, err := f.Fetch(ctx, query, h.MaxPrice)
		if err != nil {
			slog.Warn("fetcher failed", "store", f.Store(), "huntId", h.ID, "err", err)
			continue
		}
		listings = append(listings, batch...)
	}

	listings = FilterByPrice(listings, h.MaxPrice)
	SortByPrice(listings)

	deals := make([]Listing, 0, len(listings))
	var dupes int
	for _, l := range listings {
		var imageURL, location *string
		if l.ImageURL != "" {
			imageURL = &l.ImageURL
		}
		if l.Location != "" {
			location = &l.Location
		}

		tag, err := w.db.Exec(ctx,
			`INSERT INTO found_items (hunt_id, brand, category, title, price,
			                          link, image_url, location, safety_status)
			 SELECT $1, $2, $3, $4, $5, $6, $7, $8, 'Unknown'
			 WHERE NOT EXISTS (
			   SELECT 1 FROM found_items WHERE link = $6
			 )`,
			h.ID, h.Brand, h.Category, l.Title, l.Price, l.URL, imageURL, location,
		)
		if err != nil {
			slog.Warn("found item insert failed", "huntId", h.ID, "link", l.URL, "err", err)
			continue
		}
		if tag.RowsAffected() == 0 {
			dupes++
		} else {
			deals = append(deals, l)
		}
	}

	slog.Info("scout cycle complete",
		"huntId", h.ID, "inserted", len(deals), "duplicates", dupes, "candidates", len(listings))

	if len(deals) > 0 {
		event, _ := json.Marshal(map[string]any{
			"type":     "EVENT_ITEMS_FOUND",
			"huntId":   h.ID,
			"userId":   h.UserID,
			"inserted": len(deals),
		})
		if err := w.rdb.Publish(ctx, "EVENT_ITEMS_FOUND", event).Err(); err != nil {
			slog.Warn("publish EVENT_ITEMS_FOUND failed", "err", err)
		}
	}

	return deals, nil
}

const huntCols = `id, user_id, brand, item_name, category, max_price,
	zip_code, radius_miles, is_active, created_at, updated_at`

// GetHunt loads one hunt row by id, regardless of owner — the worker is
// an internal service and trusts its callers.
func GetHunt(ctx context.Context, pool *pgxpool.Pool, huntID string) (*model.Hunt, error) {
	var h model.Hunt
	err := pool.QueryRow(ctx,
		`SELECT `+huntCols+` FROM hunts WHERE id = $1`, huntID,
	).Scan(
		&h.ID, &h.UserID, &h.Brand, &h.ItemName, &h.Category, &h.MaxPrice,
		&h.ZipCode, &h.RadiusMiles, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get hunt %s: %w", huntID, err)
	}
	return &h, nil
}

// LoadActiveHunts fetches every is_active = true hunt, the working set
// of a scheduled scout cycle.
func LoadActiveHunts(ctx context.Context, pool *pgxpool.Pool) ([]model.Hunt, error) {
	rows, err := pool.Query(ctx,
		`SELECT `+huntCols+` FROM hunts WHERE is_active = true`,
	)
	if err != nil {
		return nil, fmt.Errorf("query active hunts: %w", err)
	}
	defer rows.Close()

	var hunts []model.Hunt
	for rows.Next() {
		var h model.Hunt
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Brand, &h.ItemName, &h.Category, &h.MaxPrice,
			&h.ZipCode, &h.RadiusMiles, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan hunt: %w", err)
		}
		hunts = append(hunts, h)
	}
	return hunts, rows.Err()
}
