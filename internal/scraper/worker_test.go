package scraper_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/Vill-8/nursery-scout/internal/model"
	"github.com/Vill-8/nursery-scout/internal/scraper"
)

// fakeExec stands in for the pgxpool Exec the worker inserts through.
// It mimics the dedup insert: the first write per link reports one row,
// repeats report zero.
type fakeExec struct {
	links map[string]bool
	calls int
}

func newFakeExec() *fakeExec {
	return &fakeExec{links: map[string]bool{}}
}

func (f *fakeExec) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls++
	link := args[5].(string)
	if f.links[link] {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	f.links[link] = true
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// stubFetcher returns a fixed listing set.
type stubFetcher struct {
	store    string
	listings []scraper.Listing
}

func (f stubFetcher) Store() string { return f.store }

func (f stubFetcher) Fetch(ctx context.Context, query string, maxPrice int) ([]scraper.Listing, error) {
	return f.listings, nil
}

// deadRedis returns a client whose publishes fail fast; the worker
// treats publish failures as non-fatal.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func testHunt() model.Hunt {
	return model.Hunt{
		ID:       "hunt-1",
		UserID:   "user-1",
		Brand:    model.BrandNuna,
		Category: model.CategoryCarSeat,
		MaxPrice: 150,
	}
}

// Run must return the inserted listings themselves (the response's
// "deals" array), cheapest first, with over-ceiling listings filtered
// and duplicate links skipped.
func TestWorkerRun_ReturnsInsertedDeals(t *testing.T) {
	exec := newFakeExec()
	exec.links["https://market.test/dupe"] = true // already in found_items

	worker := scraper.NewWorker(exec, deadRedis(), stubFetcher{
		store: "eBay",
		listings: []scraper.Listing{
			{Title: "mid", Price: 129.99, URL: "https://market.test/mid", Store: "eBay"},
			{Title: "cheap", Price: 89.99, URL: "https://market.test/cheap", Store: "eBay"},
			{Title: "over ceiling", Price: 151, URL: "https://market.test/over", Store: "eBay"},
			{Title: "seen before", Price: 99, URL: "https://market.test/dupe", Store: "eBay"},
		},
	})

	deals, err := worker.Run(context.Background(), testHunt())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if len(deals) != 2 {
		t.Fatalf("Run() returned %d deals, want 2: %+v", len(deals), deals)
	}
	if deals[0].Title != "cheap" || deals[1].Title != "mid" {
		t.Errorf("deals not cheapest first: %q, %q", deals[0].Title, deals[1].Title)
	}
	// The over-ceiling listing must never reach the store.
	if exec.calls != 3 {
		t.Errorf("insert attempted %d times, want 3 (filtered listing excluded)", exec.calls)
	}
}

func TestWorkerRun_AllDuplicatesYieldNoDeals(t *testing.T) {
	exec := newFakeExec()
	fetcher := stubFetcher{
		store: "eBay",
		listings: []scraper.Listing{
			{Title: "a", Price: 50, URL: "https://market.test/a", Store: "eBay"},
		},
	}
	worker := scraper.NewWorker(exec, deadRedis(), fetcher)

	if _, err := worker.Run(context.Background(), testHunt()); err != nil {
		t.Fatalf("first Run() unexpected error: %v", err)
	}
	deals, err := worker.Run(context.Background(), testHunt())
	if err != nil {
		t.Fatalf("second Run() unexpected error: %v", err)
	}
	if len(deals) != 0 {
		t.Errorf("second Run() returned %d deals, want 0 (all duplicates)", len(deals))
	}
}

// The deals array is part of the worker's response contract, so the
// listing JSON keys are load-bearing.
func TestListingJSONShape(t *testing.T) {
	raw, err := json.Marshal(scraper.Listing{
		Title: "t", Price: 89.99, URL: "https://market.test/a", Store: "eBay",
	})
	if err != nil {
		t.Fatalf("marshal listing: %v", err)
	}
	for _, key := range []string{`"title"`, `"price"`, `"url"`, `"store"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("listing JSON missing %s: %s", key, raw)
		}
	}
	for _, key := range []string{`"location"`, `"image_url"`} {
		if strings.Contains(string(raw), key) {
			t.Errorf("empty optional field %s should be omitted: %s", key, raw)
		}
	}
}
