// Package scraper implements the scout worker: marketplace listing
// fetching, price filtering and found-item ingestion.
package scraper

import (
	"context"
	"sort"
	"strings"

	"github.com/Vill-8/nursery-scout/internal/model"
)

// Listing is a normalised marketplace listing fetched from one platform.
// Inserted listings are echoed back to the caller as the "deals" array,
// so the JSON shape is part of the worker's response contract.
type Listing struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	URL      string  `json:"url"`
	Store    string  `json:"store"`
	Location string  `json:"location,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Fetcher searches one marketplace platform for listings matching a
// query.
type Fetcher interface {
	// Store names the platform, e.g. "eBay".
	Store() string
	Fetch(ctx context.Context, query string, maxPrice int) ([]Listing, error)
}

// BuildQuery combines a hunt's brand and optional item name into the
// search query sent to each platform.
func BuildQuery(brand model.Brand, itemName *string) string {
	q := string(brand)
	if itemName != nil {
		q += " " + *itemName
	}
	return strings.TrimSpace(q)
}

// FilterByPrice drops listings over the hunt's price ceiling. A ceiling
// of zero or less disables the filter.
func FilterByPrice(listings []Listing, maxPrice int) []Listing {
	if maxPrice <= 0 {
		return listings
	}
	kept := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if l.Price <= float64(maxPrice) {
			kept = append(kept, l)
		}
	}
	return kept
}

// SortByPrice orders listings cheapest first, the order they are
// ingested and shown in.
func SortByPrice(listings []Listing) {
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Price < listings[j].Price
	})
}
