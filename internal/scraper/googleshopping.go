package scraper

import (
	"context"
	"strings"
)

// GoogleShoppingFetcher returns canned Google Shopping-shaped listings;
// same placeholder status as EbayFetcher.
//
// TODO: back with the SerpAPI Google Shopping endpoint when an API key
// is available.
type GoogleShoppingFetcher struct{}

// Store implements Fetcher.
func (GoogleShoppingFetcher) Store() string { return "Google Shopping" }

// Fetch implements Fetcher with mock results.
func (GoogleShoppingFetcher) Fetch(ctx context.Context, query string, maxPrice int) ([]Listing, error) {
	searchURL := "https://www.google.com/search?tbm=shop&q=" + strings.ReplaceAll(query, " ", "+")
	return []Listing{
		{
			Title: "Google Shopping: " + query + " - Premium Deal",
			Price: 149.99,
			URL:   searchURL,
			Store: "Google Shopping",
		},
		{
			Title: "Google Shopping: " + query + " - Budget Option",
			Price: 99.99,
			URL:   searchURL + "&sort=price",
			Store: "Google Shopping",
		},
	}, nil
}
