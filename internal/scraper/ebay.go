package scraper

import (
	"context"
	"strings"
)

// EbayFetcher returns canned eBay-shaped listings so the full ingest
// flow can run end to end without marketplace credentials.
//
// TODO: replace with the eBay Browse API once application keys are
// provisioned.
type EbayFetcher struct{}

// Store implements Fetcher.
func (EbayFetcher) Store() string { return "eBay" }

// Fetch implements Fetcher with mock results.
func (EbayFetcher) Fetch(ctx context.Context, query string, maxPrice int) ([]Listing, error) {
	searchURL := "https://www.ebay.com/sch/i.html?_nkw=" + strings.ReplaceAll(query, " ", "+")
	return []Listing{
		{
			Title: "eBay: " + query + " - Seller: BuyItNow",
			Price: 129.99,
			URL:   searchURL,
			Store: "eBay",
		},
		{
			Title: "eBay: " + query + " - Auction",
			Price: 89.99,
			URL:   searchURL + "&LH_Auction=1",
			Store: "eBay",
		},
	}, nil
}
