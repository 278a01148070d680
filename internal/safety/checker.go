// Package safety implements the recall lookup for marketplace listing
// URLs.
//
// The only implementation today is StubChecker. A production integration
// (CPSC / NHTSA recall databases) implements the same Checker interface
// and three-way result contract.
package safety

import (
	"context"
	"math/rand/v2"
	"time"
)

// Status is the three-way recall classification for a listing.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusRecall  Status = "recall"
	StatusUnknown Status = "unknown"
)

// Result is the outcome of a recall lookup.
type Result struct {
	Status  Status `json:"status"`
	Product string `json:"product"`
	Brand   string `json:"brand"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Checker looks up recall information for a listing URL.
type Checker interface {
	Check(ctx context.Context, listingURL string) (*Result, error)
}

// stubResults are the canned outcomes the stub cycles through, one per
// status.
var stubResults = []Result{
	{
		Status:  StatusSafe,
		Product: "VISTA V2 Stroller",
		Brand:   "UPPAbaby",
		Message: "No recalls found for this model",
		Details: "This stroller meets all current safety standards. Last checked against CPSC database on Jan 2024.",
	},
	{
		Status:  StatusRecall,
		Product: "PIPA Lite R Car Seat",
		Brand:   "Nuna",
		Message: "Active recall - Handle may release unexpectedly",
		Details: "Recall issued December 2023. Contact manufacturer for free repair kit. NHTSA Campaign Number: 24V-XXX.",
	},
	{
		Status:  StatusUnknown,
		Product: "Unknown Product",
		Brand:   "Unknown",
		Message: "Unable to verify this listing",
		Details: "We couldn't identify this product. Please verify the model number and try again, or contact the seller for more details.",
	},
}

// StubChecker is a development placeholder: it waits Delay, then returns
// one of three canned results picked uniformly at random, ignoring the
// URL entirely. It must not ship as the production checker.
type StubChecker struct {
	Delay time.Duration
	Rand  *rand.Rand // nil uses the global source
}

// NewStubChecker returns a stub with the 2s delay the original UI shows.
func NewStubChecker() *StubChecker {
	return &StubChecker{Delay: 2 * time.Second}
}

// Check implements Checker with the canned-result placeholder logic.
func (c *StubChecker) Check(ctx context.Context, listingURL string) (*Result, error) {
	if c.Delay > 0 {
		select {
		case <-time.After(c.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	n := len(stubResults)
	var i int
	if c.Rand != nil {
		i = c.Rand.IntN(n)
	} else {
		i = rand.IntN(n)
	}
	r := stubResults[i]
	return &r, nil
}
