package model_test

import (
	"testing"

	"github.com/Vill-8/nursery-scout/internal/model"
)

// ── ParseBrand ─────────────────────────────────────────────────────────────

func TestParseBrand_ValidValues(t *testing.T) {
	valid := []string{"UPPAbaby", "Nuna", "SNOO", "Stokke"}
	for _, s := range valid {
		got, err := model.ParseBrand(s)
		if err != nil {
			t.Errorf("ParseBrand(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseBrand(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseBrand_InvalidValues(t *testing.T) {
	invalid := []string{"", "uppababy", "NUNA", "Graco", " Nuna"}
	for _, s := range invalid {
		if _, err := model.ParseBrand(s); err == nil {
			t.Errorf("ParseBrand(%q) expected error, got nil", s)
		}
	}
}

// ── ParseCategory ──────────────────────────────────────────────────────────

func TestParseCategory_ValidValues(t *testing.T) {
	valid := []string{"Stroller", "Bassinet", "Car Seat", "High Chair"}
	for _, s := range valid {
		got, err := model.ParseCategory(s)
		if err != nil {
			t.Errorf("ParseCategory(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseCategory(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseCategory_InvalidValues(t *testing.T) {
	invalid := []string{"", "stroller", "CarSeat", "Crib"}
	for _, s := range invalid {
		if _, err := model.ParseCategory(s); err == nil {
			t.Errorf("ParseCategory(%q) expected error, got nil", s)
		}
	}
}

// ── SafetyStatus badge mapping ─────────────────────────────────────────────

// The mapping must be total over the four enumerated values, with a
// neutral default for anything unrecognised.
func TestSafetyStatusBadge_Exhaustive(t *testing.T) {
	cases := []struct {
		status model.SafetyStatus
		want   string
	}{
		{model.SafetyVerified, "verified"},
		{model.SafetyCheckRecall, "warning"},
		{model.SafetyRecalled, "danger"},
		{model.SafetyUnknown, "neutral"},
	}
	for _, c := range cases {
		if got := c.status.Badge(); got != c.want {
			t.Errorf("Badge(%q) = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestSafetyStatusBadge_UnrecognisedDefaultsToNeutral(t *testing.T) {
	for _, s := range []model.SafetyStatus{"", "recalled", "Totally Fine"} {
		if got := s.Badge(); got != "neutral" {
			t.Errorf("Badge(%q) = %q, want \"neutral\"", s, got)
		}
	}
}
