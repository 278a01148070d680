// Package model defines the shared row types and enumerations for
// Nursery Scout: hunts (saved search criteria), found items (listings
// discovered by the scout worker) and user profiles.
package model

import (
	"fmt"
	"time"
)

// ─── Enumerations ────────────────────────────────────────────────────────────

// Brand values mirror the brand enum in PostgreSQL.
type Brand string

const (
	BrandUPPAbaby Brand = "UPPAbaby"
	BrandNuna     Brand = "Nuna"
	BrandSNOO     Brand = "SNOO"
	BrandStokke   Brand = "Stokke"
)

// ParseBrand converts a raw string to a Brand, returning an error for
// unknown values.
func ParseBrand(s string) (Brand, error) {
	b := Brand(s)
	switch b {
	case BrandUPPAbaby, BrandNuna, BrandSNOO, BrandStokke:
		return b, nil
	}
	return "", fmt.Errorf("unknown brand %q", s)
}

// Category values mirror the item_category enum in PostgreSQL.
type Category string

const (
	CategoryStroller  Category = "Stroller"
	CategoryBassinet  Category = "Bassinet"
	CategoryCarSeat   Category = "Car Seat"
	CategoryHighChair Category = "High Chair"
)

// ParseCategory converts a raw string to a Category, returning an error
// for unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryStroller, CategoryBassinet, CategoryCarSeat, CategoryHighChair:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// SafetyStatus classifies the recall risk of a found item's product.
type SafetyStatus string

const (
	SafetyVerified    SafetyStatus = "Verified Model"
	SafetyCheckRecall SafetyStatus = "Check Recall"
	SafetyRecalled    SafetyStatus = "Recalled"
	SafetyUnknown     SafetyStatus = "Unknown"
)

// Badge maps a safety status to the badge style the client should
// render. The mapping is total: any unrecognised value falls back to the
// neutral style.
func (s SafetyStatus) Badge() string {
	switch s {
	case SafetyVerified:
		return "verified"
	case SafetyCheckRecall:
		return "warning"
	case SafetyRecalled:
		return "danger"
	default:
		return "neutral"
	}
}

// ─── Rows ────────────────────────────────────────────────────────────────────

// Hunt is a user-owned saved search: brand, category, price ceiling and
// location criteria the scout worker matches listings against.
type Hunt struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Brand       Brand     `json:"brand"`
	ItemName    *string   `json:"item_name"`
	Category    Category  `json:"category"`
	MaxPrice    int       `json:"max_price"`
	ZipCode     string    `json:"zip_code"`
	RadiusMiles int       `json:"radius_miles"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FoundItem is a marketplace listing discovered by the scout worker for
// one hunt. Rows are only ever written by the worker; the API mutates
// nothing but the viewed flag.
//
// DiscountPercent and SafetyBadge are derived, not stored: the listing
// service fills them in before the row is serialised.
type FoundItem struct {
	ID              string       `json:"id"`
	HuntID          string       `json:"hunt_id"`
	Brand           Brand        `json:"brand"`
	Category        Category     `json:"category"`
	Title           string       `json:"title"`
	Price           float64      `json:"price"`
	RetailPrice     *float64     `json:"retail_price"`
	Link            string       `json:"link"`
	ImageURL        *string      `json:"image_url"`
	SafetyStatus    SafetyStatus `json:"safety_status"`
	Location        *string      `json:"location"`
	FoundAt         time.Time    `json:"found_at"`
	IsViewed        bool         `json:"is_viewed"`
	DiscountPercent *int         `json:"discount_percent,omitempty"`
	SafetyBadge     string       `json:"safety_badge,omitempty"`
}

// Profile is the one-to-one settings row for a user identity. The row is
// created by the backend on signup; the API only reads and updates it.
type Profile struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	FullName          *string   `json:"full_name"`
	TelegramUsername  *string   `json:"telegram_username"`
	TelegramConnected bool      `json:"telegram_connected"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
