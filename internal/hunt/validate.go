package hunt

import (
	"fmt"
	"strings"

	"github.com/Vill-8/nursery-scout/internal/model"
)

// Creation form constraints. Price and radius are slider-bound on the
// client; the server enforces the same ranges and steps.
const (
	MaxPriceDefault = 500
	MaxPriceCeiling = 1200
	MaxPriceStep    = 25

	RadiusDefault = 25
	RadiusMin     = 5
	RadiusMax     = 100
	RadiusStep    = 5

	ZipCodeMaxLen = 10
)

// CreateInput is the request body for hunt creation. MaxPrice and
// RadiusMiles may be omitted, in which case the form defaults apply.
type CreateInput struct {
	Brand       string `json:"brand"`
	ItemName    string `json:"item_name"`
	Category    string `json:"category"`
	MaxPrice    *int   `json:"max_price"`
	ZipCode     string `json:"zip_code"`
	RadiusMiles *int   `json:"radius_miles"`
}

// CreateParams is a fully validated, defaulted CreateInput.
type CreateParams struct {
	Brand       model.Brand
	ItemName    *string
	Category    model.Category
	MaxPrice    int
	ZipCode     string
	RadiusMiles int
}

// Validate checks required fields, applies defaults and range-checks the
// slider values. All failures are ValidationErrors; no database call is
// made for invalid input.
func (in CreateInput) Validate() (*CreateParams, error) {
	if strings.TrimSpace(in.Brand) == "" {
		return nil, &ValidationError{Msg: "brand is required"}
	}
	brand, err := model.ParseBrand(in.Brand)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	if strings.TrimSpace(in.Category) == "" {
		return nil, &ValidationError{Msg: "category is required"}
	}
	category, err := model.ParseCategory(in.Category)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	zip := strings.TrimSpace(in.ZipCode)
	if zip == "" {
		return nil, &ValidationError{Msg: "zip code is required"}
	}
	if len(zip) > ZipCodeMaxLen {
		return nil, &ValidationError{Msg: fmt.Sprintf("zip code must be at most %d characters", ZipCodeMaxLen)}
	}

	maxPrice := MaxPriceDefault
	if in.MaxPrice != nil {
		maxPrice = *in.MaxPrice
		if maxPrice <= 0 || maxPrice > MaxPriceCeiling || maxPrice%MaxPriceStep != 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf(
				"max price must be a positive multiple of %d up to %d", MaxPriceStep, MaxPriceCeiling)}
		}
	}

	radius := RadiusDefault
	if in.RadiusMiles != nil {
		radius = *in.RadiusMiles
		if radius < RadiusMin || radius > RadiusMax || radius%RadiusStep != 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf(
				"radius must be a multiple of %d between %d and %d miles", RadiusStep, RadiusMin, RadiusMax)}
		}
	}

	var itemName *string
	if name := strings.TrimSpace(in.ItemName); name != "" {
		itemName = &name
	}

	return &CreateParams{
		Brand:       brand,
		ItemName:    itemName,
		Category:    category,
		MaxPrice:    maxPrice,
		ZipCode:     zip,
		RadiusMiles: radius,
	}, nil
}
