package found

import "math"

// DiscountPercent computes how far a listing's price sits below retail,
// as round((retail − price) / retail × 100). The second return is false
// when no retail price is known or the rounded value is not positive —
// callers render no discount chip in that case.
func DiscountPercent(price float64, retailPrice *float64) (int, bool) {
	if retailPrice == nil || *retailPrice <= 0 {
		return 0, false
	}
	pct := int(math.Round((*retailPrice - price) / *retailPrice * 100))
	if pct <= 0 {
		return 0, false
	}
	return pct, true
}
