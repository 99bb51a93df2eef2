// Package pricing converts between discount percentages and offer prices.
//
// Both directions share one rounding policy: prices are rounded half-up to cents,
// percentages derived from prices are rounded to the nearest whole number.
// Feeding OfferPriceFromPercent(b, p) back into PercentFromOfferPrice(b, ·) yields
// p within RoundTripTolerance for any base price of at least 1.
package pricing

import (
	"fmt"

	"go-pos-console/pkg/validator"

	"github.com/shopspring/decimal"
)

// RoundTripTolerance is the largest difference, in percentage points, between a
// percent and the percent recovered from its rounded offer price.
const RoundTripTolerance = 1

var hundred = decimal.NewFromInt(100)

// OfferPriceFromPercent returns base*(1-percent/100) rounded to cents.
// percent must lie strictly between 0 and 100 and base must be positive.
// The rounded price must also remain strictly between 0 and base.
func OfferPriceFromPercent(base, percent float64) (float64, error) {
	if base <= 0 {
		return 0, validator.Invalid("base_price", "must be greater than 0")
	}
	if percent <= 0 || percent >= 100 {
		return 0, validator.Invalid("percent", "must be between 0 and 100 (exclusive)")
	}

	b := decimal.NewFromFloat(base)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(hundred))
	price := b.Mul(factor).Round(2)

	if !price.IsPositive() || price.GreaterThanOrEqual(b) {
		return 0, validator.Invalid("percent", fmt.Sprintf("%v%% of %v does not produce a valid offer price", percent, base))
	}
	return price.InexactFloat64(), nil
}

// PercentFromOfferPrice returns round((base-offer)/base*100), ties away from zero.
// offer must lie strictly between 0 and base.
func PercentFromOfferPrice(base, offer float64) (float64, error) {
	if base <= 0 {
		return 0, validator.Invalid("base_price", "must be greater than 0")
	}
	if offer <= 0 {
		return 0, validator.Invalid("offer_price", "must be greater than 0")
	}
	if offer >= base {
		return 0, validator.Invalid("offer_price", "must be lower than the base price")
	}

	b := decimal.NewFromFloat(base)
	o := decimal.NewFromFloat(offer)
	percent := b.Sub(o).Div(b).Mul(hundred).Round(0)
	return percent.InexactFloat64(), nil
}

// DiscountAmount returns base-offer in cents, never negative.
func DiscountAmount(base, offer float64) float64 {
	d := decimal.NewFromFloat(base).Sub(decimal.NewFromFloat(offer)).Round(2)
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}
