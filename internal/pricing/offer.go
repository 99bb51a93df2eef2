package pricing

import (
	"time"

	"go-pos-console/internal/model"
	"go-pos-console/pkg/validator"
)

// Status is an offer's effective status. It is computed on read and never stored.
type Status string

const (
	StatusInactive  Status = "INACTIVE"
	StatusScheduled Status = "SCHEDULED"
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
)

// Classify derives the status from the active flag and the calendar dates.
// Time of day is ignored; both bounds are inclusive.
func Classify(active bool, start, end, today time.Time) Status {
	if !active {
		return StatusInactive
	}
	d := civilDate(today)
	switch {
	case d.Before(civilDate(start)):
		return StatusScheduled
	case d.After(civilDate(end)):
		return StatusExpired
	default:
		return StatusActive
	}
}

// ClassifyOffer is Classify for a stored offer.
func ClassifyOffer(o model.Offer, today time.Time) Status {
	return Classify(o.Active, o.StartDate, o.EndDate, today)
}

// ValidateOffer checks an offer draft before it is sent or stored.
func ValidateOffer(o model.Offer) error {
	if o.OriginalPrice <= 0 {
		return validator.Invalid("original_price", "must be greater than 0")
	}
	if o.OfferPrice <= 0 {
		return validator.Invalid("offer_price", "must be greater than 0")
	}
	if o.OfferPrice >= o.OriginalPrice {
		return validator.Invalid("offer_price", "must be lower than the original price")
	}
	if o.StartDate.IsZero() || o.EndDate.IsZero() {
		return validator.Invalid("dates", "start_date and end_date are required")
	}
	if civilDate(o.EndDate).Before(civilDate(o.StartDate)) {
		return validator.Invalid("end_date", "cannot be before start_date")
	}
	return nil
}

// DiscountPercent is the derived whole-number discount of an offer, 0 when the prices are invalid.
func DiscountPercent(o model.Offer) float64 {
	p, err := PercentFromOfferPrice(o.OriginalPrice, o.OfferPrice)
	if err != nil {
		return 0
	}
	return p
}

// Describe annotates an offer with its derived fields.
func Describe(o model.Offer, today time.Time) model.OfferResponse {
	return model.OfferResponse{
		Offer:           o,
		DiscountPercent: DiscountPercent(o),
		DiscountAmount:  DiscountAmount(o.OriginalPrice, o.OfferPrice),
		Status:          string(ClassifyOffer(o, today)),
	}
}

// EffectivePrice returns the lowest price among the product's ACTIVE offers, or the
// product's sale price when none applies. The winning offer is returned too.
func EffectivePrice(p model.Product, offers []model.Offer, today time.Time) (float64, *model.Offer) {
	price := p.SalePrice
	var best *model.Offer
	for i := range offers {
		o := &offers[i]
		if o.ProductID != p.ID || ClassifyOffer(*o, today) != StatusActive {
			continue
		}
		if best == nil || o.OfferPrice < best.OfferPrice {
			best = o
		}
	}
	if best != nil {
		price = best.OfferPrice
	}
	return price, best
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
