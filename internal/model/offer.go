package model

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a time-boxed discounted price for a product.
// OriginalPrice is a snapshot of the product's sale price when the offer was made.
type Offer struct {
	BaseModel
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product       *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	OriginalPrice float64   `gorm:"not null" json:"original_price" validate:"gt=0"`
	OfferPrice    float64   `gorm:"not null" json:"offer_price" validate:"gt=0"`
	StartDate     time.Time `gorm:"type:date;not null" json:"start_date" validate:"required"`
	EndDate       time.Time `gorm:"type:date;not null" json:"end_date" validate:"required"`
	Active        bool      `gorm:"default:true" json:"active"`
}

// OfferResponse adds the derived, never-stored fields.
type OfferResponse struct {
	Offer
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	Status          string  `json:"status"`
}
