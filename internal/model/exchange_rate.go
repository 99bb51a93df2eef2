package model

import "time"

// ExchangeRate is one entry of the USD to local currency history.
type ExchangeRate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Rate      float64   `gorm:"not null" json:"rate" validate:"gt=0"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
