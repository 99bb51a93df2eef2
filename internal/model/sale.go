package model

import "github.com/google/uuid"

type Sale struct {
	BaseModel
	AmountUSD     float64    `gorm:"not null" json:"amount_usd"`
	AmountBS      float64    `gorm:"not null" json:"amount_bs"`
	ExchangeRate  float64    `gorm:"not null" json:"exchange_rate"`
	PaymentMethod string     `gorm:"type:varchar(20)" json:"payment_method" validate:"omitempty,oneof=CASH CARD TRANSFER MOBILE"`
	Items         []LineItem `gorm:"foreignKey:SaleID" json:"items" validate:"required,min=1,dive"`
	CashierLabel  string     `gorm:"type:varchar(255)" json:"cashier_label"`
}

// LineItem keeps a snapshot of the product so history survives product deletion.
type LineItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SaleID      uuid.UUID `gorm:"type:uuid;index" json:"sale_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;index" json:"product_id" validate:"uuid_required"`
	ProductName string    `gorm:"type:varchar(255)" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	CostPrice   float64   `gorm:"not null" json:"cost_price"`
}
