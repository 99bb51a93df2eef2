package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	SKU         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode     string     `gorm:"type:varchar(64);index" json:"barcode"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string     `gorm:"type:text" json:"description"`
	CostPrice   float64    `gorm:"default:0" json:"cost_price" validate:"gte=0"`
	SalePrice   float64    `gorm:"default:0" json:"sale_price" validate:"gte=0"`
	Stock       int        `gorm:"default:0" json:"stock" validate:"gte=0"`
	ImageRef    string     `gorm:"type:varchar(255)" json:"image_ref"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
}

// CategoryName returns the category label, or "" when uncategorized.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
