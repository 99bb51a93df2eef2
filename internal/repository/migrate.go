package repository

import (
	"go-pos-console/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every table of the API.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Privilege{},
		&model.Role{},
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Offer{},
		&model.Sale{},
		&model.LineItem{},
		&model.AuditEntry{},
		&model.ExchangeRate{},
	)
}
