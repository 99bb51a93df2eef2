package repository

import (
	"go-pos-console/internal/model"

	"gorm.io/gorm"
)

type ExchangeRateRepository interface {
	Create(rate *model.ExchangeRate) error
	FindAll() ([]model.ExchangeRate, error)
	Latest() (*model.ExchangeRate, error)
}

type exchangeRateRepo struct {
	db *gorm.DB
}

func NewExchangeRateRepo(db *gorm.DB) ExchangeRateRepository {
	return &exchangeRateRepo{db}
}

func (r *exchangeRateRepo) Create(rate *model.ExchangeRate) error {
	return r.db.Create(rate).Error
}

func (r *exchangeRateRepo) FindAll() ([]model.ExchangeRate, error) {
	var rates []model.ExchangeRate
	err := r.db.Order("created_at DESC").Order("id DESC").Find(&rates).Error
	return rates, err
}

func (r *exchangeRateRepo) Latest() (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	if err := r.db.Order("created_at DESC").Order("id DESC").First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}
