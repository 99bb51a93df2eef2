package repository

import (
	"go-pos-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferRepository interface {
	Create(offer *model.Offer) error
	FindAll() ([]model.Offer, error)
	FindByID(id uuid.UUID) (*model.Offer, error)
	FindByProducts(productIDs []uuid.UUID) ([]model.Offer, error)
	Update(offer *model.Offer) error
	Delete(id uuid.UUID) error
}

type offerRepo struct {
	db *gorm.DB
}

func NewOfferRepo(db *gorm.DB) OfferRepository {
	return &offerRepo{db}
}

func (r *offerRepo) Create(offer *model.Offer) error {
	return r.db.Omit("Product").Create(offer).Error
}

func (r *offerRepo) FindAll() ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.Preload("Product").Order("start_date DESC").Find(&offers).Error
	return offers, err
}

func (r *offerRepo) FindByID(id uuid.UUID) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.Preload("Product").First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByProducts returns the active-flagged offers of the given products; dates are not checked here.
func (r *offerRepo) FindByProducts(productIDs []uuid.UUID) ([]model.Offer, error) {
	var offers []model.Offer
	if len(productIDs) == 0 {
		return offers, nil
	}
	err := r.db.Where("product_id IN ? AND active = ?", productIDs, true).Find(&offers).Error
	return offers, err
}

func (r *offerRepo) Update(offer *model.Offer) error {
	return r.db.Omit("Product").Save(offer).Error
}

func (r *offerRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Offer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
