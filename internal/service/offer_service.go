package service

import (
	"errors"
	"time"

	"go-pos-console/internal/model"
	"go-pos-console/internal/pricing"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/ws"
	"go-pos-console/pkg/validator"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type OfferService interface {
	CreateOffer(req *model.OfferRequest, actor Actor) (*model.OfferResponse, error)
	UpdateOffer(id uuid.UUID, req *model.OfferRequest, actor Actor) (*model.OfferResponse, error)
	DeleteOffer(id uuid.UUID, actor Actor) error
	GetOffer(id uuid.UUID) (*model.OfferResponse, error)
	ListOffers() ([]model.OfferResponse, error)
}

type offerService struct {
	offerRepo   repository.OfferRepository
	productRepo repository.ProductRepository
	audit       AuditService
	wsHub       *ws.Hub
	metrics     Recorder
	now         func() time.Time
}

func NewOfferService(offerRepo repository.OfferRepository, productRepo repository.ProductRepository, audit AuditService, hub *ws.Hub, metrics Recorder) OfferService {
	return &offerService{
		offerRepo:   offerRepo,
		productRepo: productRepo,
		audit:       audit,
		wsHub:       hub,
		metrics:     recorderOrNop(metrics),
		now:         time.Now,
	}
}

func (s *offerService) CreateOffer(req *model.OfferRequest, actor Actor) (*model.OfferResponse, error) {
	offer := &model.Offer{Active: true}
	if err := s.apply(offer, req); err != nil {
		return nil, err
	}

	offer.CreatedBy = actor.ID
	offer.UpdatedBy = actor.ID
	if err := s.offerRepo.Create(offer); err != nil {
		return nil, err
	}

	resp := pricing.Describe(*offer, s.now())
	s.changed(actor, ActionOfferCreate, "offer_created", resp)
	return &resp, nil
}

func (s *offerService) UpdateOffer(id uuid.UUID, req *model.OfferRequest, actor Actor) (*model.OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(id)
	if err != nil {
		return nil, ErrOfferNotFound
	}
	offer.Product = nil

	if err := s.apply(offer, req); err != nil {
		return nil, err
	}

	offer.UpdatedBy = actor.ID
	if err := s.offerRepo.Update(offer); err != nil {
		return nil, err
	}

	resp := pricing.Describe(*offer, s.now())
	s.changed(actor, ActionOfferUpdate, "offer_updated", resp)
	return &resp, nil
}

func (s *offerService) DeleteOffer(id uuid.UUID, actor Actor) error {
	offer, err := s.offerRepo.FindByID(id)
	if err != nil {
		return ErrOfferNotFound
	}
	if err := s.offerRepo.Delete(id); err != nil {
		return err
	}
	s.changed(actor, ActionOfferDelete, "offer_deleted", pricing.Describe(*offer, s.now()))
	return nil
}

func (s *offerService) GetOffer(id uuid.UUID) (*model.OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(id)
	if err != nil {
		return nil, ErrOfferNotFound
	}
	resp := pricing.Describe(*offer, s.now())
	return &resp, nil
}

// ListOffers annotates every offer with its discount and its status as of today.
func (s *offerService) ListOffers() ([]model.OfferResponse, error) {
	offers, err := s.offerRepo.FindAll()
	if err != nil {
		return nil, err
	}

	today := s.now()
	out := make([]model.OfferResponse, len(offers))
	for i, o := range offers {
		out[i] = pricing.Describe(o, today)
	}
	return out, nil
}

// apply fills offer from req. The original price is snapshotted from the product
// on creation and whenever the offer moves to another product.
func (s *offerService) apply(offer *model.Offer, req *model.OfferRequest) error {
	if err := s.reject(validator.Check(req)); err != nil {
		return err
	}

	if offer.ProductID != req.ProductID || offer.OriginalPrice == 0 {
		product, err := s.productRepo.FindByID(req.ProductID)
		if err != nil {
			return ErrProductNotFound
		}
		offer.ProductID = product.ID
		offer.OriginalPrice = product.SalePrice
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return ErrInvalidDateFormat
	}
	offer.StartDate = start
	offer.EndDate = end
	if req.Active != nil {
		offer.Active = *req.Active
	}

	switch {
	case req.DiscountPercent != nil && req.OfferPrice != nil:
		return s.reject(validator.Invalid("offer_price", "give either offer_price or discount_percent, not both"))
	case req.DiscountPercent != nil:
		price, err := pricing.OfferPriceFromPercent(offer.OriginalPrice, *req.DiscountPercent)
		if err != nil {
			return s.reject(err)
		}
		offer.OfferPrice = price
	case req.OfferPrice != nil:
		offer.OfferPrice = *req.OfferPrice
	default:
		return s.reject(validator.Invalid("offer_price", "offer_price or discount_percent is required"))
	}

	return s.reject(pricing.ValidateOffer(*offer))
}

// reject counts validation failures by field and passes err through.
func (s *offerService) reject(err error) error {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		s.metrics.IncOfferRejected(verr.Field)
	}
	return err
}

func (s *offerService) changed(actor Actor, action, wsAction string, o model.OfferResponse) {
	if s.audit != nil {
		s.audit.Record(actor, action, map[string]interface{}{
			"id":          o.ID,
			"product_id":  o.ProductID,
			"offer_price": o.OfferPrice,
		})
	}
	s.wsHub.Publish(ws.Event{Type: ws.TypeOffer, Action: wsAction, Data: o, User: actor.Name})
}
