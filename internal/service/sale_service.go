package service

import (
	"fmt"
	"time"

	"go-pos-console/internal/catalog"
	"go-pos-console/internal/model"
	"go-pos-console/internal/pricing"
	"go-pos-console/internal/report"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	// RecordSale prices the items at their effective price, decrements stock and
	// stores the sale with the current exchange rate, all or nothing.
	RecordSale(req *model.SaleRequest, actor Actor) (*model.Sale, error)
	GetAllSales(term string) ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	offerRepo   repository.OfferRepository
	rateRepo    repository.ExchangeRateRepository
	db          *gorm.DB
	audit       AuditService
	wsHub       *ws.Hub
	metrics     Recorder
	now         func() time.Time
}

func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, offerRepo repository.OfferRepository,
	rateRepo repository.ExchangeRateRepository, db *gorm.DB, audit AuditService, hub *ws.Hub, metrics Recorder) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		offerRepo:   offerRepo,
		rateRepo:    rateRepo,
		db:          db,
		audit:       audit,
		wsHub:       hub,
		metrics:     recorderOrNop(metrics),
		now:         time.Now,
	}
}

func (s *saleService) RecordSale(req *model.SaleRequest, actor Actor) (*model.Sale, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.Latest()
	if err != nil {
		return nil, ErrNoExchangeRate
	}

	// Repeated lines of one product are merged, keeping first-seen order.
	quantities := make(map[uuid.UUID]int, len(req.Items))
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		if _, seen := quantities[it.ProductID]; !seen {
			ids = append(ids, it.ProductID)
		}
		quantities[it.ProductID] += it.Quantity
	}

	// Read before the transaction: sqlite serves a single connection.
	offers, err := s.offerRepo.FindByProducts(ids)
	if err != nil {
		return nil, err
	}
	today := s.now()

	sale := &model.Sale{
		PaymentMethod: req.PaymentMethod,
		ExchangeRate:  rate.Rate,
		CashierLabel:  actor.Name,
	}
	sale.CreatedBy = actor.ID
	sale.UpdatedBy = actor.ID

	var touched []model.Product
	err = s.db.Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.LockByIDs(tx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		total := decimal.Zero
		for _, id := range ids {
			product, ok := byID[id]
			if !ok {
				return ErrProductNotFound
			}
			qty := quantities[id]
			if product.Stock < qty {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			price, _ := pricing.EffectivePrice(product, offers, today)
			total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
			sale.Items = append(sale.Items, model.LineItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    qty,
				UnitPrice:   price,
				CostPrice:   product.CostPrice,
			})

			product.Stock -= qty
			if err := s.productRepo.UpdateStock(tx, product.ID, product.Stock, actor.ID); err != nil {
				return err
			}
			touched = append(touched, product)
		}

		sale.AmountUSD = total.Round(2).InexactFloat64()
		sale.AmountBS = report.ConvertUSD(sale.AmountUSD, rate.Rate)
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSale(sale.AmountUSD)
	if s.audit != nil {
		s.audit.Record(actor, ActionSaleCreate, map[string]interface{}{
			"id":         sale.ID,
			"amount_usd": sale.AmountUSD,
			"items":      len(sale.Items),
		})
	}
	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeSale,
		Action:  "sale_created",
		Data:    sale,
		User:    actor.Name,
		Message: fmt.Sprintf("%s registered a sale of %.2f USD", actor.Name, sale.AmountUSD),
	})
	for _, p := range touched {
		s.wsHub.Publish(ws.Event{
			Type:   ws.TypeCatalog,
			Action: "stock_changed",
			Data:   map[string]interface{}{"id": p.ID, "sku": p.SKU, "stock": p.Stock},
			User:   actor.Name,
		})
	}

	return sale, nil
}

func (s *saleService) GetAllSales(term string) ([]model.Sale, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return catalog.Filter(sales, term, catalog.SaleFields...), nil
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}
