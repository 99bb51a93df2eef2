package service

import (
	"fmt"
	"strings"

	"go-pos-console/internal/catalog"
	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/ws"

	"github.com/google/uuid"
)

// CatalogService manages products and their categories.
type CatalogService interface {
	CreateProduct(req *model.Product, actor Actor) error
	UpdateProduct(id uuid.UUID, req *model.Product, actor Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor Actor) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	// ListProducts returns every product, narrowed by the free-text term when it is not blank.
	ListProducts(term string) ([]model.Product, error)

	CreateCategory(req *model.Category, actor Actor) error
	UpdateCategory(id uuid.UUID, req *model.Category, actor Actor) (*model.Category, error)
	DeleteCategory(id uuid.UUID, actor Actor) error
	ListCategories(term string) ([]model.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	audit        AuditService
	wsHub        *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, audit AuditService, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		audit:        audit,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, actor Actor) error {
	if err := checkStruct(req); err != nil {
		return err
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}
	if err := s.checkCategory(req.CategoryID); err != nil {
		return err
	}

	req.ID = uuid.Nil
	req.Category = nil
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.productChanged(actor, ActionProductCreate, "product_created", req)
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, actor Actor) (*model.Product, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.SKU != existing.SKU {
		dup, _ := s.productRepo.FindBySKU(req.SKU)
		if dup != nil && dup.ID != id {
			return nil, ErrSKUExists
		}
	}
	if err := s.checkCategory(req.CategoryID); err != nil {
		return nil, err
	}

	existing.SKU = req.SKU
	existing.Barcode = req.Barcode
	existing.Name = req.Name
	existing.Description = req.Description
	existing.CostPrice = req.CostPrice
	existing.SalePrice = req.SalePrice
	existing.Stock = req.Stock
	existing.ImageRef = req.ImageRef
	existing.CategoryID = req.CategoryID
	existing.Category = nil
	existing.UpdatedBy = actor.ID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	updated, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.productChanged(actor, ActionProductUpdate, "product_updated", updated)
	return updated, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.productChanged(actor, ActionProductDelete, "product_deleted", product)
	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) ListProducts(term string) ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return catalog.Filter(products, term, catalog.ProductFields...), nil
}

func (s *catalogService) CreateCategory(req *model.Category, actor Actor) error {
	req.Name = strings.TrimSpace(req.Name)
	if err := checkStruct(req); err != nil {
		return err
	}
	if existing, _ := s.categoryRepo.FindByName(req.Name); existing != nil {
		return ErrCategoryExists
	}

	req.ID = uuid.Nil
	req.CreatedBy = actor.ID
	req.UpdatedBy = actor.ID
	if err := s.categoryRepo.Create(req); err != nil {
		return err
	}

	s.categoryChanged(actor, ActionCategoryCreate, "category_created", req)
	return nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *model.Category, actor Actor) (*model.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	if dup, _ := s.categoryRepo.FindByName(req.Name); dup != nil && dup.ID != id {
		return nil, ErrCategoryExists
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.UpdatedBy = actor.ID
	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}

	s.categoryChanged(actor, ActionCategoryUpdate, "category_updated", existing)
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID, actor Actor) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return ErrCategoryNotFound
	}

	n, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.categoryChanged(actor, ActionCategoryDelete, "category_deleted", category)
	return nil
}

func (s *catalogService) ListCategories(term string) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return catalog.Filter(categories, term, catalog.CategoryFields...), nil
}

func (s *catalogService) checkCategory(id *uuid.UUID) error {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(*id); err != nil {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *catalogService) productChanged(actor Actor, action, wsAction string, p *model.Product) {
	if s.audit != nil {
		s.audit.Record(actor, action, map[string]interface{}{"id": p.ID, "sku": p.SKU, "name": p.Name})
	}
	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeCatalog,
		Action: wsAction,
		Data: map[string]interface{}{
			"id":         p.ID,
			"sku":        p.SKU,
			"name":       p.Name,
			"stock":      p.Stock,
			"sale_price": p.SalePrice,
		},
		User:    actor.Name,
		Message: fmt.Sprintf("%s changed product '%s'", actor.Name, p.Name),
	})
}

func (s *catalogService) categoryChanged(actor Actor, action, wsAction string, c *model.Category) {
	if s.audit != nil {
		s.audit.Record(actor, action, map[string]interface{}{"id": c.ID, "name": c.Name})
	}
	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeCatalog,
		Action: wsAction,
		Data:   map[string]interface{}{"id": c.ID, "name": c.Name},
		User:   actor.Name,
	})
}
