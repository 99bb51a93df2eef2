package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go-pos-console/internal/catalog"
	"go-pos-console/internal/model"

	"github.com/google/uuid"
)

// Products are decoded through model.ProductFromWire so older field names still map.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products", c.token, nil, &raw); err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(raw))
	for _, r := range raw {
		p, err := model.ProductFromWire(r)
		if err != nil {
			return nil, fmt.Errorf("%w: decode product: %v", ErrNetwork, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodPost, "/products", c.token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, p model.Product) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id.String(), c.token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id.String(), c.token, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := c.do(ctx, http.MethodGet, "/categories", c.token, nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, cat model.Category) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", c.token, cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, cat model.Category) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+id.String(), c.token, cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id.String(), c.token, nil, nil)
}

func (c *Client) ListOffers(ctx context.Context) ([]model.OfferResponse, error) {
	var out []model.OfferResponse
	err := c.do(ctx, http.MethodGet, "/offers", c.token, nil, &out)
	return out, err
}

func (c *Client) CreateOffer(ctx context.Context, req model.OfferRequest) (*model.OfferResponse, error) {
	var out model.OfferResponse
	if err := c.do(ctx, http.MethodPost, "/offers", c.token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOffer(ctx context.Context, id uuid.UUID, req model.OfferRequest) (*model.OfferResponse, error) {
	var out model.OfferResponse
	if err := c.do(ctx, http.MethodPut, "/offers/"+id.String(), c.token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/offers/"+id.String(), c.token, nil, nil)
}

func (c *Client) ListSales(ctx context.Context) ([]model.Sale, error) {
	var out []model.Sale
	err := c.do(ctx, http.MethodGet, "/sales", c.token, nil, &out)
	return out, err
}

func (c *Client) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var out model.Sale
	if err := c.do(ctx, http.MethodGet, "/sales/"+id.String(), c.token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSale(ctx context.Context, req model.SaleRequest) (*model.Sale, error) {
	var out model.Sale
	if err := c.do(ctx, http.MethodPost, "/sales", c.token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]model.UserResponse, error) {
	var out []model.UserResponse
	err := c.do(ctx, http.MethodGet, "/users", c.token, nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	var out model.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", c.token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.UserResponse, error) {
	var out model.UserResponse
	if err := c.do(ctx, http.MethodPut, "/users/"+id.String(), c.token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id.String(), c.token, nil, nil)
}

func (c *Client) ListRoles(ctx context.Context) ([]model.Role, error) {
	var out []model.Role
	err := c.do(ctx, http.MethodGet, "/roles", c.token, nil, &out)
	return out, err
}

func (c *Client) CreateRole(ctx context.Context, req model.CreateRoleRequest) (*model.Role, error) {
	var out model.Role
	if err := c.do(ctx, http.MethodPost, "/roles", c.token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPrivileges(ctx context.Context) ([]model.Privilege, error) {
	var out []model.Privilege
	err := c.do(ctx, http.MethodGet, "/privileges", c.token, nil, &out)
	return out, err
}

// ListAudit asks the server to filter the feed; zero fields of q are not sent.
func (c *Client) ListAudit(ctx context.Context, q catalog.AuditQuery) ([]model.AuditEntry, error) {
	params := url.Values{}
	if q.UserLabel != "" {
		params.Set("user", q.UserLabel)
	}
	if !q.From.IsZero() {
		params.Set("from", q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.Format("2006-01-02"))
	}
	path := "/audit"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out []model.AuditEntry
	err := c.do(ctx, http.MethodGet, path, c.token, nil, &out)
	return out, err
}

func (c *Client) ListExchangeRates(ctx context.Context) ([]model.ExchangeRate, error) {
	var out []model.ExchangeRate
	err := c.do(ctx, http.MethodGet, "/exchange-rates", c.token, nil, &out)
	return out, err
}

func (c *Client) LatestExchangeRate(ctx context.Context) (*model.ExchangeRate, error) {
	var out model.ExchangeRate
	if err := c.do(ctx, http.MethodGet, "/exchange-rates/latest", c.token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SaveExchangeRate(ctx context.Context, rate float64) (*model.ExchangeRate, error) {
	var out model.ExchangeRate
	if err := c.do(ctx, http.MethodPost, "/exchange-rates", c.token, model.ExchangeRateRequest{Rate: rate}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
