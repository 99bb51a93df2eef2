package model

import "github.com/google/uuid"

// Request bodies shared by the REST handlers and the console client.

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	RoleID   uint   `json:"role_id" validate:"required"`
}

type UpdateUserRequest struct {
	Email    string  `json:"email" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName string  `json:"full_name" validate:"required"`
	RoleID   uint    `json:"role_id" validate:"required"`
	IsActive *bool   `json:"is_active"`
	IsLocked *bool   `json:"is_locked"`
}

type PrivilegesRequest struct {
	Privileges []string `json:"privileges"`
}

type CreateRoleRequest struct {
	Code        string   `json:"code" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Privileges  []string `json:"privileges"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username" validate:"required"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// OfferRequest creates or updates an offer. Exactly one of OfferPrice and
// DiscountPercent is expected; the other is derived. Dates are YYYY-MM-DD.
type OfferRequest struct {
	ProductID       uuid.UUID `json:"product_id" validate:"uuid_required"`
	OfferPrice      *float64  `json:"offer_price,omitempty"`
	DiscountPercent *float64  `json:"discount_percent,omitempty"`
	StartDate       string    `json:"start_date" validate:"required"`
	EndDate         string    `json:"end_date" validate:"required"`
	Active          *bool     `json:"active,omitempty"`
}

type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type SaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=CASH CARD TRANSFER MOBILE"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

type ExchangeRateRequest struct {
	Rate float64 `json:"rate" validate:"gt=0"`
}
