package service

import (
	"errors"
	"fmt"

	"go-pos-console/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserLocked         = errors.New("user account is locked")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
	ErrUsernameExists     = errors.New("username already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleExists         = errors.New("role code already exists")

	ErrProductNotFound   = errors.New("product not found")
	ErrSKUExists         = errors.New("SKU already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("category still has products")
	ErrOfferNotFound     = errors.New("offer not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrNoExchangeRate    = errors.New("no exchange rate registered")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDays       = errors.New("days must be between 1 and 90")
)

// Actor identifies who performs an operation, for audit fields and broadcasts.
type Actor struct {
	ID   string
	Name string
}

// System is the actor of seeding and maintenance tasks.
var System = Actor{ID: "system", Name: "system"}

// checkStruct runs struct validation and reports the first failure.
func checkStruct(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return nil
}
