package model

// Privilege represents a permission token that can be granted to roles and users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "products:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Product"
}

// DefaultPrivileges is the catalog the backend seeds on first start.
// Clients never rely on this list; they receive tokens from the API.
var DefaultPrivileges = []Privilege{
	// Users
	{Code: "users:read", Name: "View Users"},
	{Code: "users:create", Name: "Create User"},
	{Code: "users:update", Name: "Update User"},
	{Code: "users:delete", Name: "Delete User"},
	{Code: "users:update_privileges", Name: "Update User Privileges"},
	// Roles
	{Code: "roles:read", Name: "View Roles"},
	{Code: "roles:create", Name: "Create Role"},
	{Code: "roles:update", Name: "Update Role"},
	// Products
	{Code: "products:read", Name: "View Products"},
	{Code: "products:create", Name: "Create Product"},
	{Code: "products:update", Name: "Update Product"},
	{Code: "products:delete", Name: "Delete Product"},
	// Categories
	{Code: "categories:read", Name: "View Categories"},
	{Code: "categories:create", Name: "Create Category"},
	{Code: "categories:update", Name: "Update Category"},
	{Code: "categories:delete", Name: "Delete Category"},
	// Offers
	{Code: "offers:read", Name: "View Offers"},
	{Code: "offers:create", Name: "Create Offer"},
	{Code: "offers:update", Name: "Update Offer"},
	{Code: "offers:delete", Name: "Delete Offer"},
	// Sales
	{Code: "sales:read", Name: "View Sales"},
	{Code: "sales:create", Name: "Register Sale"},
	// Reports and dashboard
	{Code: "reports:read", Name: "View Reports"},
	{Code: "dashboard:read", Name: "View Dashboard"},
	// Audit log
	{Code: "audit:read", Name: "View Activity Log"},
	// Exchange rate
	{Code: "rates:read", Name: "View Exchange Rates"},
	{Code: "rates:update", Name: "Update Exchange Rate"},
}
