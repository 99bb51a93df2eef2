package access

import "go-pos-console/internal/model"

// NavItem is an entry of the console menu. Children are gated independently;
// a group with no visible children is hidden even if its own requirement passes.
type NavItem struct {
	Key      string      `json:"key"`
	Label    string      `json:"label"`
	Require  Requirement `json:"require"`
	Children []NavItem   `json:"children,omitempty"`
}

// Visible returns the items p may see, in their original order.
func Visible(items []NavItem, p *model.Principal) []NavItem {
	out := make([]NavItem, 0, len(items))
	for _, item := range items {
		if !item.Require.SatisfiedBy(p) {
			continue
		}
		if len(item.Children) > 0 {
			children := Visible(item.Children, p)
			if len(children) == 0 {
				continue
			}
			item.Children = children
		}
		out = append(out, item)
	}
	return out
}

// DefaultNav is the console menu.
func DefaultNav() []NavItem {
	return []NavItem{
		{Key: "dashboard", Label: "Dashboard", Require: All("dashboard:read")},
		{Key: "sales", Label: "Sales", Require: Any("sales:read", "sales:create"), Children: []NavItem{
			{Key: "sales.register", Label: "Register", Require: All("sales:create")},
			{Key: "sales.history", Label: "History", Require: All("sales:read")},
		}},
		{Key: "catalog", Label: "Catalog", Require: None(), Children: []NavItem{
			{Key: "catalog.products", Label: "Products", Require: All("products:read")},
			{Key: "catalog.categories", Label: "Categories", Require: All("categories:read")},
			{Key: "catalog.offers", Label: "Offers", Require: All("offers:read")},
		}},
		{Key: "reports", Label: "Reports", Require: All("reports:read")},
		{Key: "admin", Label: "Administration", Require: Any("users:read", "roles:read", "audit:read"), Children: []NavItem{
			{Key: "admin.users", Label: "Users", Require: All("users:read")},
			{Key: "admin.roles", Label: "Roles", Require: All("roles:read")},
			{Key: "admin.audit", Label: "Activity", Require: All("audit:read")},
		}},
		{Key: "rates", Label: "Exchange rate", Require: All("rates:read")},
	}
}
