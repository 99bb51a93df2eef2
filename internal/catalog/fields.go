package catalog

import "go-pos-console/internal/model"

// Default search fields for each screen.
var (
	ProductFields = []Field[model.Product]{
		func(p model.Product) any { return p.Name },
		func(p model.Product) any { return p.SKU },
		func(p model.Product) any { return p.Barcode },
		func(p model.Product) any { return p.Description },
		func(p model.Product) any { return p.CategoryName() },
	}

	CategoryFields = []Field[model.Category]{
		func(c model.Category) any { return c.Name },
		func(c model.Category) any { return c.Description },
	}

	SaleFields = []Field[model.Sale]{
		func(s model.Sale) any { return s.ID },
		func(s model.Sale) any { return s.CashierLabel },
		func(s model.Sale) any { return s.PaymentMethod },
		func(s model.Sale) any { return s.AmountUSD },
	}

	UserFields = []Field[model.UserResponse]{
		func(u model.UserResponse) any { return u.Username },
		func(u model.UserResponse) any { return u.FullName },
		func(u model.UserResponse) any { return u.Email },
		func(u model.UserResponse) any {
			if u.Role == nil {
				return nil
			}
			return u.Role.Name
		},
	}

	RoleFields = []Field[model.Role]{
		func(r model.Role) any { return r.Code },
		func(r model.Role) any { return r.Name },
		func(r model.Role) any { return r.Description },
	}

	AuditFields = []Field[model.AuditEntry]{
		func(a model.AuditEntry) any { return a.UserLabel },
		func(a model.AuditEntry) any { return a.Action },
		func(a model.AuditEntry) any { return a.DetailsJSON },
	}
)
