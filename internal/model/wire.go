package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Older screens and the legacy API used several names for the same product fields.
// The first key found wins.
var (
	productNameKeys        = []string{"name", "nombre"}
	productDescriptionKeys = []string{"description", "descripcion"}
	productSalePriceKeys   = []string{"sale_price", "precio_venta", "price", "precio"}
	productCostPriceKeys   = []string{"cost_price", "precio_costo", "costo"}
	productSKUKeys         = []string{"sku", "codigo"}
	productBarcodeKeys     = []string{"barcode", "codigo_barras"}
	productStockKeys       = []string{"stock", "existencia", "stock_quantity"}
	productImageKeys       = []string{"image_ref", "imagen", "image_url"}
	productCategoryKeys    = []string{"category_id", "categoria_id"}
	productIDKeys          = []string{"id"}
	categoryNameKeys       = []string{"name", "nombre"}
)

// ProductFromWire maps a loosely-shaped product payload into the canonical Product.
func ProductFromWire(raw []byte) (Product, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Product{}, err
	}

	p := Product{
		Name:        wireString(fields, productNameKeys),
		Description: wireString(fields, productDescriptionKeys),
		SalePrice:   wireFloat(fields, productSalePriceKeys),
		CostPrice:   wireFloat(fields, productCostPriceKeys),
		SKU:         wireString(fields, productSKUKeys),
		Barcode:     wireString(fields, productBarcodeKeys),
		Stock:       int(wireFloat(fields, productStockKeys)),
		ImageRef:    wireString(fields, productImageKeys),
	}
	if id, err := uuid.Parse(wireString(fields, productIDKeys)); err == nil {
		p.ID = id
	}
	if id, err := uuid.Parse(wireString(fields, productCategoryKeys)); err == nil {
		p.CategoryID = &id
	}
	switch c := fields["category"].(type) {
	case map[string]any:
		p.Category = &Category{Name: wireString(c, categoryNameKeys)}
		if id, err := uuid.Parse(wireString(c, productIDKeys)); err == nil {
			p.Category.ID = id
		}
	case string:
		if c = strings.TrimSpace(c); c != "" {
			p.Category = &Category{Name: c}
		}
	}
	return p, nil
}

func wireValue(fields map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func wireString(fields map[string]any, keys []string) string {
	v, ok := wireValue(fields, keys)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func wireFloat(fields map[string]any, keys []string) float64 {
	v, ok := wireValue(fields, keys)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
