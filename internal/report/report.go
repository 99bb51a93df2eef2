// Package report computes the summary figures behind the sales and inventory exports.
// Nothing here fetches data or exchange rates; callers pass both in.
package report

import (
	"sort"

	"go-pos-console/internal/model"

	"github.com/shopspring/decimal"
)

// SaleRow is the part of a sale the summaries need.
type SaleRow struct {
	AmountUSD float64 `json:"amount_usd"`
	AmountBS  float64 `json:"amount_bs"`
}

// ProductRow is the part of a product the margin needs.
type ProductRow struct {
	CostPrice float64 `json:"cost_price"`
	SalePrice float64 `json:"sale_price"`
}

type SalesSummary struct {
	TotalUSD         float64 `json:"total_usd"`
	TotalBS          float64 `json:"total_bs"`
	TransactionCount int     `json:"transaction_count"`
	AverageTicket    float64 `json:"average_ticket"`
}

type Margin struct {
	TotalCost     float64 `json:"total_cost"`
	TotalSale     float64 `json:"total_sale"`
	TotalMargin   float64 `json:"total_margin"`
	MarginPercent float64 `json:"margin_percent"`
}

// Summarize totals the rows. The average ticket is 0 for no rows.
func Summarize(rows []SaleRow) SalesSummary {
	usd, bs := decimal.Zero, decimal.Zero
	for _, r := range rows {
		usd = usd.Add(decimal.NewFromFloat(r.AmountUSD))
		bs = bs.Add(decimal.NewFromFloat(r.AmountBS))
	}

	summary := SalesSummary{
		TotalUSD:         usd.Round(2).InexactFloat64(),
		TotalBS:          bs.Round(2).InexactFloat64(),
		TransactionCount: len(rows),
	}
	if len(rows) > 0 {
		summary.AverageTicket = usd.Div(decimal.NewFromInt(int64(len(rows)))).Round(2).InexactFloat64()
	}
	return summary
}

// AverageTicket is the mean USD amount per sale, 0 for no rows.
func AverageTicket(rows []SaleRow) float64 {
	return Summarize(rows).AverageTicket
}

// InventoryMargin compares summed sale prices against summed cost prices.
// MarginPercent is relative to the sale total and 0 when that total is not positive.
func InventoryMargin(rows []ProductRow) Margin {
	cost, sale := decimal.Zero, decimal.Zero
	for _, r := range rows {
		cost = cost.Add(decimal.NewFromFloat(r.CostPrice))
		sale = sale.Add(decimal.NewFromFloat(r.SalePrice))
	}
	margin := sale.Sub(cost)

	m := Margin{
		TotalCost:   cost.Round(2).InexactFloat64(),
		TotalSale:   sale.Round(2).InexactFloat64(),
		TotalMargin: margin.Round(2).InexactFloat64(),
	}
	if sale.IsPositive() {
		m.MarginPercent = margin.Div(sale).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	return m
}

// ConvertUSD multiplies amount by the injected rate, rounded to cents.
func ConvertUSD(amount, rate float64) float64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).Round(2).InexactFloat64()
}

// SaleRows projects stored sales onto SaleRow.
func SaleRows(sales []model.Sale) []SaleRow {
	rows := make([]SaleRow, len(sales))
	for i, s := range sales {
		rows[i] = SaleRow{AmountUSD: s.AmountUSD, AmountBS: s.AmountBS}
	}
	return rows
}

// ProductRows projects products onto ProductRow.
func ProductRows(products []model.Product) []ProductRow {
	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = ProductRow{CostPrice: p.CostPrice, SalePrice: p.SalePrice}
	}
	return rows
}

// ValuationItem is one product row of the stock valuation.
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"cost_price"`
	TotalCost float64 `json:"total_cost"`
}

// CategoryGroup is the valuation of one category.
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

type Valuation struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grand_total"`
}

// UncategorizedLabel names the group of products without a category.
const UncategorizedLabel = "Uncategorized"

// StockValuation values stock at cost, grouped by category name in alphabetical order.
func StockValuation(products []model.Product) Valuation {
	groups := make(map[string]*CategoryGroup)
	subtotals := make(map[string]decimal.Decimal)
	grand := decimal.Zero

	for _, p := range products {
		name := p.CategoryName()
		if name == "" {
			name = UncategorizedLabel
		}
		if _, ok := groups[name]; !ok {
			groups[name] = &CategoryGroup{CategoryName: name, Items: []ValuationItem{}}
		}

		total := decimal.NewFromFloat(p.CostPrice).Mul(decimal.NewFromInt(int64(p.Stock)))
		groups[name].Items = append(groups[name].Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.Stock,
			CostPrice: p.CostPrice,
			TotalCost: total.Round(2).InexactFloat64(),
		})
		subtotals[name] = subtotals[name].Add(total)
		grand = grand.Add(total)
	}

	out := Valuation{Categories: make([]CategoryGroup, 0, len(groups)), GrandTotal: grand.Round(2).InexactFloat64()}
	for name, g := range groups {
		g.Subtotal = subtotals[name].Round(2).InexactFloat64()
		out.Categories = append(out.Categories, *g)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].CategoryName < out.Categories[j].CategoryName
	})
	return out
}

// ProductSales is the aggregate of one product across line items.
type ProductSales struct {
	ProductName string  `json:"product_name"`
	Sold        int     `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

// TopProducts ranks products by units sold, then by name. n <= 0 returns all.
func TopProducts(items []model.LineItem, n int) []ProductSales {
	type acc struct {
		name    string
		sold    int
		revenue decimal.Decimal
	}
	byProduct := make(map[string]*acc)
	for _, it := range items {
		key := it.ProductID.String()
		a, ok := byProduct[key]
		if !ok {
			a = &acc{name: it.ProductName, revenue: decimal.Zero}
			byProduct[key] = a
		}
		a.sold += it.Quantity
		a.revenue = a.revenue.Add(decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	out := make([]ProductSales, 0, len(byProduct))
	for _, a := range byProduct {
		out = append(out, ProductSales{ProductName: a.name, Sold: a.sold, Revenue: a.revenue.Round(2).InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sold != out[j].Sold {
			return out[i].Sold > out[j].Sold
		}
		return out[i].ProductName < out[j].ProductName
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
