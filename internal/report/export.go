package report

import (
	"fmt"
	"io"
	"time"

	"go-pos-console/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	rowsSheet    = "Rows"
)

// Metric is one labelled figure of an export summary.
type Metric struct {
	Label string
	Value any
}

// Export is a table plus its summary block, independent of the output format.
type Export struct {
	Title       string
	GeneratedAt time.Time
	Summary     []Metric
	Header      []string
	Rows        [][]any
}

// NewSalesExport builds the sales report table. rate converts USD to local currency;
// without a positive rate the converted total is left out.
func NewSalesExport(sales []model.Sale, rate float64, now time.Time) Export {
	summary := Summarize(SaleRows(sales))
	exp := Export{
		Title:       "Sales report",
		GeneratedAt: now,
		Summary: []Metric{
			{Label: "Transactions", Value: summary.TransactionCount},
			{Label: "Total USD", Value: summary.TotalUSD},
			{Label: "Total BS", Value: summary.TotalBS},
			{Label: "Average ticket USD", Value: summary.AverageTicket},
		},
		Header: []string{"Sale", "Date", "Cashier", "Payment", "Amount USD", "Amount BS", "Rate"},
	}
	if rate > 0 {
		exp.Summary = append(exp.Summary, Metric{Label: "Total USD at current rate", Value: ConvertUSD(summary.TotalUSD, rate)})
	}
	for _, s := range sales {
		exp.Rows = append(exp.Rows, []any{
			s.ID.String(), s.CreatedAt.Format("2006-01-02 15:04"), s.CashierLabel, s.PaymentMethod,
			s.AmountUSD, s.AmountBS, s.ExchangeRate,
		})
	}
	return exp
}

// NewInventoryExport builds the inventory report table with its margin summary.
func NewInventoryExport(products []model.Product, now time.Time) Export {
	margin := InventoryMargin(ProductRows(products))
	valuation := StockValuation(products)
	exp := Export{
		Title:       "Inventory report",
		GeneratedAt: now,
		Summary: []Metric{
			{Label: "Products", Value: len(products)},
			{Label: "Total cost", Value: margin.TotalCost},
			{Label: "Total sale", Value: margin.TotalSale},
			{Label: "Total margin", Value: margin.TotalMargin},
			{Label: "Margin %", Value: margin.MarginPercent},
			{Label: "Stock valuation", Value: valuation.GrandTotal},
		},
		Header: []string{"SKU", "Product", "Category", "Stock", "Cost", "Sale price"},
	}
	for _, p := range products {
		category := p.CategoryName()
		if category == "" {
			category = UncategorizedLabel
		}
		exp.Rows = append(exp.Rows, []any{p.SKU, p.Name, category, p.Stock, p.CostPrice, p.SalePrice})
	}
	return exp
}

// WriteExcel renders exp as an .xlsx workbook with a summary sheet and a rows sheet.
func WriteExcel(w io.Writer, exp Export) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(rowsSheet); err != nil {
		return err
	}

	if err := f.SetCellValue(summarySheet, "A1", exp.Title); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "A2", "Generated at"); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "B2", exp.GeneratedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	for i, m := range exp.Summary {
		row := []any{m.Label, m.Value}
		if err := f.SetSheetRow(summarySheet, cell(1, i+4), &row); err != nil {
			return err
		}
	}

	header := make([]any, len(exp.Header))
	for i, h := range exp.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(rowsSheet, cell(1, 1), &header); err != nil {
		return err
	}
	for i, r := range exp.Rows {
		row := r
		if err := f.SetSheetRow(rowsSheet, cell(1, i+2), &row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
