package service

import (
	"io"
	"time"

	"go-pos-console/internal/report"
	"go-pos-console/internal/repository"
)

// TopProductsLimit bounds the ranking of the sales report.
const TopProductsLimit = 10

// SalesReport summarizes the sales of a period.
type SalesReport struct {
	From        time.Time             `json:"from"`
	To          time.Time             `json:"to"`
	Summary     report.SalesSummary   `json:"summary"`
	TopProducts []report.ProductSales `json:"top_products"`
	// CurrentRate is 0 and TotalAtCurrentRate omitted when no rate is registered.
	CurrentRate        float64  `json:"current_rate"`
	TotalAtCurrentRate *float64 `json:"total_at_current_rate,omitempty"`
}

type InventoryReport struct {
	Margin    report.Margin    `json:"margin"`
	Valuation report.Valuation `json:"valuation"`
}

type ReportService interface {
	// Sales covers sales created in [from, to).
	Sales(from, to time.Time) (*SalesReport, error)
	Inventory() (*InventoryReport, error)
	WriteSalesExcel(w io.Writer, from, to time.Time) error
	WriteInventoryExcel(w io.Writer) error
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	rateRepo    repository.ExchangeRateRepository
	now         func() time.Time
}

func NewReportService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, rateRepo repository.ExchangeRateRepository) ReportService {
	return &reportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		rateRepo:    rateRepo,
		now:         time.Now,
	}
}

func (s *reportService) Sales(from, to time.Time) (*SalesReport, error) {
	sales, err := s.saleRepo.FindBetween(from, to)
	if err != nil {
		return nil, err
	}
	items, err := s.saleRepo.LineItemsBetween(from, to)
	if err != nil {
		return nil, err
	}

	r := &SalesReport{
		From:        from,
		To:          to,
		Summary:     report.Summarize(report.SaleRows(sales)),
		TopProducts: report.TopProducts(items, TopProductsLimit),
	}
	if rate := s.currentRate(); rate > 0 {
		total := report.ConvertUSD(r.Summary.TotalUSD, rate)
		r.CurrentRate = rate
		r.TotalAtCurrentRate = &total
	}
	return r, nil
}

func (s *reportService) Inventory() (*InventoryReport, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return &InventoryReport{
		Margin:    report.InventoryMargin(report.ProductRows(products)),
		Valuation: report.StockValuation(products),
	}, nil
}

func (s *reportService) WriteSalesExcel(w io.Writer, from, to time.Time) error {
	sales, err := s.saleRepo.FindBetween(from, to)
	if err != nil {
		return err
	}
	return report.WriteExcel(w, report.NewSalesExport(sales, s.currentRate(), s.now()))
}

func (s *reportService) WriteInventoryExcel(w io.Writer) error {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return err
	}
	return report.WriteExcel(w, report.NewInventoryExport(products, s.now()))
}

func (s *reportService) currentRate() float64 {
	rate, err := s.rateRepo.Latest()
	if err != nil {
		return 0
	}
	return rate.Rate
}

