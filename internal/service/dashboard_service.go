package service

import (
	"time"

	"go-pos-console/internal/report"
	"go-pos-console/internal/repository"

	"github.com/shopspring/decimal"
)

// MaxChartDays bounds the sales chart window.
const MaxChartDays = 90

// SalesSeries is one point per calendar day, oldest first. Days without sales are zero.
type SalesSeries struct {
	From     string                  `json:"from"`
	To       string                  `json:"to"`
	Days     []repository.DailySales `json:"days"`
	TotalUSD float64                 `json:"total_usd"`
}

// DashboardOverview is the stats panel. The bolívar figures are absent until a rate exists.
type DashboardOverview struct {
	repository.DashboardStats
	ExchangeRate   *float64 `json:"exchange_rate,omitempty"`
	RevenueTodayBS *float64 `json:"revenue_today_bs,omitempty"`
}

type DashboardService interface {
	DailySeries(days int) (*SalesSeries, error)
	Overview() (*DashboardOverview, error)
}

type dashboardService struct {
	saleRepo repository.SaleRepository
	rateRepo repository.ExchangeRateRepository
	now      func() time.Time
}

func NewDashboardService(saleRepo repository.SaleRepository, rateRepo repository.ExchangeRateRepository) DashboardService {
	return &dashboardService{saleRepo: saleRepo, rateRepo: rateRepo, now: time.Now}
}

// DailySeries covers today and the days-1 days before it.
func (s *dashboardService) DailySeries(days int) (*SalesSeries, error) {
	if days < 1 || days > MaxChartDays {
		return nil, ErrInvalidDays
	}

	end := startOfDay(s.now()).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)
	rows, err := s.saleRepo.GetDailySales(start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]repository.DailySales, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		byDate[r.Date] = r
		total = total.Add(decimal.NewFromFloat(r.AmountUSD))
	}

	series := &SalesSeries{
		From:     start.Format(dateLayout),
		To:       end.AddDate(0, 0, -1).Format(dateLayout),
		Days:     make([]repository.DailySales, 0, days),
		TotalUSD: total.Round(2).InexactFloat64(),
	}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		point, ok := byDate[key]
		if !ok {
			point = repository.DailySales{Date: key}
		}
		series.Days = append(series.Days, point)
	}
	return series, nil
}

func (s *dashboardService) Overview() (*DashboardOverview, error) {
	stats, err := s.saleRepo.GetDashboardStats(startOfDay(s.now()))
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{DashboardStats: *stats}
	if rate, err := s.rateRepo.Latest(); err == nil && rate.Rate > 0 {
		bs := report.ConvertUSD(stats.RevenueTodayUSD, rate.Rate)
		overview.ExchangeRate = &rate.Rate
		overview.RevenueTodayBS = &bs
	}
	return overview, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
