package repository

import (
	"time"

	"go-pos-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LowStockThreshold marks products that need restocking on the dashboard.
const LowStockThreshold = 10

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindBetween(from, to time.Time) ([]model.Sale, error)
	LineItemsBetween(from, to time.Time) ([]model.LineItem, error)
	GetDailySales(from, to time.Time) ([]DailySales, error)
	GetDashboardStats(dayStart time.Time) (*DashboardStats, error)
}

// DailySales is one point of the dashboard sales chart.
type DailySales struct {
	Date      string  `json:"date"`
	Count     int     `json:"count"`
	AmountUSD float64 `json:"amount_usd"`
}

type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	LowStockCount   int64   `json:"low_stock_count"`
	TotalValuation  float64 `json:"total_valuation"`
	SalesToday      int64   `json:"sales_today"`
	RevenueTodayUSD float64 `json:"revenue_today_usd"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create stores the sale and its items inside tx.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindBetween returns sales created in [from, to).
func (r *saleRepo) FindBetween(from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) LineItemsBetween(from, to time.Time) ([]model.LineItem, error) {
	var items []model.LineItem
	err := r.db.Model(&model.LineItem{}).
		Joins("JOIN sales ON sales.id = line_items.sale_id AND sales.deleted_at IS NULL").
		Where("sales.created_at >= ? AND sales.created_at < ?", from, to).
		Find(&items).Error
	return items, err
}

func (r *saleRepo) GetDailySales(from, to time.Time) ([]DailySales, error) {
	var results []DailySales

	rows, err := r.db.Model(&model.Sale{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as count,
			COALESCE(SUM(amount_usd), 0) as amount_usd
		`).
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySales
		if err := rows.Scan(&data.Date, &data.Count, &data.AmountUSD); err != nil {
			return nil, err
		}
		if len(data.Date) > 10 {
			data.Date = data.Date[:10]
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *saleRepo) GetDashboardStats(dayStart time.Time) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("stock < ?", LowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Select("COALESCE(SUM(stock * cost_price), 0)").Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	today := r.db.Model(&model.Sale{}).Where("created_at >= ?", dayStart)
	if err := today.Count(&stats.SalesToday).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Sale{}).Where("created_at >= ?", dayStart).
		Select("COALESCE(SUM(amount_usd), 0)").Scan(&stats.RevenueTodayUSD).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
