package repository_test

import (
	"testing"
	"time"

	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

// ==========================================
// PRIVILEGE / ROLE / USER TESTS
// ==========================================

func TestSeedDefaults_Idempotent(t *testing.T) {
	db := newTestDB(t)
	privRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	require.NoError(t, privRepo.SeedDefaults())
	require.NoError(t, privRepo.SeedDefaults())
	require.NoError(t, roleRepo.SeedDefaults())
	require.NoError(t, roleRepo.SeedDefaults())

	privileges, err := privRepo.FindAll()
	require.NoError(t, err)
	assert.Len(t, privileges, len(model.DefaultPrivileges))

	roles, err := roleRepo.FindAll()
	require.NoError(t, err)
	assert.Len(t, roles, len(model.DefaultRoles))
}

func TestPrivilegeRepo_FindByCodes(t *testing.T) {
	db := newTestDB(t)
	privRepo := repository.NewPrivilegeRepo(db)
	require.NoError(t, privRepo.SeedDefaults())

	got, err := privRepo.FindByCodes([]string{"sales:read", "offers:create", "nope:nope"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "offers:create", got[0].Code)

	empty, err := privRepo.FindByCodes(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepo_RoleAndPrivileges(t *testing.T) {
	db := newTestDB(t)
	privRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)
	require.NoError(t, privRepo.SeedDefaults())
	require.NoError(t, roleRepo.SeedDefaults())

	cashier, err := roleRepo.FindByCode(model.RoleCashier)
	require.NoError(t, err)
	rolePrivs, err := privRepo.FindByCodes([]string{"sales:create", "sales:read"})
	require.NoError(t, err)
	require.NoError(t, roleRepo.ReplacePrivileges(cashier.ID, rolePrivs))

	user := &model.User{Username: "ana", FullName: "Ana", RoleID: &cashier.ID, IsActive: true}
	require.NoError(t, user.SetPassword("secret1"))
	require.NoError(t, userRepo.Create(user))

	extra, err := privRepo.FindByCodes([]string{"offers:read"})
	require.NoError(t, err)
	require.NoError(t, userRepo.UpdatePrivileges(user.ID, extra))

	found, err := userRepo.FindByUsername("ANA")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCashier, found.RoleCode())
	assert.Equal(t, []string{"offers:read", "sales:create", "sales:read"}, found.GetPrivilegeCodes())
	assert.True(t, found.CheckPassword("secret1"))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, userRepo.UpdateTokenVersion(user.ID, "v2"))
	require.NoError(t, userRepo.UpdateLastSeen(user.ID, now))
	found, err = userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", found.TokenVersion)
	require.NotNil(t, found.LastSeenAt)
	assert.True(t, found.LastSeenAt.Equal(now))

	require.NoError(t, userRepo.Delete(user.ID))
	assert.ErrorIs(t, userRepo.Delete(user.ID), gorm.ErrRecordNotFound)
}

// ==========================================
// CATALOG TESTS
// ==========================================

func TestProductRepo_CRUD(t *testing.T) {
	db := newTestDB(t)
	catRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)

	drinks := &model.Category{Name: "Drinks"}
	require.NoError(t, catRepo.Create(drinks))

	p := &model.Product{SKU: "COLA-1", Name: "Cola", SalePrice: 1.5, CostPrice: 0.8, Stock: 20, CategoryID: &drinks.ID}
	require.NoError(t, productRepo.Create(p))
	assert.NotEqual(t, uuid.Nil, p.ID)

	found, err := productRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", found.CategoryName())

	bySKU, err := productRepo.FindBySKU("COLA-1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySKU.ID)

	n, err := productRepo.CountByCategory(drinks.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, productRepo.UpdateStock(db, p.ID, 5, "tester"))
	found, err = productRepo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Stock)

	locked, err := productRepo.LockByIDs(db, []uuid.UUID{p.ID})
	require.NoError(t, err)
	assert.Len(t, locked, 1)

	require.NoError(t, productRepo.Delete(p.ID))
	_, err = productRepo.FindByID(p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryRepo_FindByNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	catRepo := repository.NewCategoryRepo(db)
	require.NoError(t, catRepo.Create(&model.Category{Name: "Snacks"}))

	found, err := catRepo.FindByName("snacks")
	require.NoError(t, err)
	assert.Equal(t, "Snacks", found.Name)
}

func TestOfferRepo_FindByProducts(t *testing.T) {
	db := newTestDB(t)
	productRepo := repository.NewProductRepo(db)
	offerRepo := repository.NewOfferRepo(db)

	p := &model.Product{SKU: "A", Name: "A", SalePrice: 50}
	require.NoError(t, productRepo.Create(p))

	today := time.Now()
	active := &model.Offer{ProductID: p.ID, OriginalPrice: 50, OfferPrice: 37.5, StartDate: today, EndDate: today, Active: true}
	inactive := &model.Offer{ProductID: p.ID, OriginalPrice: 50, OfferPrice: 30, StartDate: today, EndDate: today, Active: false}
	require.NoError(t, offerRepo.Create(active))
	require.NoError(t, offerRepo.Create(inactive))

	offers, err := offerRepo.FindByProducts([]uuid.UUID{p.ID})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 37.5, offers[0].OfferPrice)

	found, err := offerRepo.FindByID(inactive.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Product)
	assert.Equal(t, "A", found.Product.Name)
}

// ==========================================
// SALES / AUDIT / RATE TESTS
// ==========================================

func TestSaleRepo_StatsAndItems(t *testing.T) {
	db := newTestDB(t)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	p := &model.Product{SKU: "A", Name: "A", SalePrice: 10, CostPrice: 4, Stock: 3}
	require.NoError(t, productRepo.Create(p))

	sale := &model.Sale{
		AmountUSD: 20, AmountBS: 730, ExchangeRate: 36.5, PaymentMethod: "CASH",
		Items: []model.LineItem{{ProductID: p.ID, ProductName: "A", Quantity: 2, UnitPrice: 10, CostPrice: 4}},
	}
	require.NoError(t, saleRepo.Create(db, sale))

	found, err := saleRepo.FindByID(sale.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, sale.ID, found.Items[0].SaleID)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	sales, err := saleRepo.FindBetween(from, to)
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	items, err := saleRepo.LineItemsBetween(from, to)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	daily, err := saleRepo.GetDailySales(from, to)
	require.NoError(t, err)
	require.NotEmpty(t, daily)
	assert.Len(t, daily[len(daily)-1].Date, 10)

	stats, err := saleRepo.GetDashboardStats(from)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, 12.0, stats.TotalValuation)
	assert.Equal(t, int64(1), stats.SalesToday)
	assert.Equal(t, 20.0, stats.RevenueTodayUSD)
}

func TestAuditRepo_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewAuditRepo(db)
	base := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(&model.AuditEntry{UserLabel: "ana", Action: "a", Timestamp: base}))
	require.NoError(t, repo.Create(&model.AuditEntry{UserLabel: "ana", Action: "b", Timestamp: base.Add(time.Hour)}))

	entries, err := repo.FindRecent(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Action)

	limited, err := repo.FindRecent(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestExchangeRateRepo_Latest(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewExchangeRateRepo(db)

	_, err := repo.Latest()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(&model.ExchangeRate{Rate: 36.1}))
	require.NoError(t, repo.Create(&model.ExchangeRate{Rate: 36.5}))

	latest, err := repo.Latest()
	require.NoError(t, err)
	assert.Equal(t, 36.5, latest.Rate)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
