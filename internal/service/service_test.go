package service

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"go-pos-console/internal/catalog"
	"go-pos-console/internal/model"
	"go-pos-console/internal/pricing"
	"go-pos-console/internal/repository"
	"go-pos-console/pkg/database"
	"go-pos-console/pkg/jwt"
	"go-pos-console/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type countingRecorder struct {
	mu       sync.Mutex
	logins   map[bool]int
	sales    []float64
	rejected map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{logins: map[bool]int{}, rejected: map[string]int{}}
}

func (r *countingRecorder) IncLogin(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins[success]++
}

func (r *countingRecorder) ObserveSale(amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, amount)
}

func (r *countingRecorder) IncOfferRejected(field string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[field]++
}

type fixture struct {
	db       *gorm.DB
	recorder *countingRecorder

	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	privRepo     repository.PrivilegeRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	offerRepo    repository.OfferRepository
	saleRepo     repository.SaleRepository
	rateRepo     repository.ExchangeRateRepository

	audit     AuditService
	authSvc   AuthService
	users     UserService
	roles     RoleService
	catalog   CatalogService
	offers    OfferService
	sales     SaleService
	rates     RateService
	reports   ReportService
	dashboard DashboardService
}

var tester = Actor{ID: uuid.NewString(), Name: "tester"}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	f := &fixture{
		db:           db,
		recorder:     newCountingRecorder(),
		userRepo:     repository.NewUserRepo(db),
		roleRepo:     repository.NewRoleRepo(db),
		privRepo:     repository.NewPrivilegeRepo(db),
		productRepo:  repository.NewProductRepo(db),
		categoryRepo: repository.NewCategoryRepo(db),
		offerRepo:    repository.NewOfferRepo(db),
		saleRepo:     repository.NewSaleRepo(db),
		rateRepo:     repository.NewExchangeRateRepo(db),
	}
	require.NoError(t, NewSeeder(f.privRepo, f.roleRepo, f.userRepo, nil).Seed("admin", "admin123"))

	f.audit = NewAuditService(repository.NewAuditRepo(db), nil)
	f.authSvc = NewAuthService(f.userRepo, jwt.NewManager("test-secret", time.Hour), nil, f.audit, f.recorder, 30*time.Minute)
	f.users = NewUserService(f.userRepo, f.privRepo, f.roleRepo, f.audit, nil)
	f.roles = NewRoleService(f.roleRepo, f.privRepo, f.audit)
	f.catalog = NewCatalogService(f.productRepo, f.categoryRepo, f.audit, nil)
	f.offers = NewOfferService(f.offerRepo, f.productRepo, f.audit, nil, f.recorder)
	f.sales = NewSaleService(f.saleRepo, f.productRepo, f.offerRepo, f.rateRepo, db, f.audit, nil, f.recorder)
	f.rates = NewRateService(f.rateRepo, f.audit, nil)
	f.reports = NewReportService(f.saleRepo, f.productRepo, f.rateRepo)
	f.dashboard = NewDashboardService(f.saleRepo, f.rateRepo)
	return f
}

func (f *fixture) product(t *testing.T, sku string, sale, cost float64, stock int) *model.Product {
	t.Helper()
	p := &model.Product{SKU: sku, Name: "Product " + sku, SalePrice: sale, CostPrice: cost, Stock: stock}
	require.NoError(t, f.catalog.CreateProduct(p, tester))
	return p
}

func ptr[T any](v T) *T { return &v }

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(dateLayout)
}

// ==========================================
// SEEDING
// ==========================================

func TestSeeder_RolePrivilegesAndIdempotence(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, NewSeeder(f.privRepo, f.roleRepo, f.userRepo, nil).Seed("admin", "other"))

	master, err := f.roleRepo.FindByCode(model.RoleMasterAdmin)
	require.NoError(t, err)
	assert.Len(t, master.Privileges, len(model.DefaultPrivileges))

	admin, err := f.roleRepo.FindByCode(model.RoleAdmin)
	require.NoError(t, err)
	codes := model.NewPermissionSet(admin.PrivilegeCodes()...)
	assert.False(t, codes.Has("users:create"))
	assert.False(t, codes.Has("roles:update"))
	assert.True(t, codes.Has("roles:read"))
	assert.True(t, codes.Has("offers:create"))

	cashier, err := f.roleRepo.FindByCode(model.RoleCashier)
	require.NoError(t, err)
	assert.Len(t, cashier.Privileges, len(cashierPrivileges))

	// The second run kept the original admin password.
	_, err = f.authSvc.Login("admin", "admin123")
	assert.NoError(t, err)
}

// ==========================================
// AUTH
// ==========================================

func TestAuth_LoginReturnsPrivileges(t *testing.T) {
	f := newFixture(t)

	resp, err := f.authSvc.Login("ADMIN", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Username)
	require.NotNil(t, resp.Role)
	assert.Equal(t, model.RoleMasterAdmin, resp.Role.Code)
	assert.Len(t, resp.Privileges, len(model.DefaultPrivileges))

	user, err := f.authSvc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, 1, f.recorder.logins[true])
}

func TestAuth_BadCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.authSvc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.authSvc.Login("ghost", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 2, f.recorder.logins[false])
}

func TestAuth_SecondLoginReplacesFirst(t *testing.T) {
	f := newFixture(t)

	first, err := f.authSvc.Login("admin", "admin123")
	require.NoError(t, err)
	second, err := f.authSvc.Login("admin", "admin123")
	require.NoError(t, err)

	_, err = f.authSvc.Authenticate(first.Token)
	assert.ErrorIs(t, err, ErrSessionReplaced)
	_, err = f.authSvc.Authenticate(second.Token)
	assert.NoError(t, err)
}

func TestAuth_LogoutInvalidatesToken(t *testing.T) {
	f := newFixture(t)

	resp, err := f.authSvc.Login("admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, f.authSvc.Logout(resp.User.ID))

	_, err = f.authSvc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, ErrSessionReplaced)
}

func TestAuth_IdleTimeout(t *testing.T) {
	f := newFixture(t)

	resp, err := f.authSvc.Login("admin", "admin123")
	require.NoError(t, err)

	_, err = f.authSvc.ValidateToken(resp.Token)
	require.NoError(t, err)

	require.NoError(t, f.userRepo.UpdateLastSeen(resp.User.ID, time.Now().Add(-time.Hour)))
	_, err = f.authSvc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrSessionTimeout)

	require.NoError(t, f.authSvc.Heartbeat(resp.User.ID))
	_, err = f.authSvc.ValidateToken(resp.Token)
	assert.NoError(t, err)
}

func TestAuth_LockedAndInactive(t *testing.T) {
	f := newFixture(t)
	cashier, err := f.roleRepo.FindByCode(model.RoleCashier)
	require.NoError(t, err)

	user, err := f.users.CreateUser(&model.CreateUserRequest{
		Username: "maria", Password: "secret1", FullName: "Maria", RoleID: cashier.ID,
	}, tester)
	require.NoError(t, err)

	resp, err := f.authSvc.Login("maria", "secret1")
	require.NoError(t, err)
	assert.Contains(t, resp.Privileges, "sales:create")
	assert.NotContains(t, resp.Privileges, "users:read")

	_, err = f.users.UpdateUser(user.ID, &model.UpdateUserRequest{
		FullName: "Maria", RoleID: cashier.ID, IsLocked: ptr(true),
	}, tester)
	require.NoError(t, err)

	_, err = f.authSvc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, ErrUserLocked)
	_, err = f.authSvc.Login("maria", "secret1")
	assert.ErrorIs(t, err, ErrUserLocked)

	_, err = f.users.UpdateUser(user.ID, &model.UpdateUserRequest{
		FullName: "Maria", RoleID: cashier.ID, IsLocked: ptr(false), IsActive: ptr(false),
	}, tester)
	require.NoError(t, err)
	_, err = f.authSvc.Login("maria", "secret1")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuth_ResetPassword(t *testing.T) {
	f := newFixture(t)
	resp, err := f.authSvc.Login("admin", "admin123")
	require.NoError(t, err)

	err = f.authSvc.ResetPassword(&model.ResetPasswordRequest{Username: "admin", OldPassword: "nope", NewPassword: "newpass"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, f.authSvc.ResetPassword(&model.ResetPasswordRequest{Username: "admin", OldPassword: "admin123", NewPassword: "newpass"}))

	_, err = f.authSvc.Authenticate(resp.Token)
	assert.ErrorIs(t, err, ErrSessionReplaced)
	_, err = f.authSvc.Login("admin", "newpass")
	assert.NoError(t, err)
}

func TestAuth_PermissionsFollowPrivilegeChanges(t *testing.T) {
	f := newFixture(t)
	resp, err := f.authSvc.Login("admin", "admin123")
	require.NoError(t, err)

	cashier, err := f.roleRepo.FindByCode(model.RoleCashier)
	require.NoError(t, err)
	user, err := f.users.CreateUser(&model.CreateUserRequest{
		Username: "luis", Password: "secret1", FullName: "Luis", RoleID: cashier.ID,
	}, Actor{ID: resp.User.ID.String(), Name: "admin"})
	require.NoError(t, err)

	_, err = f.users.UpdateUserPrivileges(user.ID, []string{"reports:read"}, tester)
	require.NoError(t, err)

	perms, err := f.authSvc.Permissions(user.ID)
	require.NoError(t, err)
	assert.Contains(t, perms, "reports:read")
	assert.Contains(t, perms, "sales:create")
}

// ==========================================
// USERS / ROLES
// ==========================================

func TestUsers_CreateValidation(t *testing.T) {
	f := newFixture(t)
	cashier, err := f.roleRepo.FindByCode(model.RoleCashier)
	require.NoError(t, err)

	_, err = f.users.CreateUser(&model.CreateUserRequest{
		Username: "Admin", Password: "secret1", FullName: "Dup", RoleID: cashier.ID,
	}, tester)
	assert.ErrorIs(t, err, ErrUsernameExists)

	_, err = f.users.CreateUser(&model.CreateUserRequest{
		Username: "pedro", Password: "secret1", FullName: "Pedro", RoleID: 999,
	}, tester)
	assert.ErrorIs(t, err, ErrRoleNotFound)

	_, err = f.users.CreateUser(&model.CreateUserRequest{Username: "pedro", FullName: "Pedro", RoleID: cashier.ID}, tester)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed: Field 'CreateUserRequest.Password' failed on tag 'required'")

	assert.ErrorIs(t, f.users.DeleteUser(uuid.New(), tester), ErrUserNotFound)
}

func TestRoles_CreateWithPrivileges(t *testing.T) {
	f := newFixture(t)

	role, err := f.roles.CreateRole(&model.CreateRoleRequest{
		Code: " supervisor ", Name: "Supervisor", Privileges: []string{"sales:read", "reports:read"},
	}, tester)
	require.NoError(t, err)
	assert.Equal(t, "SUPERVISOR", role.Code)
	assert.ElementsMatch(t, []string{"sales:read", "reports:read"}, role.PrivilegeCodes())

	_, err = f.roles.CreateRole(&model.CreateRoleRequest{Code: "SUPERVISOR", Name: "Again"}, tester)
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = f.roles.UpdateRolePrivileges(999, nil, tester)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

// ==========================================
// CATALOG
// ==========================================

func TestCatalog_ProductsAndCategories(t *testing.T) {
	f := newFixture(t)

	drinks := &model.Category{Name: "Beverages"}
	require.NoError(t, f.catalog.CreateCategory(drinks, tester))
	assert.ErrorIs(t, f.catalog.CreateCategory(&model.Category{Name: " beverages "}, tester), ErrCategoryExists)

	cola := &model.Product{SKU: "COLA", Name: "Cola", SalePrice: 1.5, CostPrice: 1, Stock: 10, CategoryID: &drinks.ID}
	require.NoError(t, f.catalog.CreateProduct(cola, tester))
	f.product(t, "BRD", 2, 1, 5)

	assert.ErrorIs(t, f.catalog.CreateProduct(&model.Product{SKU: "COLA", Name: "Other"}, tester), ErrSKUExists)
	missing := uuid.New()
	assert.ErrorIs(t, f.catalog.CreateProduct(&model.Product{SKU: "X", Name: "X", CategoryID: &missing}, tester), ErrCategoryNotFound)

	found, err := f.catalog.ListProducts("  BEVER ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "COLA", found[0].SKU)

	all, err := f.catalog.ListProducts("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, f.catalog.DeleteCategory(drinks.ID, tester), ErrCategoryInUse)

	updated, err := f.catalog.UpdateProduct(cola.ID, &model.Product{SKU: "COLA", Name: "Cola Zero", SalePrice: 1.75, Stock: 8}, tester)
	require.NoError(t, err)
	assert.Equal(t, "Cola Zero", updated.Name)
	assert.Nil(t, updated.CategoryID)

	require.NoError(t, f.catalog.DeleteCategory(drinks.ID, tester))
	require.NoError(t, f.catalog.DeleteProduct(cola.ID, tester))
	_, err = f.catalog.GetProduct(cola.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	entries, err := f.audit.List(catalog.AuditQuery{UserLabel: "TESTER"})
	require.NoError(t, err)
	actions := make([]string, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	assert.Contains(t, actions, ActionProductDelete)
	assert.Contains(t, actions, ActionCategoryCreate)
}

// ==========================================
// OFFERS
// ==========================================

func TestOffers_PercentDerivesPrice(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", 100, 40, 10)

	resp, err := f.offers.CreateOffer(&model.OfferRequest{
		ProductID: p.ID, DiscountPercent: ptr(25.0), StartDate: day(-2), EndDate: day(2),
	}, tester)
	require.NoError(t, err)
	assert.Equal(t, 75.0, resp.OfferPrice)
	assert.Equal(t, 100.0, resp.OriginalPrice)
	assert.Equal(t, 25.0, resp.DiscountPercent)
	assert.Equal(t, string(pricing.StatusActive), resp.Status)

	list, err := f.offers.ListOffers()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(pricing.StatusActive), list[0].Status)
}

func TestOffers_StatusAsOfToday(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", 10, 4, 10)

	scheduled, err := f.offers.CreateOffer(&model.OfferRequest{
		ProductID: p.ID, OfferPrice: ptr(8.0), StartDate: day(3), EndDate: day(5),
	}, tester)
	require.NoError(t, err)
	assert.Equal(t, string(pricing.StatusScheduled), scheduled.Status)

	off, err := f.offers.UpdateOffer(scheduled.ID, &model.OfferRequest{
		ProductID: p.ID, OfferPrice: ptr(8.0), StartDate: day(-5), EndDate: day(-3), Active: ptr(false),
	}, tester)
	require.NoError(t, err)
	assert.Equal(t, string(pricing.StatusInactive), off.Status)

	require.NoError(t, f.offers.DeleteOffer(scheduled.ID, tester))
	_, err = f.offers.GetOffer(scheduled.ID)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestOffers_Rejections(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", 10, 4, 10)

	_, err := f.offers.CreateOffer(&model.OfferRequest{
		ProductID: p.ID, OfferPrice: ptr(10.0), StartDate: day(0), EndDate: day(1),
	}, tester)
	var verr *validator.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "offer_price", verr.Field)

	_, err = f.offers.CreateOffer(&model.OfferRequest{
		ProductID: p.ID, DiscountPercent: ptr(100.0), StartDate: day(0), EndDate: day(1),
	}, tester)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "percent", verr.Field)

	_, err = f.offers.CreateOffer(&model.OfferRequest{
		ProductID: p.ID, OfferPrice: ptr(5.0), StartDate: day(2), EndDate: day(1),
	}, tester)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "end_date", verr.Field)

	_, err = f.offers.CreateOffer(&model.OfferRequest{
		ProductID: p.ID, OfferPrice: ptr(5.0), StartDate: "15/10/2026", EndDate: day(1),
	}, tester)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = f.offers.CreateOffer(&model.OfferRequest{
		ProductID: uuid.New(), OfferPrice: ptr(5.0), StartDate: day(0), EndDate: day(1),
	}, tester)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = f.offers.CreateOffer(&model.OfferRequest{OfferPrice: ptr(5.0), StartDate: day(0), EndDate: day(1)}, tester)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "OfferRequest.ProductID", verr.Field)

	assert.Equal(t, 1, f.recorder.rejected["OfferRequest.ProductID"])
	assert.Equal(t, 1, f.recorder.rejected["offer_price"])
	assert.Equal(t, 1, f.recorder.rejected["percent"])
	assert.Equal(t, 1, f.recorder.rejected["end_date"])
}

// ==========================================
// SALES / REPORTS / DASHBOARD
// ==========================================

func TestSales_RequiresExchangeRate(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "A", 10, 4, 10)

	_, err := f.sales.RecordSale(&model.SaleRequest{
		PaymentMethod: "CASH", Items: []model.SaleItemRequest{{ProductID: p.ID, Quantity: 1}},
	}, tester)
	assert.ErrorIs(t, err, ErrNoExchangeRate)

	_, err = f.rates.Current()
	assert.ErrorIs(t, err, ErrNoExchangeRate)
}

func TestSales_RecordUsesOfferPriceAndRate(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 4, 5)
	b := f.product(t, "B", 2.5, 1, 20)

	_, err := f.offers.CreateOffer(&model.OfferRequest{
		ProductID: a.ID, OfferPrice: ptr(8.0), StartDate: day(-2), EndDate: day(2),
	}, tester)
	require.NoError(t, err)
	_, err = f.rates.Save(&model.ExchangeRateRequest{Rate: 36.5}, tester)
	require.NoError(t, err)

	sale, err := f.sales.RecordSale(&model.SaleRequest{
		PaymentMethod: "CARD",
		Items: []model.SaleItemRequest{
			{ProductID: a.ID, Quantity: 1},
			{ProductID: b.ID, Quantity: 4},
			{ProductID: a.ID, Quantity: 1},
		},
	}, tester)
	require.NoError(t, err)

	require.Len(t, sale.Items, 2)
	assert.Equal(t, 2, sale.Items[0].Quantity)
	assert.Equal(t, 8.0, sale.Items[0].UnitPrice)
	assert.Equal(t, 26.0, sale.AmountUSD)
	assert.Equal(t, 949.0, sale.AmountBS)
	assert.Equal(t, 36.5, sale.ExchangeRate)
	assert.Equal(t, "tester", sale.CashierLabel)
	assert.Equal(t, []float64{26}, f.recorder.sales)

	stored, err := f.catalog.GetProduct(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)

	got, err := f.sales.GetSaleByID(sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	found, err := f.sales.GetAllSales("card")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestSales_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 4, 5)
	b := f.product(t, "B", 2, 1, 1)
	_, err := f.rates.Save(&model.ExchangeRateRequest{Rate: 40}, tester)
	require.NoError(t, err)

	_, err = f.sales.RecordSale(&model.SaleRequest{
		PaymentMethod: "CASH",
		Items: []model.SaleItemRequest{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 3},
		},
	}, tester)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	stored, err := f.catalog.GetProduct(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)

	sales, err := f.sales.GetAllSales("")
	require.NoError(t, err)
	assert.Empty(t, sales)

	_, err = f.sales.RecordSale(&model.SaleRequest{
		PaymentMethod: "CASH", Items: []model.SaleItemRequest{{ProductID: uuid.New(), Quantity: 1}},
	}, tester)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReportsAndDashboard(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 4, 5)
	_, err := f.rates.Save(&model.ExchangeRateRequest{Rate: 30}, tester)
	require.NoError(t, err)
	_, err = f.sales.RecordSale(&model.SaleRequest{
		PaymentMethod: "CASH", Items: []model.SaleItemRequest{{ProductID: a.ID, Quantity: 2}},
	}, tester)
	require.NoError(t, err)
	_, err = f.rates.Save(&model.ExchangeRateRequest{Rate: 40}, tester)
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	sr, err := f.reports.Sales(from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, sr.Summary.TransactionCount)
	assert.Equal(t, 20.0, sr.Summary.TotalUSD)
	assert.Equal(t, 600.0, sr.Summary.TotalBS)
	assert.Equal(t, 40.0, sr.CurrentRate)
	require.NotNil(t, sr.TotalAtCurrentRate)
	assert.Equal(t, 800.0, *sr.TotalAtCurrentRate)
	require.Len(t, sr.TopProducts, 1)
	assert.Equal(t, 2, sr.TopProducts[0].Sold)

	inv, err := f.reports.Inventory()
	require.NoError(t, err)
	assert.Equal(t, 60.0, inv.Margin.MarginPercent)
	assert.Equal(t, 12.0, inv.Valuation.GrandTotal)

	var buf bytes.Buffer
	require.NoError(t, f.reports.WriteSalesExcel(&buf, from, to))
	assert.NotZero(t, buf.Len())
	buf.Reset()
	require.NoError(t, f.reports.WriteInventoryExcel(&buf))
	assert.NotZero(t, buf.Len())

	stats, err := f.dashboard.Overview()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.SalesToday)
	assert.Equal(t, 20.0, stats.RevenueTodayUSD)
	require.NotNil(t, stats.RevenueTodayBS)
	assert.Equal(t, 800.0, *stats.RevenueTodayBS)

	series, err := f.dashboard.DailySeries(7)
	require.NoError(t, err)
	require.Len(t, series.Days, 7)
	assert.Equal(t, time.Now().Format("2006-01-02"), series.To)
	assert.Equal(t, series.To, series.Days[6].Date)
	assert.Equal(t, 1, series.Days[6].Count)
	assert.Equal(t, 0, series.Days[0].Count)
	assert.Equal(t, 20.0, series.TotalUSD)

	_, err = f.dashboard.DailySeries(0)
	assert.ErrorIs(t, err, ErrInvalidDays)
	_, err = f.dashboard.DailySeries(MaxChartDays + 1)
	assert.ErrorIs(t, err, ErrInvalidDays)

	history, err := f.rates.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 40.0, history[0].Rate)
}

func TestRates_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := f.rates.Save(&model.ExchangeRateRequest{Rate: 0}, tester)
	assert.Error(t, err)

	saved, err := f.rates.Save(&model.ExchangeRateRequest{Rate: 36.55}, tester)
	require.NoError(t, err)
	assert.Equal(t, "tester", saved.CreatedBy)

	current, err := f.rates.Current()
	require.NoError(t, err)
	assert.Equal(t, 36.55, current.Rate)
}
