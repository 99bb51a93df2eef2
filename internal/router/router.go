package router

import (
	"go-pos-console/internal/handler"
	"go-pos-console/internal/metrics"
	"go-pos-console/internal/middleware"
	"go-pos-console/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Offers    *handler.OfferHandler
	Sales     *handler.SaleHandler
	Reports   *handler.ReportHandler
	Users     *handler.UserHandler
	Roles     *handler.RoleHandler
	Audit     *handler.AuditHandler
	Rates     *handler.RateHandler
	Dashboard *handler.DashboardHandler
}

// SetupRoutes registers the REST API under /api/v1, the websocket feed and /metrics.
// m and hub may be nil.
func SetupRoutes(app *fiber.App, h Handlers, authenticator middleware.Authenticator, m *metrics.Metrics, hub *ws.Hub) {
	var denials middleware.DenialRecorder
	if m != nil {
		denials = m
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
	need := func(privilege string) fiber.Handler {
		return middleware.RequirePrivilege(privilege, denials)
	}
	needAny := func(privileges ...string) fiber.Handler {
		return middleware.RequireAnyPrivilege(denials, privileges...)
	}

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	requireAuth := middleware.RequireAuth(authenticator)

	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Post("/validate-token", h.Auth.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Post("/auth/logout", h.Auth.Logout)
	protected.Post("/auth/heartbeat", h.Auth.Heartbeat)
	protected.Get("/auth/permissions", h.Auth.Permissions)

	protected.Get("/dashboard/stats", need("dashboard:read"), h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/daily-sales", need("dashboard:read"), h.Dashboard.GetDailySales)

	protected.Get("/products", need("products:read"), h.Catalog.GetProducts)
	protected.Get("/products/:id", need("products:read"), h.Catalog.GetProduct)
	protected.Post("/products", need("products:create"), h.Catalog.CreateProduct)
	protected.Put("/products/:id", need("products:update"), h.Catalog.UpdateProduct)
	protected.Delete("/products/:id", need("products:delete"), h.Catalog.DeleteProduct)

	protected.Get("/categories", needAny("categories:read", "products:read"), h.Catalog.GetCategories)
	protected.Post("/categories", need("categories:create"), h.Catalog.CreateCategory)
	protected.Put("/categories/:id", need("categories:update"), h.Catalog.UpdateCategory)
	protected.Delete("/categories/:id", need("categories:delete"), h.Catalog.DeleteCategory)

	protected.Get("/offers", need("offers:read"), h.Offers.GetOffers)
	protected.Get("/offers/:id", need("offers:read"), h.Offers.GetOffer)
	protected.Post("/offers", need("offers:create"), h.Offers.CreateOffer)
	protected.Put("/offers/:id", need("offers:update"), h.Offers.UpdateOffer)
	protected.Delete("/offers/:id", need("offers:delete"), h.Offers.DeleteOffer)

	protected.Get("/sales", need("sales:read"), h.Sales.GetSales)
	protected.Get("/sales/:id", need("sales:read"), h.Sales.GetSale)
	protected.Post("/sales", need("sales:create"), h.Sales.CreateSale)

	protected.Get("/reports/sales", need("reports:read"), h.Reports.GetSalesReport)
	protected.Get("/reports/sales.xlsx", need("reports:read"), h.Reports.DownloadSalesExcel)
	protected.Get("/reports/inventory", need("reports:read"), h.Reports.GetInventoryReport)
	protected.Get("/reports/inventory.xlsx", need("reports:read"), h.Reports.DownloadInventoryExcel)

	protected.Get("/users", need("users:read"), h.Users.GetUsers)
	protected.Get("/users/:id", need("users:read"), h.Users.GetUser)
	protected.Post("/users", need("users:create"), h.Users.CreateUser)
	protected.Put("/users/:id", need("users:update"), h.Users.UpdateUser)
	protected.Delete("/users/:id", need("users:delete"), h.Users.DeleteUser)
	protected.Put("/users/:id/privileges", need("users:update_privileges"), h.Users.UpdateUserPrivileges)

	protected.Get("/roles", needAny("roles:read", "users:read"), h.Roles.GetRoles)
	protected.Post("/roles", need("roles:create"), h.Roles.CreateRole)
	protected.Put("/roles/:id/privileges", need("roles:update"), h.Roles.UpdateRolePrivileges)
	protected.Get("/privileges", needAny("roles:read", "users:update_privileges"), h.Roles.GetPrivileges)

	protected.Get("/audit", need("audit:read"), h.Audit.GetAudit)

	protected.Get("/exchange-rates", need("rates:read"), h.Rates.GetRates)
	protected.Get("/exchange-rates/latest", need("rates:read"), h.Rates.GetLatest)
	protected.Post("/exchange-rates", need("rates:update"), h.Rates.CreateRate)

	if hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			if !hub.Join(c) {
				return
			}
			defer hub.Leave(c)

			for {
				// Keep alive loop
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}
}
