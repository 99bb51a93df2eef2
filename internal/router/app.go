package router

import (
	"strings"

	"go-pos-console/internal/handler"
	"go-pos-console/internal/metrics"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/service"
	"go-pos-console/internal/ws"
	"go-pos-console/pkg/config"
	"go-pos-console/pkg/jwt"
	"go-pos-console/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Options are the optional collaborators of New.
type Options struct {
	Metrics *metrics.Metrics
	Hub     *ws.Hub
	// AccessLog enables fiber's request log.
	AccessLog bool
}

// New wires repositories, services and handlers over db and returns the fiber app.
// The database must already be migrated.
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger, opts Options) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	offerRepo := repository.NewOfferRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	rateRepo := repository.NewExchangeRateRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Services
	var recorder service.Recorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	auditService := service.NewAuditService(auditRepo, log.WithField("component", "audit"))
	authService := service.NewAuthService(userRepo, tokens, opts.Hub, auditService, recorder, cfg.IdleTimeout)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo, auditService, opts.Hub)
	roleService := service.NewRoleService(roleRepo, privilegeRepo, auditService)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, auditService, opts.Hub)
	offerService := service.NewOfferService(offerRepo, productRepo, auditService, opts.Hub, recorder)
	saleService := service.NewSaleService(saleRepo, productRepo, offerRepo, rateRepo, db, auditService, opts.Hub, recorder)
	rateService := service.NewRateService(rateRepo, auditService, opts.Hub)
	reportService := service.NewReportService(saleRepo, productRepo, rateRepo)
	dashService := service.NewDashboardService(saleRepo, rateRepo)

	handlers := Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Offers:    handler.NewOfferHandler(offerService),
		Sales:     handler.NewSaleHandler(saleService),
		Reports:   handler.NewReportHandler(reportService),
		Users:     handler.NewUserHandler(userService),
		Roles:     handler.NewRoleHandler(roleService),
		Audit:     handler.NewAuditHandler(auditService),
		Rates:     handler.NewRateHandler(rateService),
		Dashboard: handler.NewDashboardHandler(dashService),
	}

	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	if opts.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
	}

	SetupRoutes(app, handlers, authService, opts.Metrics, opts.Hub)
	return app
}
