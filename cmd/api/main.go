package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-pos-console/internal/metrics"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/router"
	"go-pos-console/internal/service"
	"go-pos-console/internal/ws"
	"go-pos-console/pkg/config"
	"go-pos-console/pkg/database"
	"go-pos-console/pkg/logger"
)

func main() {
	log := logger.New("pos-api", os.Stdout)

	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}
	log.SetLevel(cfg.LogLevel)
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warnf("JWT_SECRET is not set, using the development default", map[string]interface{}{"app": cfg.AppName})
	}

	// 2. Setup Database
	db, err := database.Open(cfg)
	if err != nil {
		log.WithError(err).Error("failed to connect to database")
		os.Exit(1)
	}
	// AutoMigrate is fine for a single instance; use a migration tool once several share the database.
	if err := repository.Migrate(db); err != nil {
		log.WithError(err).Error("failed to migrate database")
		os.Exit(1)
	}

	// 3. Seed default privileges, roles, and admin user
	seeder := service.NewSeeder(
		repository.NewPrivilegeRepo(db),
		repository.NewRoleRepo(db),
		repository.NewUserRepo(db),
		log.WithField("component", "seed"),
	)
	if err := seeder.Seed(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Errorf("failed to seed defaults", map[string]interface{}{"error": err.Error(), "admin": cfg.AdminUsername})
	}

	// 4. Setup WebSocket Hub
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	wsHub := ws.NewHub(log.WithField("component", "ws"), m)
	go wsHub.Run(ctx)

	// 5. Wiring and routes
	app := router.New(db, cfg, log, router.Options{Metrics: m, Hub: wsHub, AccessLog: cfg.AccessLog})

	// 6. Graceful Shutdown
	go func() {
		log.Infof("server listening", map[string]interface{}{
			"port":      cfg.Port,
			"db_driver": cfg.DBDriver,
			"origins":   cfg.CORSOrigins,
		})
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("Server exited")
}
