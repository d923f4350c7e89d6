package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "rentalworks-backend/internal/api/http"
	"rentalworks-backend/internal/config"
	"rentalworks-backend/internal/database"
	"rentalworks-backend/internal/domain"
	"rentalworks-backend/internal/logger"
	"rentalworks-backend/internal/pricing"
	"rentalworks-backend/internal/repository/postgres"
	"rentalworks-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local development convenience; absence of the file is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalWorks Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := database.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	pricingPolicy := pricing.Policy{
		TaxRateBps:       cfg.Pricing.TaxRateBps,
		WeekBillableDays: cfg.Pricing.WeekBillableDays,
	}
	couponSvc := service.NewCouponService(store.CouponRepository)
	availabilitySvc := service.NewAvailabilityService(store.ProductRepository, store.OrderRepository)
	checkoutSvc := service.NewCheckoutService(
		store.CartRepository,
		store.ProductRepository,
		store.OrderRepository,
		couponSvc,
		pricingPolicy,
	)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.ProductRepository,
		pricingPolicy,
		service.LateFeePolicy{
			GraceHours:  cfg.Pricing.ReturnGraceHours,
			PerDayCents: cfg.Pricing.LateFeePerDayCents,
		},
	)
	invoiceSvc := service.NewInvoiceService(
		store.InvoiceRepository,
		store.OrderRepository,
		domain.PaymentPolicy{
			MinPartialBps:      cfg.Payment.MinPartialBps,
			MaxPartialPayments: cfg.Payment.MaxPartialPayments,
		},
	)

	// Initialize HTTP server
	router := httpapi.NewRouter(availabilitySvc, checkoutSvc, orderSvc, invoiceSvc, couponSvc)
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
