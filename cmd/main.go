package main

import (
	"github.com/parthhpatil200/inventory-manager/internal/events"
	"github.com/parthhpatil200/inventory-manager/internal/handler"
	mid "github.com/parthhpatil200/inventory-manager/internal/middleware"
	"github.com/parthhpatil200/inventory-manager/internal/store"
	"github.com/parthhpatil200/inventory-manager/pkg/config"
	"github.com/parthhpatil200/inventory-manager/pkg/database"
	"github.com/parthhpatil200/inventory-manager/pkg/jwtutil"
	"github.com/parthhpatil200/inventory-manager/pkg/logger"
	"github.com/parthhpatil200/inventory-manager/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-manager", cfg.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", cfg.Metrics.Prefix))

	// Initialize database: migrations run idempotently on every startup
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	st := store.New(database.GetDB(), cfg.Images.Dir)

	// Seed the default administrator account if absent
	if err := st.SeedAdmin(); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Registry events feed dependent selection lists; log them so a
	// presentation layer polling the API can be traced against saves.
	bus := events.NewBus()
	bus.SubscribeAll(func(e events.Event) {
		log.Info("Registry event",
			zap.String("event", e.Name),
			zap.Uint("user_id", e.UserID),
			zap.String("key", e.Payload))
	})

	authHandler := handler.NewAuthHandler(st)
	productHandler := handler.NewProductHandler(st, bus)
	supplierHandler := handler.NewSupplierHandler(st, bus)
	customerHandler := handler.NewCustomerHandler(st, bus)
	receivingHandler := handler.NewReceivingHandler(st)
	saleHandler := handler.NewSaleHandler(st)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Public routes
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	// Master data registries - account-scoped, create and list only
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", productHandler.ListProducts)
	productAPI.GET("/categories", productHandler.ListCategories)
	productAPI.POST("", productHandler.CreateProduct)

	supplierAPI := e.Group("/api/suppliers", mid.AuthMiddleware)
	supplierAPI.GET("", supplierHandler.ListSuppliers)
	supplierAPI.POST("", supplierHandler.CreateSupplier)

	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("", customerHandler.ListCustomers)
	customerAPI.POST("", customerHandler.CreateCustomer)

	// Transaction ledgers - append and list only, rows are immutable
	receivingAPI := e.Group("/api/receivings", mid.AuthMiddleware)
	receivingAPI.GET("", receivingHandler.ListReceivings)
	receivingAPI.POST("", receivingHandler.CreateReceiving)

	saleAPI := e.Group("/api/sales", mid.AuthMiddleware)
	saleAPI.GET("", saleHandler.ListSales)
	saleAPI.POST("", saleHandler.CreateSale)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
