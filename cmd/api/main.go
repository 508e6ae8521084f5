package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/api/routes"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/auth"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/bom"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/customers"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/delivery"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/inventory"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/payroll"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/products"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/purchase"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/sales"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/suppliers"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/users"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/auth/session"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/config"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/metrics"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/migrate"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	orderMetrics := metrics.NewOrderMetrics(registry)

	gdb := dbClient.DB()
	usersRepo := users.NewRepository(gdb)
	productsRepo := products.NewRepository(gdb)

	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(usersRepo, sessionManager, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	productsService, err := products.NewService(productsRepo, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}
	suppliersService, err := suppliers.NewService(suppliers.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create suppliers service", err)
		os.Exit(1)
	}
	customersService, err := customers.NewService(customers.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}
	inventoryService, err := inventory.NewService(dbClient, inventory.NewRepository(gdb), orderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	purchaseService, err := purchase.NewService(dbClient, purchase.NewRepository(gdb), productsRepo, inventoryService, orderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchase service", err)
		os.Exit(1)
	}
	salesService, err := sales.NewService(dbClient, sales.NewRepository(gdb), productsRepo, inventoryService, orderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}
	deliveryService, err := delivery.NewService(dbClient, delivery.NewRepository(gdb), salesService, inventoryService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}
	bomService, err := bom.NewService(bom.NewRepository(gdb), productsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create bom service", err)
		os.Exit(1)
	}
	payrollService, err := payroll.NewService(payroll.NewRepository(gdb))
	if err != nil {
		logg.Error(context.Background(), "failed to create payroll service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, registry, routes.Services{
			Auth:      authService,
			Users:     usersService,
			Products:  productsService,
			Suppliers: suppliersService,
			Customers: customersService,
			Inventory: inventoryService,
			Purchase:  purchaseService,
			Sales:     salesService,
			Delivery:  deliveryService,
			BOM:       bomService,
			Payroll:   payrollService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
