package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/printfolio/printfolio/internal/cache"
	"github.com/printfolio/printfolio/internal/catalog"
	"github.com/printfolio/printfolio/internal/config"
	"github.com/printfolio/printfolio/internal/handlers"
	customMiddleware "github.com/printfolio/printfolio/internal/middleware"
	"github.com/printfolio/printfolio/internal/orders"
	"github.com/printfolio/printfolio/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		slog.Error("failed to connect to object storage", "error", err)
		os.Exit(1)
	}
	admin, err := storage.NewAdminClient(cfg.Storage)
	if err != nil {
		slog.Error("failed to connect to storage admin API", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if cfg.Database.URL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse DATABASE_URL", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	orderStore, err := orders.NewPostgreSQLStore(ctx, pool)
	if err != nil {
		slog.Error("failed to initialize order store", "error", err)
		os.Exit(1)
	}

	e := newServer(cfg, store, admin, orderStore)

	slog.Info("starting printfolio", "addr", cfg.Server.Addr, "bucket", cfg.Storage.Bucket)
	if err := e.Start(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newServer(cfg *config.Config, store storage.ObjectStore, admin storage.AdminClient, orderStore orders.Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Services
	listings := cache.NewListingCache(cache.DefaultListingTTL)
	signer := cache.NewURLSigner(store, cfg.Storage.Bucket, cfg.Storage.Endpoint, cfg.Storage.UseSSL, cfg.Storage.PublicBaseURL)
	catalogService := catalog.NewService(store, cfg.Storage.Bucket, listings, signer, slog.Default())

	filesHandler := handlers.NewFilesHandler(catalogService)
	downloadHandler := handlers.NewDownloadHandler(store, cfg.Storage.Bucket, slog.Default())
	ordersHandler := handlers.NewOrdersHandler(orderStore)
	adminHandler := handlers.NewAdminHandler(admin)

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders())

	// Public routes
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/api/files", filesHandler.ListFiles)
	e.GET("/api/files/download", downloadHandler.DownloadZip)
	e.POST("/api/orders", ordersHandler.CreateOrder)

	// Admin routes
	api := e.Group("/api", customMiddleware.AdminKey(cfg.Admin.Key))
	api.POST("/files", filesHandler.Mutate)
	api.DELETE("/files", filesHandler.DeleteFiles)

	api.GET("/orders", ordersHandler.ListOrders)
	api.GET("/orders/:id", ordersHandler.GetOrder)
	api.PATCH("/orders/:id/status", ordersHandler.UpdateOrderStatus)
	api.DELETE("/orders/:id", ordersHandler.DeleteOrder)

	api.POST("/batches", ordersHandler.CreateBatch)
	api.GET("/batches", ordersHandler.ListBatches)
	api.GET("/batches/:id", ordersHandler.GetBatch)
	api.POST("/batches/:id/orders", ordersHandler.AssignOrders)
	api.POST("/batches/:id/close", ordersHandler.CloseBatch)

	api.GET("/admin/storage", adminHandler.GetStorageStats)

	return e
}
