package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-poultry-service/config"
	"github.com/fekuna/omnipos-poultry-service/internal/auth"
	"github.com/fekuna/omnipos-poultry-service/internal/broker"
	"github.com/fekuna/omnipos-poultry-service/internal/cache"
	"github.com/fekuna/omnipos-poultry-service/internal/cart"
	"github.com/fekuna/omnipos-poultry-service/internal/database"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/metrics"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/fekuna/omnipos-poultry-service/internal/seed"

	authH "github.com/fekuna/omnipos-poultry-service/internal/auth/handler"
	cartH "github.com/fekuna/omnipos-poultry-service/internal/cart/handler"

	dashH "github.com/fekuna/omnipos-poultry-service/internal/dashboard/handler"
	dashRepoPkg "github.com/fekuna/omnipos-poultry-service/internal/dashboard/repository"
	dashUCPkg "github.com/fekuna/omnipos-poultry-service/internal/dashboard/usecase"

	feedH "github.com/fekuna/omnipos-poultry-service/internal/feed/handler"
	feedRepoPkg "github.com/fekuna/omnipos-poultry-service/internal/feed/repository"
	feedUCPkg "github.com/fekuna/omnipos-poultry-service/internal/feed/usecase"

	invH "github.com/fekuna/omnipos-poultry-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-poultry-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-poultry-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-poultry-service/internal/inventory/usecase"

	orderH "github.com/fekuna/omnipos-poultry-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-poultry-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-poultry-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-poultry-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-poultry-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-poultry-service/internal/product/usecase"

	userH "github.com/fekuna/omnipos-poultry-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-poultry-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-poultry-service/internal/user/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.IsDevelopment() {
		logConfig.IsDevelopment = true
	} else {
		logConfig.Encoding = "json"
		logConfig.Level = "info"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect to Database
	db, err := database.Open(ctx, &database.Config{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		Host:            cfg.Database.Postgres.Host,
		Port:            cfg.Database.Postgres.Port,
		User:            cfg.Database.Postgres.User,
		Password:        cfg.Database.Postgres.Password,
		DBName:          cfg.Database.Postgres.DBName,
		SSLMode:         cfg.Database.Postgres.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		appLogger.Fatal("Could not apply migrations", zap.Error(err))
	}
	appLogger.Info("Migrations applied", zap.Strings("versions", applied))

	// 4. Initialize Repositories
	prodRepo := prodRepoPkg.NewSQLRepository(db)
	feedRepo := feedRepoPkg.NewSQLRepository(db)
	userRepo := userRepoPkg.NewSQLRepository(db)
	invRepo := invRepoPkg.NewSQLRepository(db)
	orderRepo := orderRepoPkg.NewSQLRepository(db)
	dashRepo := dashRepoPkg.NewSQLRepository(db)

	// 5. Initialize Redis
	var (
		listCache cache.Cache  = cache.Noop{}
		locker    cache.Locker = cache.Noop{}
	)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		listCache, locker = redisClient, redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		appLogger.Info("Redis not configured, running without cache and locks")
	}

	// 5.5 Initialize Kafka
	var publisher orderUCPkg.Publisher = broker.NopPublisher{}
	var consumer *broker.KafkaConsumer
	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrdersTopic,
		})
		defer producer.Close()
		publisher = producer

		consumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.StockTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("Connected to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("orders_topic", cfg.Kafka.OrdersTopic),
			zap.String("stock_topic", cfg.Kafka.StockTopic),
		)
	} else {
		appLogger.Info("Kafka not configured, order events are not published")
	}

	// 5.8 Initialize Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(cfg.Metrics.Prefix, registry)

	// 6. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, listCache, appLogger)
	feedUC := feedUCPkg.NewFeedUseCase(feedRepo, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, locker, prodUC, appMetrics, cfg.Store.LowStockThreshold, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, prodUC, publisher, appMetrics, orderUCPkg.Config{TaxRate: cfg.Store.TaxRate}, appLogger)
	dashUC := dashUCPkg.NewDashboardUseCase(dashRepo, appLogger)

	// 6.2 Seed the store
	seeder := seed.NewSeeder(userUC, prodRepo, feedRepo, appLogger)
	err = seeder.Run(ctx, seed.Options{
		AdminEmail:    cfg.Store.AdminEmail,
		AdminPassword: cfg.Store.AdminPassword,
		SampleCatalog: cfg.Store.SeedSampleData,
	})
	if err != nil {
		appLogger.Fatal("Could not seed the store", zap.Error(err))
	}

	// 6.5 Start Listener
	if consumer != nil {
		invListener := invListenerPkg.NewRestockListener(consumer, invUC, appLogger)
		go invListener.Start(ctx)
	}

	// 7. Initialize Handlers
	tokenTTL := time.Duration(cfg.JWT.ExpirationHours) * time.Hour
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, tokenTTL)
	carts := cart.NewRegistry()

	// Carts outliving every token that could reach them are dropped.
	go carts.RunSweeper(ctx, 5*time.Minute, tokenTTL, func(dropped int) {
		appLogger.Info("idle carts evicted", zap.Int("count", dropped))
	})

	authHandler := authH.NewAuthHandler(userUC, tokens, carts, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	feedHandler := feedH.NewFeedHandler(feedUC, appLogger)
	userHandler := userH.NewUserHandler(userUC, appLogger)
	cartHandler := cartH.NewCartHandler(carts, prodUC, cfg.Store.TaxRate, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, carts, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	dashHandler := dashH.NewDashboardHandler(dashUC, appLogger)

	// 8. Register Routes
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = response.NewValidator()
	e.Use(middleware.RequestID(appLogger))
	e.Use(appMetrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(appMetrics.Handler()))
	e.POST("/api/auth/login", authHandler.Login)

	api := e.Group("/api", middleware.Auth(tokens, appLogger))
	can := func(c auth.Capability) echo.MiddlewareFunc { return middleware.Require(c, appLogger) }

	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.GET("/products", prodHandler.ListProducts, can(auth.CatalogView))
	api.GET("/products/:id", prodHandler.GetProduct, can(auth.CatalogView))
	api.POST("/products", prodHandler.CreateProduct, can(auth.CatalogManage))
	api.PUT("/products/:id", prodHandler.UpdateProduct, can(auth.CatalogManage))
	api.DELETE("/products/:id", prodHandler.DeleteProduct, can(auth.CatalogManage))

	api.GET("/feeds", feedHandler.ListFeeds, can(auth.CatalogView))
	api.GET("/feeds/:id", feedHandler.GetFeed, can(auth.CatalogView))
	api.POST("/feeds", feedHandler.CreateFeed, can(auth.CatalogManage))
	api.PUT("/feeds/:id", feedHandler.UpdateFeed, can(auth.CatalogManage))
	api.DELETE("/feeds/:id", feedHandler.DeleteFeed, can(auth.CatalogManage))

	users := api.Group("/users", can(auth.UsersManage))
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", userHandler.CreateUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	api.GET("/cart", cartHandler.GetCart, can(auth.Ordering))
	api.POST("/cart/items", cartHandler.AddItem, can(auth.Ordering))
	api.DELETE("/cart/items/:product_id", cartHandler.RemoveItem, can(auth.Ordering))
	api.DELETE("/cart", cartHandler.ClearCart, can(auth.Ordering))
	api.POST("/checkout", orderHandler.Checkout, can(auth.Ordering))

	api.GET("/orders", orderHandler.ListOrders, can(auth.SalesView))
	api.GET("/orders/:id", orderHandler.GetReceipt, can(auth.SalesView))

	inventory := api.Group("/inventory", can(auth.InventoryAdjust))
	inventory.POST("/adjustments", invHandler.AdjustStock)
	inventory.GET("/movements", invHandler.ListMovements)
	inventory.GET("/low-stock", invHandler.ListLowStock)

	dash := api.Group("/dashboard", can(auth.Dashboard))
	dash.GET("/summary", dashHandler.Summary)
	dash.GET("/sales/monthly", dashHandler.MonthlySales)
	dash.GET("/stock/categories", dashHandler.StockByCategory)

	// 9. Start HTTP Server
	appLogger.Info("Starting HTTP server", zap.String("addr", cfg.Server.HTTPAddr))

	// Graceful Shutdown
	go func() {
		if err := e.Start(cfg.Server.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
