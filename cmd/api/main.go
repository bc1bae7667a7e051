package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/config"
	"github.com/mkadlec/salonpos/internal/auth"
	"github.com/mkadlec/salonpos/pkg/broker"
	"github.com/mkadlec/salonpos/pkg/cache"
	"github.com/mkadlec/salonpos/pkg/database/postgres"
	"github.com/mkadlec/salonpos/pkg/logger"

	sessH "github.com/mkadlec/salonpos/internal/cashsession/handler"
	sessRepoPkg "github.com/mkadlec/salonpos/internal/cashsession/repository"
	sessUCPkg "github.com/mkadlec/salonpos/internal/cashsession/usecase"

	catH "github.com/mkadlec/salonpos/internal/catalog/handler"
	catRepoPkg "github.com/mkadlec/salonpos/internal/catalog/repository"
	catUCPkg "github.com/mkadlec/salonpos/internal/catalog/usecase"

	custH "github.com/mkadlec/salonpos/internal/customer/handler"
	custRepoPkg "github.com/mkadlec/salonpos/internal/customer/repository"
	custUCPkg "github.com/mkadlec/salonpos/internal/customer/usecase"

	ordH "github.com/mkadlec/salonpos/internal/order/handler"
	ordRepoPkg "github.com/mkadlec/salonpos/internal/order/repository"
	ordUCPkg "github.com/mkadlec/salonpos/internal/order/usecase"

	"github.com/mkadlec/salonpos/internal/pos"

	stockH "github.com/mkadlec/salonpos/internal/stock/handler"
	stockListenerPkg "github.com/mkadlec/salonpos/internal/stock/listener"
	stockRepoPkg "github.com/mkadlec/salonpos/internal/stock/repository"
	stockUCPkg "github.com/mkadlec/salonpos/internal/stock/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FileEnable:        cfg.Logger.FileEnable,
		Filename:          cfg.Logger.Filename,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	ordRepo := ordRepoPkg.NewPGRepository(db)
	custRepo := custRepoPkg.NewPGRepository(db)
	sessRepo := sessRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	stockConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.StockTopic,
		GroupID: cfg.Kafka.StockGroupID,
	})
	defer stockConsumer.Close()

	orderPublisher := broker.NewPublisher(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrdersTopic,
	})
	defer orderPublisher.Close()
	appLogger.Info("Connected to Kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("orders_topic", cfg.Kafka.OrdersTopic),
		zap.String("stock_topic", cfg.Kafka.StockTopic))

	// 6. Initialize UseCases
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, redisClient, appLogger)
	catUC := catUCPkg.NewCatalogUseCase(catRepo, redisClient, appLogger)
	ordUC := ordUCPkg.NewOrderUseCase(ordRepo, stockUC, orderPublisher, appLogger)
	custUC := custUCPkg.NewCustomerUseCase(custRepo, appLogger)
	sessUC := sessUCPkg.NewCashSessionUseCase(sessRepo, appLogger)

	// 6.5 Initialize Listener
	stockListener := stockListenerPkg.NewStockListener(stockConsumer, stockUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stockListener.Start(ctx)

	// 7. Initialize HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(auth.Middleware())

	api := e.Group("/api/v1")
	catH.NewCatalogHandler(catUC, appLogger).RegisterRoutes(api)
	stockH.NewStockHandler(stockUC, appLogger).RegisterRoutes(api)
	ordH.NewOrderHandler(ordUC, appLogger).RegisterRoutes(api)
	custH.NewCustomerHandler(custUC, appLogger).RegisterRoutes(api)
	sessH.NewCashSessionHandler(sessUC, appLogger).RegisterRoutes(api)

	registry := pos.NewRegistry(stockUC)
	pos.NewHandler(registry, catUC, ordUC, sessUC, appLogger).RegisterRoutes(api)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := e.Start(port); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
