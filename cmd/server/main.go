package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"asset-ledger.backend/internal/config"
	"asset-ledger.backend/internal/infrastructure/datasources/postgres"
	"asset-ledger.backend/internal/infrastructure/repositories"
	"asset-ledger.backend/internal/interfaces/http/handlers"
	"asset-ledger.backend/internal/interfaces/http/middleware"
	"asset-ledger.backend/internal/usecases"
	"asset-ledger.backend/pkg/logger"
	redispkg "asset-ledger.backend/pkg/redis"
)

const balanceCacheTTL = 30 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = postgres.Open
	migrateDB  = postgres.Migrate
	newRedis   = redispkg.NewClient
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	// Schema is created on startup if absent
	if err := migrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.Info(context.Background(), "Schema ready")

	// Balance cache is optional: no REDIS_URL or an unreachable Redis
	// means lookups go straight to the database.
	balanceCache := buildBalanceCache(cfg)

	// Initialize repositories
	assetRepo := repositories.NewAssetRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	balanceUsecase := usecases.NewBalanceUsecase(walletRepo, balanceCache)
	transactionUsecase := usecases.NewTransactionUsecase(walletRepo, assetRepo, transactionRepo, uow, balanceCache)

	// Initialize handlers
	balanceHandler := handlers.NewBalanceHandler(balanceUsecase)
	transactionHandler := handlers.NewTransactionHandler(transactionUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIRoutes(r, routeDeps{
		balanceHandler:     balanceHandler,
		transactionHandler: transactionHandler,
	})

	logger.Info(context.Background(), "Ledger API starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildBalanceCache(cfg *config.Config) usecases.BalanceCache {
	if cfg.Redis.URL == "" {
		return nil
	}
	client, err := newRedis(cfg.Redis.URL, cfg.Redis.Password)
	if err != nil {
		logger.Warn(context.Background(), "Redis unavailable, balance cache disabled", zap.Error(err))
		return nil
	}
	logger.Info(context.Background(), "Balance cache enabled")
	return redispkg.NewBalanceCache(client, balanceCacheTTL)
}
