package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gobank/internal/adapter/http"
	"github.com/iho/gobank/internal/adapter/http/handler"
	"github.com/iho/gobank/internal/adapter/http/middleware"
	memoryRepo "github.com/iho/gobank/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/gobank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gobank/internal/adapter/repository/redis"
	"github.com/iho/gobank/internal/infrastructure/auth"
	"github.com/iho/gobank/internal/infrastructure/config"
	"github.com/iho/gobank/internal/infrastructure/crypto"
	"github.com/iho/gobank/internal/infrastructure/idgen"
	"github.com/iho/gobank/internal/infrastructure/logger"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/infrastructure/postgres"
	"github.com/iho/gobank/internal/infrastructure/redis"
	"github.com/iho/gobank/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	idGen := idgen.NewULIDGenerator()
	numberGen := idgen.NewAccountNumberGenerator()

	key, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to decode encryption key")
	}
	encryptor, err := crypto.NewAESEncryptor(key)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create encryptor")
	}

	// Storage driver
	var (
		pool        *pgxpool.Pool
		userRepo    usecase.UserRepository
		accountRepo usecase.AccountRepository
		ledgerRepo  usecase.LedgerRepository
		txnRepo     usecase.TransactionRepository
	)

	switch cfg.StorageDriver {
	case "postgres":
		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		userRepo = postgresRepo.NewUserRepository(pool)
		accountRepo = postgresRepo.NewAccountRepository(pool)
		ledgerRepo = postgresRepo.NewLedgerRepository(pool, idGen)
		txnRepo = postgresRepo.NewTransactionRepository(pool)

	case "memory":
		store := memoryRepo.NewStore(idGen)
		userRepo = memoryRepo.NewUserRepository(store)
		accountRepo = memoryRepo.NewAccountRepository(store)
		ledgerRepo = memoryRepo.NewLedgerRepository(store)
		txnRepo = memoryRepo.NewTransactionRepository(store)
		log.Info().Msg("using in-memory storage")

	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}

	// Login limiter: Redis when configured, in-process otherwise
	var (
		redisClient  *goredis.Client
		loginLimiter usecase.LoginLimiter
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		loginLimiter = redisRepo.NewLoginLimiter(redisClient, cfg.LoginAttemptLimit, cfg.LoginAttemptWindow)
	} else {
		loginLimiter = memoryRepo.NewLoginLimiter(cfg.LoginAttemptLimit, cfg.LoginAttemptWindow)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	m := metrics.New()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, m)
	rateLimiter.StartCleanup(ctx, time.Hour)

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, idGen, encryptor)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, numberGen)
	fundingUC := usecase.NewFundingUseCase(accountRepo, ledgerRepo)
	historyUC := usecase.NewHistoryUseCase(accountRepo, txnRepo)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, txnRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager, loginLimiter, m)
	accountHandler := handler.NewAccountHandler(accountUC, m)
	fundingHandler := handler.NewFundingHandler(fundingUC, m)
	historyHandler := handler.NewHistoryHandler(historyUC, ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:    authHandler,
		AccountHandler: accountHandler,
		FundingHandler: fundingHandler,
		HistoryHandler: historyHandler,
		HealthHandler:  healthHandler,
		JWTManager:     jwtManager,
		Logger:         log.Logger,
		Metrics:        m,
		RateLimiter:    rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
