package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yoon-jae-min/busalert/internal/config"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/kakao"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/seoulbis"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/tago"
	"github.com/Yoon-jae-min/busalert/internal/pkg/logger"
	"github.com/Yoon-jae-min/busalert/internal/repository/cache"
	"github.com/Yoon-jae-min/busalert/internal/repository/postgres"
	redisRepo "github.com/Yoon-jae-min/busalert/internal/repository/redis"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/worker"
	"github.com/Yoon-jae-min/busalert/internal/worker/alertdispatch"
	"github.com/Yoon-jae-min/busalert/internal/worker/refresh"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Refresh.Enabled {
		fmt.Println("Worker is disabled in configuration. Set REFRESH_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Bus Alert Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Refresh.ConsumerGroup),
		zap.Duration("refresh_interval", cfg.Refresh.Interval))

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories and provider clients
	cacheRepo := cache.NewCacheRepository(redisClient, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	alertRepo := postgres.NewAlertRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	tagoClient := tago.NewClient(&cfg.Providers, log)
	bisClient := seoulbis.NewClient(&cfg.Providers, log)
	kakaoClient := kakao.NewClient(&cfg.Providers, log)

	// 6. Initialize use cases
	providers := make([]usecase.ArrivalProvider, 0, 3)
	if bisClient.HasCredential() {
		providers = append(providers, usecase.NewSeoulBISProvider(bisClient))
	}
	if tagoClient.HasCredential() {
		providers = append(providers, usecase.NewTagoProvider(tagoClient))
	}
	providers = append(providers, usecase.NewSampleProvider())

	arrivalUC := usecase.NewArrivalUseCase(providers, cacheRepo, cfg.Cache.ArrivalsCacheTTL, log)

	walkingUC := usecase.NewWalkingUseCase(
		kakaoClient,
		kakaoClient.HasCredential(),
		cfg.Planner.WalkingSpeedMps,
		log,
	)
	plannerUC := usecase.NewPlannerUseCase(arrivalUC, walkingUC, cfg.Planner.MarginSeconds, log)
	alertUC := usecase.NewAlertUseCase(plannerUC, alertRepo, settingsRepo, streamRepo, log)

	// 7. Initialize workers
	refreshWorker := refresh.NewWorker(
		arrivalUC,
		streamRepo,
		cfg.Refresh.ConsumerGroup,
		cfg.Refresh.Interval,
		log,
	)
	dispatchWorker := alertdispatch.NewWorker(
		streamRepo,
		alertUC,
		cfg.Refresh.ConsumerGroup+"-alerts",
		cfg.Refresh.MaxRetries,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(refreshWorker)
	workerManager.Register(dispatchWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker stopped")
}
