package main

// @title Bus Alert API
// @version 1.0.0
// @description 버스 도착 알림 서비스 API. 실시간 버스 도착 정보를 모아 정규화하고, 정류장까지의 도보 시간을 반영해 "언제 출발해야 하는가"를 계산합니다.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Yoon-jae-min/busalert/docs"
	"github.com/Yoon-jae-min/busalert/internal/config"
	httpDelivery "github.com/Yoon-jae-min/busalert/internal/delivery/http"
	"github.com/Yoon-jae-min/busalert/internal/delivery/http/handler"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/kakao"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/seoulbis"
	"github.com/Yoon-jae-min/busalert/internal/infrastructure/tago"
	"github.com/Yoon-jae-min/busalert/internal/pkg/logger"
	"github.com/Yoon-jae-min/busalert/internal/repository/cache"
	"github.com/Yoon-jae-min/busalert/internal/repository/postgres"
	redisRepo "github.com/Yoon-jae-min/busalert/internal/repository/redis"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Bus Alert Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

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

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and provider clients
	cacheRepo := cache.NewCacheRepository(redisClient, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	tagoClient := tago.NewClient(&cfg.Providers, log)
	bisClient := seoulbis.NewClient(&cfg.Providers, log)
	kakaoClient := kakao.NewClient(&cfg.Providers, log)

	log.Info("Repositories initialized",
		zap.Bool("tago_credential", tagoClient.HasCredential()),
		zap.Bool("bis_credential", bisClient.HasCredential()),
		zap.Bool("kakao_credential", kakaoClient.HasCredential()),
	)

	// 7. Initialize use cases
	regionUC := usecase.NewRegionUseCase(tagoClient, usecase.RegionUseCaseOptions{
		TagoEnabled: tagoClient.HasCredential(),
		BISEnabled:  bisClient.HasCredential(),
	}, log)

	stopUC := usecase.NewStopUseCase(
		tagoClient,
		bisClient,
		kakaoClient,
		cacheRepo,
		usecase.StopUseCaseOptions{
			BISEnabled:   bisClient.HasCredential(),
			PlaceEnabled: kakaoClient.HasCredential(),
			StopsTTL:     cfg.Cache.StopsCacheTTL,
		},
		log,
	)

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
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, log)
	alertUC := usecase.NewAlertUseCase(plannerUC, alertRepo, settingsRepo, streamRepo, log)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	regionHandler := handler.NewRegionHandler(regionUC, log)
	stopHandler := handler.NewStopHandler(stopUC, log)
	arrivalHandler := handler.NewArrivalHandler(arrivalUC, streamRepo, regionUC, log)
	plannerHandler := handler.NewPlannerHandler(plannerUC, walkingUC, log)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUC, log)
	alertHandler := handler.NewAlertHandler(alertUC, log)
	settingsHandler := handler.NewSettingsHandler(settingsUC, log)
	healthHandler := handler.NewHealthHandler(db, redisClient, log)

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		regionHandler,
		stopHandler,
		arrivalHandler,
		plannerHandler,
		favoriteHandler,
		alertHandler,
		settingsHandler,
		healthHandler,
	)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
