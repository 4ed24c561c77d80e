package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	rdb    *Redis
	logger *zap.Logger
}

func NewCacheRepository(rdb *Redis, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		rdb:    rdb,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.rdb.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.rdb.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Cache exists failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return n > 0, nil
}

func arrivalBoardKey(cityCode, stopID string) string {
	return fmt.Sprintf("arrivals:%s:%s", cityCode, stopID)
}

func nearbyStopsKey(key string) string {
	return fmt.Sprintf("stops:near:%s", key)
}

func (r *cacheRepository) GetArrivalBoard(ctx context.Context, cityCode, stopID string) (*domain.ArrivalBoard, error) {
	data, err := r.Get(ctx, arrivalBoardKey(cityCode, stopID))
	if err != nil || data == nil {
		return nil, err
	}

	var board domain.ArrivalBoard
	if err := json.Unmarshal(data, &board); err != nil {
		r.logger.Warn("Failed to unmarshal cached arrival board",
			zap.String("stop_id", stopID),
			zap.Error(err),
		)
		return nil, nil
	}
	return &board, nil
}

func (r *cacheRepository) SetArrivalBoard(ctx context.Context, board *domain.ArrivalBoard, ttl time.Duration) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}
	return r.Set(ctx, arrivalBoardKey(board.CityCode, board.StopID), data, ttl)
}

func (r *cacheRepository) GetNearbyStops(ctx context.Context, key string) ([]domain.BusStop, error) {
	data, err := r.Get(ctx, nearbyStopsKey(key))
	if err != nil || data == nil {
		return nil, err
	}

	var stops []domain.BusStop
	if err := json.Unmarshal(data, &stops); err != nil {
		r.logger.Warn("Failed to unmarshal cached stops", zap.String("key", key), zap.Error(err))
		return nil, nil
	}
	return stops, nil
}

func (r *cacheRepository) SetNearbyStops(ctx context.Context, key string, stops []domain.BusStop, ttl time.Duration) error {
	data, err := json.Marshal(stops)
	if err != nil {
		return err
	}
	return r.Set(ctx, nearbyStopsKey(key), data, ttl)
}
