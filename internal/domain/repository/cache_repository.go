package repository

import (
	"context"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

// CacheRepository defines the transient cache used for arrival boards and
// nearby-stop lookups.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetArrivalBoard returns the cached board for a stop, nil on miss.
	GetArrivalBoard(ctx context.Context, cityCode, stopID string) (*domain.ArrivalBoard, error)
	SetArrivalBoard(ctx context.Context, board *domain.ArrivalBoard, ttl time.Duration) error

	// GetNearbyStops returns the cached proximity lookup, nil on miss.
	GetNearbyStops(ctx context.Context, key string) ([]domain.BusStop, error)
	SetNearbyStops(ctx context.Context, key string, stops []domain.BusStop, ttl time.Duration) error
}
