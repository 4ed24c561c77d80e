package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

type MockTransitRepository struct {
	mock.Mock
}

func (m *MockTransitRepository) FindStopByName(ctx context.Context, cityCode, name string) (*domain.StopRef, error) {
	args := m.Called(ctx, cityCode, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StopRef), args.Error(1)
}

func (m *MockTransitRepository) StopsNear(ctx context.Context, latitude, longitude float64) ([]domain.BusStop, error) {
	args := m.Called(ctx, latitude, longitude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusStop), args.Error(1)
}

func (m *MockTransitRepository) Arrivals(ctx context.Context, cityCode, stopID string) ([]domain.BusArrival, error) {
	args := m.Called(ctx, cityCode, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusArrival), args.Error(1)
}

func (m *MockTransitRepository) CityCodes(ctx context.Context) ([]domain.CityCodeList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CityCodeList), args.Error(1)
}

type MockRegionalBISRepository struct {
	mock.Mock
}

func (m *MockRegionalBISRepository) FindStopByName(ctx context.Context, region domain.Region, name string) (*domain.StopRef, error) {
	args := m.Called(ctx, region, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StopRef), args.Error(1)
}

func (m *MockRegionalBISRepository) Arrivals(ctx context.Context, region domain.Region, stopID string) ([]domain.BusArrival, error) {
	args := m.Called(ctx, region, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusArrival), args.Error(1)
}

type MockPlaceSearchRepository struct {
	mock.Mock
}

func (m *MockPlaceSearchRepository) SearchStops(ctx context.Context, query string) ([]domain.BusStop, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusStop), args.Error(1)
}

func (m *MockPlaceSearchRepository) SearchStopsNear(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]domain.BusStop, error) {
	args := m.Called(ctx, latitude, longitude, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusStop), args.Error(1)
}

type MockDirectionsRepository struct {
	mock.Mock
}

func (m *MockDirectionsRepository) RouteDistance(ctx context.Context, from, to domain.Coordinate) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetArrivalBoard(ctx context.Context, cityCode, stopID string) (*domain.ArrivalBoard, error) {
	args := m.Called(ctx, cityCode, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArrivalBoard), args.Error(1)
}

func (m *MockCacheRepository) SetArrivalBoard(ctx context.Context, board *domain.ArrivalBoard, ttl time.Duration) error {
	args := m.Called(ctx, board, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetNearbyStops(ctx context.Context, key string) ([]domain.BusStop, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusStop), args.Error(1)
}

func (m *MockCacheRepository) SetNearbyStops(ctx context.Context, key string, stops []domain.BusStop, ttl time.Duration) error {
	args := m.Called(ctx, key, stops, ttl)
	return args.Error(0)
}

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, payload any) error {
	args := m.Called(ctx, stream, payload)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) History(ctx context.Context, limit int) ([]domain.AlertHistoryItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AlertHistoryItem), args.Error(1)
}

func (m *MockAlertRepository) Add(ctx context.Context, item domain.AlertHistoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockAlertRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (domain.AppSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AppSettings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings domain.AppSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) List(ctx context.Context) ([]domain.Favorite, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Save(ctx context.Context, stop domain.BusStop) error {
	args := m.Called(ctx, stop)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, stopID string) error {
	args := m.Called(ctx, stopID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, stopID string) (bool, error) {
	args := m.Called(ctx, stopID)
	return args.Bool(0), args.Error(1)
}
