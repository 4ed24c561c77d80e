package refresh

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
)

type mockStreamRepo struct {
	mock.Mock
}

func (m *mockStreamRepo) Publish(ctx context.Context, stream string, payload any) error {
	args := m.Called(ctx, stream, payload)
	return args.Error(0)
}

func (m *mockStreamRepo) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *mockStreamRepo) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *mockStreamRepo) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

type mockCacheRepo struct {
	mock.Mock
}

func (m *mockCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCacheRepo) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCacheRepo) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockCacheRepo) GetArrivalBoard(ctx context.Context, cityCode, stopID string) (*domain.ArrivalBoard, error) {
	args := m.Called(ctx, cityCode, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArrivalBoard), args.Error(1)
}

func (m *mockCacheRepo) SetArrivalBoard(ctx context.Context, board *domain.ArrivalBoard, ttl time.Duration) error {
	args := m.Called(ctx, board, ttl)
	return args.Error(0)
}

func (m *mockCacheRepo) GetNearbyStops(ctx context.Context, key string) ([]domain.BusStop, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusStop), args.Error(1)
}

func (m *mockCacheRepo) SetNearbyStops(ctx context.Context, key string, stops []domain.BusStop, ttl time.Duration) error {
	args := m.Called(ctx, key, stops, ttl)
	return args.Error(0)
}

// hookProvider lets a test run code in the middle of a fetch, between the
// snapshot a refresh works from and the cache prime.
type hookProvider struct {
	arrivals []domain.BusArrival
	onFetch  func()
}

func (p *hookProvider) Source() domain.ArrivalSource { return domain.SourceTago }
func (p *hookProvider) Supports(domain.Region) bool  { return true }

func (p *hookProvider) Fetch(ctx context.Context, q usecase.ArrivalQuery) ([]domain.BusArrival, error) {
	if p.onFetch != nil {
		p.onFetch()
	}
	return p.arrivals, nil
}

func newTestWorker(streamRepo *mockStreamRepo) *Worker {
	return NewWorker(nil, streamRepo, "test-group", time.Second, zap.NewNop())
}

func TestWorker_WatchReplacement(t *testing.T) {
	w := newTestWorker(new(mockStreamRepo))

	req := dto.ArrivalsRequest{StopID: "121000213", StopName: "강남역"}
	w.Watch(req)
	require.True(t, w.Watching("121000213"))

	first := w.watches["121000213"]
	assert.True(t, w.current("121000213", first.gen))

	// Re-watching the same stop replaces the entry and invalidates the old
	// generation, so an in-flight refresh for it gets discarded.
	w.Watch(dto.ArrivalsRequest{StopID: "121000213", StopName: "강남역"})
	second := w.watches["121000213"]

	assert.Greater(t, second.gen, first.gen)
	assert.False(t, w.current("121000213", first.gen))
	assert.True(t, w.current("121000213", second.gen))
}

func TestWorker_Unwatch(t *testing.T) {
	w := newTestWorker(new(mockStreamRepo))

	w.Watch(dto.ArrivalsRequest{StopID: "121000213"})
	entry := w.watches["121000213"]

	w.Unwatch("121000213")

	assert.False(t, w.Watching("121000213"))
	assert.False(t, w.current("121000213", entry.gen))
}

func TestWorker_UnwatchUnknownStop(t *testing.T) {
	w := newTestWorker(new(mockStreamRepo))

	w.Unwatch("never-watched")

	assert.False(t, w.Watching("never-watched"))
}

func TestWorker_HandleWatchEvent(t *testing.T) {
	t.Run("watch event registers the stop", func(t *testing.T) {
		streamRepo := new(mockStreamRepo)
		w := newTestWorker(streamRepo)

		lat, lon := 37.4979, 127.0276
		data, err := json.Marshal(domain.WatchEvent{
			StopID:   "121000213",
			StopName: "강남역",
			Lat:      &lat,
			Lon:      &lon,
		})
		require.NoError(t, err)

		streamRepo.On("AckMessage", mock.Anything, domain.StreamStopWatch, "test-group", "1-0").Return(nil)

		w.handleWatchEvent(context.Background(), domain.StreamMessage{ID: "1-0", Data: string(data)})

		assert.True(t, w.Watching("121000213"))
		entry := w.watches["121000213"]
		assert.Equal(t, "강남역", entry.req.StopName)
		require.NotNil(t, entry.req.Lat)
		assert.Equal(t, lat, *entry.req.Lat)
		streamRepo.AssertExpectations(t)
	})

	t.Run("unwatch event removes the stop", func(t *testing.T) {
		streamRepo := new(mockStreamRepo)
		w := newTestWorker(streamRepo)
		w.Watch(dto.ArrivalsRequest{StopID: "121000213"})

		data, err := json.Marshal(domain.WatchEvent{StopID: "121000213", Unwatch: true})
		require.NoError(t, err)

		streamRepo.On("AckMessage", mock.Anything, domain.StreamStopWatch, "test-group", "2-0").Return(nil)

		w.handleWatchEvent(context.Background(), domain.StreamMessage{ID: "2-0", Data: string(data)})

		assert.False(t, w.Watching("121000213"))
	})

	t.Run("malformed event is still acked", func(t *testing.T) {
		streamRepo := new(mockStreamRepo)
		w := newTestWorker(streamRepo)

		streamRepo.On("AckMessage", mock.Anything, domain.StreamStopWatch, "test-group", "3-0").Return(nil)

		w.handleWatchEvent(context.Background(), domain.StreamMessage{ID: "3-0", Data: "not json"})

		streamRepo.AssertExpectations(t)
		assert.Empty(t, w.watches)
	})
}

func TestWorker_RefreshAll(t *testing.T) {
	seoulLat, seoulLon := 37.4979, 127.0276
	req := dto.ArrivalsRequest{StopID: "121000213", Lat: &seoulLat, Lon: &seoulLon}
	liveArrivals := []domain.BusArrival{
		{RouteID: "100100024", RouteName: "146", ArrivalTime: 420},
	}

	t.Run("live watch primes the cache", func(t *testing.T) {
		cacheRepo := new(mockCacheRepo)
		cacheRepo.On("SetArrivalBoard", mock.Anything, mock.Anything, time.Minute).Return(nil)

		provider := &hookProvider{arrivals: liveArrivals}
		arrivalUC := usecase.NewArrivalUseCase([]usecase.ArrivalProvider{provider}, cacheRepo, time.Minute, zap.NewNop())
		w := NewWorker(arrivalUC, new(mockStreamRepo), "test-group", time.Second, zap.NewNop())

		w.Watch(req)
		w.refreshAll(context.Background())

		cacheRepo.AssertExpectations(t)
	})

	t.Run("watch replaced mid-flight never reaches the cache", func(t *testing.T) {
		cacheRepo := new(mockCacheRepo)

		var w *Worker
		provider := &hookProvider{
			arrivals: liveArrivals,
			onFetch: func() {
				// Replacing the watch invalidates the generation the
				// running refresh was started with.
				w.Watch(req)
			},
		}
		arrivalUC := usecase.NewArrivalUseCase([]usecase.ArrivalProvider{provider}, cacheRepo, time.Minute, zap.NewNop())
		w = NewWorker(arrivalUC, new(mockStreamRepo), "test-group", time.Second, zap.NewNop())

		w.Watch(req)
		w.refreshAll(context.Background())

		cacheRepo.AssertNotCalled(t, "SetArrivalBoard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("watch removed mid-flight never reaches the cache", func(t *testing.T) {
		cacheRepo := new(mockCacheRepo)

		var w *Worker
		provider := &hookProvider{
			arrivals: liveArrivals,
			onFetch:  func() { w.Unwatch(req.StopID) },
		}
		arrivalUC := usecase.NewArrivalUseCase([]usecase.ArrivalProvider{provider}, cacheRepo, time.Minute, zap.NewNop())
		w = NewWorker(arrivalUC, new(mockStreamRepo), "test-group", time.Second, zap.NewNop())

		w.Watch(req)
		w.refreshAll(context.Background())

		cacheRepo.AssertNotCalled(t, "SetArrivalBoard", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorker_Name(t *testing.T) {
	w := newTestWorker(new(mockStreamRepo))
	assert.Equal(t, "arrival-refresh", w.Name())
}
