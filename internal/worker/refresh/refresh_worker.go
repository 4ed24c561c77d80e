package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"github.com/Yoon-jae-min/busalert/internal/worker"
	"go.uber.org/zap"
)

type watchEntry struct {
	req dto.ArrivalsRequest
	gen uint64
}

// Worker keeps the arrival boards of watched stops warm by re-fetching them
// on a fixed interval. Watches arrive over the watch stream; re-watching a
// stop replaces the previous watch, and results fetched for a watch that was
// replaced mid-flight are discarded.
type Worker struct {
	*worker.BaseWorker
	arrivalUC    *usecase.ArrivalUseCase
	streamRepo   repository.StreamRepository
	interval     time.Duration
	consumerName string

	mu      sync.Mutex
	gen     uint64
	watches map[string]watchEntry
}

func NewWorker(
	arrivalUC *usecase.ArrivalUseCase,
	streamRepo repository.StreamRepository,
	consumerGroup string,
	interval time.Duration,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("arrival-refresh", consumerGroup, logger),
		arrivalUC:    arrivalUC,
		streamRepo:   streamRepo,
		interval:     interval,
		consumerName: consumerName,
		watches:      make(map[string]watchEntry),
	}
}

// Watch registers a stop for periodic refresh, replacing any previous watch
// for the same stop.
func (w *Worker) Watch(req dto.ArrivalsRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.gen++
	w.watches[req.StopID] = watchEntry{req: req, gen: w.gen}
}

// Unwatch removes a stop from the refresh set.
func (w *Worker) Unwatch(stopID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.watches, stopID)
}

// Watching reports whether a stop is currently in the refresh set.
func (w *Worker) Watching(stopID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watches[stopID]
	return ok
}

func (w *Worker) snapshot() []watchEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := make([]watchEntry, 0, len(w.watches))
	for _, e := range w.watches {
		entries = append(entries, e)
	}
	return entries
}

// current reports whether a watch is still the one a refresh was started for.
func (w *Worker) current(stopID string, gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.watches[stopID]
	return ok && e.gen == gen
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting refresh worker",
		zap.Duration("interval", w.interval),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamStopWatch, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamStopWatch, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume watch stream: %w", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Refresh worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-events:
			if !ok {
				return nil
			}
			w.handleWatchEvent(ctx, msg)

		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *Worker) handleWatchEvent(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.WatchEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Malformed watch event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	} else if event.Unwatch {
		w.Unwatch(event.StopID)
		logger.Info("Stop unwatched", zap.String("stop_id", event.StopID))
	} else {
		w.Watch(dto.ArrivalsRequest{
			StopID:   event.StopID,
			StopName: event.StopName,
			Lat:      event.Lat,
			Lon:      event.Lon,
		})
		logger.Info("Stop watched", zap.String("stop_id", event.StopID))
	}

	if err := w.streamRepo.AckMessage(ctx, domain.StreamStopWatch, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Warn("Failed to ack watch event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

func (w *Worker) refreshAll(ctx context.Context) {
	logger := w.Logger()

	for _, entry := range w.snapshot() {
		board := w.arrivalUC.FetchBoard(ctx, entry.req)

		if !w.current(entry.req.StopID, entry.gen) {
			// The watch was replaced or removed while fetching; do not
			// let its result reach the cache.
			continue
		}
		w.arrivalUC.PrimeBoard(ctx, board)

		logger.Debug("Arrival board refreshed",
			zap.String("stop_id", entry.req.StopID),
			zap.String("source", string(board.Source)),
			zap.Int("arrivals", len(board.Arrivals)))
	}
}
