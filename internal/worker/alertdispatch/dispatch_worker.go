package alertdispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/usecase"
	"github.com/Yoon-jae-min/busalert/internal/worker"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Worker consumes due-alert events and marks them completed in history. The
// actual user-facing notification is delivered by whatever sits on the other
// side of the stream; this side only keeps the bookkeeping straight.
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	alertUC      *usecase.AlertUseCase
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
}

func NewWorker(
	streamRepo repository.StreamRepository,
	alertUC *usecase.AlertUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("alert-dispatch", consumerGroup, logger),
		streamRepo:   streamRepo,
		alertUC:      alertUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
		retryDelay:   500 * time.Millisecond,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting alert dispatch worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamAlertDue, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamAlertDue, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume alert stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Alert dispatch worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, msg)
		}
	}
}

func (w *Worker) handleEvent(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.AlertDueEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Malformed alert event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	} else {
		if err := w.completeWithRetry(ctx, event.AlertID); err != nil {
			logger.Error("Failed to complete alert",
				zap.String("alert_id", event.AlertID.String()),
				zap.Int("attempts", w.maxRetries),
				zap.Error(err))
			// Leave the message unacked so the pending-entries list keeps
			// it for a later claim.
			return
		}
		logger.Info("Alert dispatched",
			zap.String("alert_id", event.AlertID.String()),
			zap.String("title", event.Title))
	}

	if err := w.streamRepo.AckMessage(ctx, domain.StreamAlertDue, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Warn("Failed to ack alert event",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

// completeWithRetry marks an alert completed, retrying transient failures up
// to maxRetries attempts before giving up.
func (w *Worker) completeWithRetry(ctx context.Context, alertID uuid.UUID) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.alertUC.MarkCompleted(ctx, alertID); err == nil {
			return nil
		}

		if attempt == w.maxRetries {
			break
		}
		w.Logger().Warn("Retrying alert completion",
			zap.String("alert_id", alertID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.retryDelay):
		}
	}
	return err
}
