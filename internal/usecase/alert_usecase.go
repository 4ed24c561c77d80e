package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AlertUseCase struct {
	plannerUC    *PlannerUseCase
	alertRepo    repository.AlertRepository
	settingsRepo repository.SettingsRepository
	streamRepo   repository.StreamRepository
	logger       *zap.Logger

	now func() time.Time
}

func NewAlertUseCase(
	plannerUC *PlannerUseCase,
	alertRepo repository.AlertRepository,
	settingsRepo repository.SettingsRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		plannerUC:    plannerUC,
		alertRepo:    alertRepo,
		settingsRepo: settingsRepo,
		streamRepo:   streamRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Schedule plans a departure and, when the bus is still catchable, records
// the alert and hands it to the notification stream. A plan that comes back
// too late is rejected so the client can tell the user immediately.
func (uc *AlertUseCase) Schedule(ctx context.Context, req dto.ScheduleAlertRequest) (*dto.AlertResponse, error) {
	plan, err := uc.plannerUC.PlanDeparture(ctx, req.PlanRequest)
	if err != nil {
		return nil, err
	}

	switch domain.DepartureOutcome(plan.Outcome) {
	case domain.OutcomeTooLate:
		return nil, errors.ErrDepartureTooLate
	case domain.OutcomeUnknown:
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "no departure estimate for the chosen bus",
		})
	}

	settings, err := uc.settingsRepo.Load(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load settings, using defaults", zap.Error(err))
		settings = domain.DefaultSettings()
	}

	departAt := uc.now().Add(time.Duration(plan.DepartInSeconds) * time.Second)
	if plan.DepartAt != nil {
		departAt = *plan.DepartAt
	}

	item := domain.AlertHistoryItem{
		ID:           uuid.New(),
		StopID:       req.StopID,
		StopName:     req.StopName,
		RouteName:    req.RouteID,
		DepartAt:     departAt,
		DelaySeconds: plan.DepartInSeconds,
		CreatedAt:    uc.now(),
	}
	if err := uc.alertRepo.Add(ctx, item); err != nil {
		uc.logger.Error("Failed to record alert", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	fireAfter := plan.DepartInSeconds - settings.AlertAdvanceMinutes*60
	if fireAfter < 0 {
		fireAfter = 0
	}

	event := domain.AlertDueEvent{
		AlertID:   item.ID,
		Title:     "버스 출발 알림",
		Body:      fmt.Sprintf("%s에서 %s 버스를 타려면 지금 준비하세요", req.StopName, req.RouteID),
		FireAfter: fireAfter,
	}
	if err := uc.streamRepo.Publish(ctx, domain.StreamAlertDue, event); err != nil {
		// The alert stays in history even when the stream is down; the
		// client still gets the departure plan back.
		uc.logger.Error("Failed to publish alert event",
			zap.String("alert_id", item.ID.String()),
			zap.Error(err))
	}

	return &dto.AlertResponse{
		ID:        item.ID.String(),
		StopID:    item.StopID,
		StopName:  item.StopName,
		RouteName: item.RouteName,
		DepartAt:  item.DepartAt,
		CreatedAt: item.CreatedAt,
		Plan:      plan,
	}, nil
}

func (uc *AlertUseCase) History(ctx context.Context, limit int) ([]dto.AlertResponse, error) {
	items, err := uc.alertRepo.History(ctx, limit)
	if err != nil {
		uc.logger.Error("Failed to load alert history", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	out := make([]dto.AlertResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.AlertResponse{
			ID:        item.ID.String(),
			StopID:    item.StopID,
			StopName:  item.StopName,
			RouteName: item.RouteName,
			DepartAt:  item.DepartAt,
			Completed: item.Completed,
			CreatedAt: item.CreatedAt,
		})
	}
	return out, nil
}

// MarkCompleted flags a fired alert in history. Used by the dispatch worker.
func (uc *AlertUseCase) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	if err := uc.alertRepo.MarkCompleted(ctx, id); err != nil {
		uc.logger.Error("Failed to mark alert completed",
			zap.String("alert_id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}
