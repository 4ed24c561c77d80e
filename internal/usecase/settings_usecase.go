package usecase

import (
	"context"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"go.uber.org/zap"
)

type SettingsUseCase struct {
	settingsRepo repository.SettingsRepository
	logger       *zap.Logger
}

func NewSettingsUseCase(
	settingsRepo repository.SettingsRepository,
	logger *zap.Logger,
) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get always succeeds from the caller's point of view: storage failures are
// logged and answered with defaults.
func (uc *SettingsUseCase) Get(ctx context.Context) *dto.SettingsResponse {
	settings, err := uc.settingsRepo.Load(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load settings, serving defaults", zap.Error(err))
		settings = domain.DefaultSettings()
	}
	resp := dto.ConvertSettings(settings)
	return &resp
}

func (uc *SettingsUseCase) Update(ctx context.Context, req dto.SettingsRequest) (*dto.SettingsResponse, error) {
	settings := domain.AppSettings{
		DefaultRadius:       req.DefaultRadius,
		AlertAdvanceMinutes: req.AlertAdvanceMinutes,
		AutoRefresh:         req.AutoRefresh,
		RefreshInterval:     req.RefreshInterval,
	}

	if err := uc.settingsRepo.Save(ctx, settings); err != nil {
		uc.logger.Error("Failed to save settings", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	resp := dto.ConvertSettings(settings)
	return &resp, nil
}
