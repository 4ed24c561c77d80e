package usecase

import (
	"context"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"go.uber.org/zap"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	logger       *zap.Logger
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	logger *zap.Logger,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		logger:       logger,
	}
}

func (uc *FavoriteUseCase) List(ctx context.Context) ([]dto.FavoriteResponse, error) {
	favorites, err := uc.favoriteRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list favorites", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	out := make([]dto.FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, dto.FavoriteResponse{
			Stop:      dto.ConvertStop(f.Stop),
			CreatedAt: f.CreatedAt,
		})
	}
	return out, nil
}

// Add saves a stop as a favorite. Saving an already-favorited stop is a
// no-op, not an error.
func (uc *FavoriteUseCase) Add(ctx context.Context, req dto.FavoriteRequest) error {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return errors.ErrInvalidCoordinates
	}

	stop := domain.BusStop{
		ID:        req.StopID,
		Name:      req.StopName,
		Number:    req.StopNo,
		Latitude:  req.Lat,
		Longitude: req.Lon,
		Address:   req.Address,
		CityCode:  req.CityCode,
	}
	if stop.CityCode == "" {
		stop.CityCode = domain.DetectRegion(&req.Lat, &req.Lon).CityCode()
	}

	if err := uc.favoriteRepo.Save(ctx, stop); err != nil {
		uc.logger.Error("Failed to save favorite",
			zap.String("stop_id", req.StopID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (uc *FavoriteUseCase) Remove(ctx context.Context, stopID string) error {
	exists, err := uc.favoriteRepo.Exists(ctx, stopID)
	if err != nil {
		uc.logger.Error("Failed to check favorite",
			zap.String("stop_id", stopID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	if !exists {
		return errors.ErrStopNotFound
	}

	if err := uc.favoriteRepo.Remove(ctx, stopID); err != nil {
		uc.logger.Error("Failed to remove favorite",
			zap.String("stop_id", stopID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}
