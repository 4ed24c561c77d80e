package usecase

import (
	"context"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"go.uber.org/zap"
)

type WalkingUseCase struct {
	directionsRepo    repository.DirectionsRepository
	directionsEnabled bool
	speedMps          float64
	logger            *zap.Logger
}

func NewWalkingUseCase(
	directionsRepo repository.DirectionsRepository,
	directionsEnabled bool,
	speedMps float64,
	logger *zap.Logger,
) *WalkingUseCase {
	return &WalkingUseCase{
		directionsRepo:    directionsRepo,
		directionsEnabled: directionsEnabled,
		speedMps:          speedMps,
		logger:            logger,
	}
}

// EstimateWalkingRoute estimates the walking distance and time between two
// points. It prefers the road-routing provider and silently falls back to the
// great-circle distance, so it never returns an error.
func (uc *WalkingUseCase) EstimateWalkingRoute(ctx context.Context, req dto.WalkingRequest) *dto.WalkingResponse {
	route, source := uc.estimate(ctx, req)
	return &dto.WalkingResponse{
		Distance: route.Distance,
		Duration: route.Duration,
		Source:   source,
	}
}

// Estimate is the domain-level variant used by the planner.
func (uc *WalkingUseCase) Estimate(ctx context.Context, req dto.WalkingRequest) domain.WalkingRoute {
	route, _ := uc.estimate(ctx, req)
	return route
}

func (uc *WalkingUseCase) estimate(ctx context.Context, req dto.WalkingRequest) (domain.WalkingRoute, string) {
	from := domain.Coordinate{Latitude: req.FromLat, Longitude: req.FromLon}
	to := domain.Coordinate{Latitude: req.ToLat, Longitude: req.ToLon}

	if uc.directionsEnabled {
		distance, err := uc.directionsRepo.RouteDistance(ctx, from, to)
		if err != nil {
			uc.logger.Warn("Road routing failed, using straight-line distance", zap.Error(err))
		} else {
			return domain.WalkingRoute{
				Distance: distance,
				Duration: domain.WalkingDuration(distance, uc.speedMps),
			}, "kakao"
		}
	}

	distance := utils.HaversineDistance(req.FromLat, req.FromLon, req.ToLat, req.ToLon)
	return domain.WalkingRoute{
		Distance: distance,
		Duration: domain.WalkingDuration(distance, uc.speedMps),
	}, "haversine"
}
