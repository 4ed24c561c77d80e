package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/errors"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"go.uber.org/zap"
)

type StopUseCase struct {
	transitRepo  repository.TransitRepository
	bisRepo      repository.RegionalBISRepository
	placeRepo    repository.PlaceSearchRepository
	cacheRepo    repository.CacheRepository
	bisEnabled   bool
	placeEnabled bool
	stopsTTL     time.Duration
	logger       *zap.Logger
}

type StopUseCaseOptions struct {
	BISEnabled   bool
	PlaceEnabled bool
	StopsTTL     time.Duration
}

func NewStopUseCase(
	transitRepo repository.TransitRepository,
	bisRepo repository.RegionalBISRepository,
	placeRepo repository.PlaceSearchRepository,
	cacheRepo repository.CacheRepository,
	opts StopUseCaseOptions,
	logger *zap.Logger,
) *StopUseCase {
	return &StopUseCase{
		transitRepo:  transitRepo,
		bisRepo:      bisRepo,
		placeRepo:    placeRepo,
		cacheRepo:    cacheRepo,
		bisEnabled:   opts.BISEnabled,
		placeEnabled: opts.PlaceEnabled,
		stopsTTL:     opts.StopsTTL,
		logger:       logger,
	}
}

// FindStopByName resolves a stop name to its provider-side id for the region
// the coordinate belongs to. A miss returns nil without an error so callers
// can decide between 404 and fallback behaviour.
func (uc *StopUseCase) FindStopByName(ctx context.Context, req dto.StopSearchRequest) (*domain.StopRef, error) {
	region := domain.DetectRegion(req.Lat, req.Lon)

	if region.HasRegionalBIS() && uc.bisEnabled {
		ref, err := uc.bisRepo.FindStopByName(ctx, region, req.Name)
		if err != nil {
			uc.logger.Warn("Regional stop lookup failed, falling back",
				zap.String("region", string(region)),
				zap.String("name", req.Name),
				zap.Error(err))
		} else if ref != nil {
			return ref, nil
		}
	}

	ref, err := uc.transitRepo.FindStopByName(ctx, region.CityCode(), req.Name)
	if err != nil {
		uc.logger.Error("Stop lookup failed",
			zap.String("name", req.Name),
			zap.Error(err))
		return nil, err
	}
	return ref, nil
}

// FindStopsNear lists bus stops around a coordinate, nearest first. Providers
// are tried in order (national aggregator, then place search, then built-in
// sample stops) and the first non-empty answer wins.
func (uc *StopUseCase) FindStopsNear(ctx context.Context, req dto.NearbyStopsRequest) (*dto.NearbyStopsResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	radius := req.Radius
	if radius == 0 {
		radius = 1000
	}
	if !utils.ValidateRadius(radius) {
		return nil, errors.ErrInvalidRadius
	}

	cacheKey := fmt.Sprintf("%.4f:%.4f:%d", req.Lat, req.Lon, int(radius))
	if cached, err := uc.cacheRepo.GetNearbyStops(ctx, cacheKey); err == nil && cached != nil {
		return &dto.NearbyStopsResponse{
			Stops:  dto.ConvertStops(cached),
			Source: string(domain.SourceTago),
		}, nil
	}

	stops, err := uc.transitRepo.StopsNear(ctx, req.Lat, req.Lon)
	if err != nil {
		uc.logger.Warn("Nearby stop lookup failed, trying place search", zap.Error(err))
	}
	source := domain.SourceTago

	if len(stops) == 0 && uc.placeEnabled {
		stops, err = uc.placeRepo.SearchStopsNear(ctx, req.Lat, req.Lon, int(radius))
		if err != nil {
			uc.logger.Warn("Place search failed, serving sample stops", zap.Error(err))
		}
		source = domain.ArrivalSource("kakao")
	}

	if len(stops) == 0 {
		stops = sampleStopsNear(req.Lat, req.Lon)
		source = domain.SourceSample
	}

	sort.SliceStable(stops, func(i, j int) bool {
		di, dj := 0.0, 0.0
		if stops[i].Distance != nil {
			di = *stops[i].Distance
		}
		if stops[j].Distance != nil {
			dj = *stops[j].Distance
		}
		return di < dj
	})

	if source != domain.SourceSample {
		if err := uc.cacheRepo.SetNearbyStops(ctx, cacheKey, stops, uc.stopsTTL); err != nil {
			uc.logger.Warn("Failed to cache nearby stops", zap.Error(err))
		}
	}

	return &dto.NearbyStopsResponse{
		Stops:  dto.ConvertStops(stops),
		Source: string(source),
	}, nil
}

// SearchStops runs a free-text stop search through the place provider with
// the sample stops as a last resort.
func (uc *StopUseCase) SearchStops(ctx context.Context, query string) (*dto.NearbyStopsResponse, error) {
	if uc.placeEnabled {
		stops, err := uc.placeRepo.SearchStops(ctx, query)
		if err != nil {
			uc.logger.Warn("Stop keyword search failed", zap.String("query", query), zap.Error(err))
		} else if len(stops) > 0 {
			return &dto.NearbyStopsResponse{
				Stops:  dto.ConvertStops(stops),
				Source: "kakao",
			}, nil
		}
	}

	matches := make([]domain.BusStop, 0)
	for _, s := range sampleStops() {
		if containsFold(s.Name, query) {
			matches = append(matches, s)
		}
	}
	return &dto.NearbyStopsResponse{
		Stops:  dto.ConvertStops(matches),
		Source: string(domain.SourceSample),
	}, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sampleStopsNear stamps the built-in stops with distances from the query
// point so the usual sort applies.
func sampleStopsNear(lat, lon float64) []domain.BusStop {
	stops := sampleStops()
	for i := range stops {
		d := utils.HaversineDistance(lat, lon, stops[i].Latitude, stops[i].Longitude)
		stops[i].Distance = &d
	}
	return stops
}
