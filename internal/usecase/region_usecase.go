package usecase

import (
	"context"
	"fmt"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/pkg/utils"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"go.uber.org/zap"
)

type RegionUseCase struct {
	transitRepo repository.TransitRepository
	tagoEnabled bool
	bisEnabled  bool
	logger      *zap.Logger
}

type RegionUseCaseOptions struct {
	TagoEnabled bool
	BISEnabled  bool
}

func NewRegionUseCase(
	transitRepo repository.TransitRepository,
	opts RegionUseCaseOptions,
	logger *zap.Logger,
) *RegionUseCase {
	return &RegionUseCase{
		transitRepo: transitRepo,
		tagoEnabled: opts.TagoEnabled,
		bisEnabled:  opts.BISEnabled,
		logger:      logger,
	}
}

// Classify maps a coordinate to its service region. Missing or unmatched
// coordinates fall back to the default region and are flagged as such.
func (uc *RegionUseCase) Classify(req dto.RegionRequest) *dto.RegionResponse {
	region := domain.DetectRegion(req.Lat, req.Lon)

	defaulted := req.Lat == nil || req.Lon == nil
	if !defaulted && region == domain.DefaultRegion {
		// The default region also owns a real box; only flag when the
		// coordinate fell through every box.
		defaulted = !domain.MatchesAnyRegionBox(*req.Lat, *req.Lon)
	}

	return &dto.RegionResponse{
		Region:         string(region),
		DisplayName:    region.DisplayName(),
		CityCode:       region.CityCode(),
		HasBIS:         region.HasRegionalBIS(),
		Defaulted:      defaulted,
		Supported:      uc.IsRegionSupported(region),
		SupportMessage: uc.SupportMessage(region),
	}
}

// IsRegionSupported reports whether any credentialed provider can serve live
// arrivals for the region. The national aggregator covers every region; the
// regional feeds only their own.
func (uc *RegionUseCase) IsRegionSupported(region domain.Region) bool {
	if uc.tagoEnabled {
		return true
	}
	return uc.bisEnabled && region.HasRegionalBIS()
}

// SupportMessage returns the user-facing notice for an unsupported region,
// nil when the region is served.
func (uc *RegionUseCase) SupportMessage(region domain.Region) *string {
	if uc.IsRegionSupported(region) {
		return nil
	}
	msg := fmt.Sprintf("%s 지역의 버스 도착 정보는 현재 지원되지 않습니다. 공공데이터포털 API 키를 설정하시면 전국 대부분의 도시에서 서비스를 이용하실 수 있습니다.", region.DisplayName())
	return &msg
}

// CityCodeFromCoordinate asks the national aggregator which city a coordinate
// belongs to by taking the city code of the closest nearby stop. Returns nil
// when nothing can be determined; it never surfaces an error to the caller.
func (uc *RegionUseCase) CityCodeFromCoordinate(ctx context.Context, latitude, longitude float64) *string {
	stops, err := uc.transitRepo.StopsNear(ctx, latitude, longitude)
	if err != nil {
		uc.logger.Warn("City code lookup failed",
			zap.Float64("lat", latitude),
			zap.Float64("lon", longitude),
			zap.Error(err))
		return nil
	}
	if len(stops) == 0 {
		return nil
	}

	best := stops[0]
	bestDist := utils.HaversineDistance(latitude, longitude, best.Latitude, best.Longitude)
	for _, s := range stops[1:] {
		d := utils.HaversineDistance(latitude, longitude, s.Latitude, s.Longitude)
		if d < bestDist {
			best = s
			bestDist = d
		}
	}

	if best.CityCode == "" {
		return nil
	}
	code := best.CityCode
	return &code
}
