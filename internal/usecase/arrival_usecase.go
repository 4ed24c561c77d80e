package usecase

import (
	"context"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/Yoon-jae-min/busalert/internal/usecase/dto"
	"go.uber.org/zap"
)

// ArrivalQuery carries everything a provider may need to answer an arrival
// lookup. StopID is the caller's best-known id; providers that key stops
// differently resolve their own id from StopName.
type ArrivalQuery struct {
	Region   domain.Region
	CityCode string
	StopID   string
	StopName string
}

// ArrivalProvider is one tier of the arrival lookup chain.
type ArrivalProvider interface {
	Source() domain.ArrivalSource
	// Supports reports whether this provider can serve the given region at
	// all; unsupported providers are skipped without counting as a failure.
	Supports(region domain.Region) bool
	Fetch(ctx context.Context, q ArrivalQuery) ([]domain.BusArrival, error)
}

type ArrivalUseCase struct {
	providers []ArrivalProvider
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewArrivalUseCase(
	providers []ArrivalProvider,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ArrivalUseCase {
	return &ArrivalUseCase{
		providers: providers,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// GetArrivals walks the provider chain in order and returns the first
// non-empty answer. Provider errors are logged and swallowed; with the sample
// provider last in the chain the operation effectively cannot fail.
func (uc *ArrivalUseCase) GetArrivals(ctx context.Context, req dto.ArrivalsRequest) (*dto.ArrivalsResponse, error) {
	region := domain.DetectRegion(req.Lat, req.Lon)

	q := ArrivalQuery{
		Region:   region,
		CityCode: region.CityCode(),
		StopID:   req.StopID,
		StopName: req.StopName,
	}

	if cached, err := uc.cacheRepo.GetArrivalBoard(ctx, q.CityCode, q.StopID); err == nil && cached != nil {
		return dto.ConvertBoard(cached), nil
	}

	board := uc.fetchBoard(ctx, q)
	uc.PrimeBoard(ctx, board)

	return dto.ConvertBoard(board), nil
}

// FetchBoard bypasses the cache and fetches fresh data for a stop. The
// refresh worker calls this, decides whether the watch is still live, and
// only then primes the cache via PrimeBoard.
func (uc *ArrivalUseCase) FetchBoard(ctx context.Context, req dto.ArrivalsRequest) *domain.ArrivalBoard {
	region := domain.DetectRegion(req.Lat, req.Lon)

	return uc.fetchBoard(ctx, ArrivalQuery{
		Region:   region,
		CityCode: region.CityCode(),
		StopID:   req.StopID,
		StopName: req.StopName,
	})
}

// PrimeBoard writes a fetched board into the cache. Sample boards are never
// cached; they would mask a provider coming back.
func (uc *ArrivalUseCase) PrimeBoard(ctx context.Context, board *domain.ArrivalBoard) {
	if board.Source == domain.SourceSample {
		return
	}
	if err := uc.cacheRepo.SetArrivalBoard(ctx, board, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache arrival board",
			zap.String("stop_id", board.StopID),
			zap.Error(err))
	}
}

func (uc *ArrivalUseCase) fetchBoard(ctx context.Context, q ArrivalQuery) *domain.ArrivalBoard {
	for _, p := range uc.providers {
		if !p.Supports(q.Region) {
			continue
		}

		arrivals, err := p.Fetch(ctx, q)
		if err != nil {
			uc.logger.Warn("Arrival provider failed, falling through",
				zap.String("provider", string(p.Source())),
				zap.String("stop_id", q.StopID),
				zap.Error(err))
			continue
		}
		if len(arrivals) == 0 {
			continue
		}

		return &domain.ArrivalBoard{
			StopID:   q.StopID,
			CityCode: q.CityCode,
			Source:   p.Source(),
			Arrivals: arrivals,
		}
	}

	// The sample provider never errors and never returns empty, so reaching
	// this point means the chain was built without it.
	return &domain.ArrivalBoard{
		StopID:   q.StopID,
		CityCode: q.CityCode,
		Source:   domain.SourceSample,
		Arrivals: sampleArrivals(),
	}
}
