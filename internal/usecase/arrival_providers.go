package usecase

import (
	"context"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
)

// seoulBISProvider serves the Seoul/Gyeonggi regional feeds. It is only in
// the chain when a credential is configured, and only answers for regions
// that actually run a regional BIS.
type seoulBISProvider struct {
	repo repository.RegionalBISRepository
}

func NewSeoulBISProvider(repo repository.RegionalBISRepository) ArrivalProvider {
	return &seoulBISProvider{repo: repo}
}

func (p *seoulBISProvider) Source() domain.ArrivalSource { return domain.SourceSeoulBIS }

func (p *seoulBISProvider) Supports(region domain.Region) bool {
	return region.HasRegionalBIS()
}

func (p *seoulBISProvider) Fetch(ctx context.Context, q ArrivalQuery) ([]domain.BusArrival, error) {
	stopID := q.StopID
	// The regional feed keys stops by its own station id; resolve by name
	// when the caller only knows the aggregator id.
	if q.StopName != "" {
		ref, err := p.repo.FindStopByName(ctx, q.Region, q.StopName)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, nil
		}
		stopID = ref.StopID
	}

	return p.repo.Arrivals(ctx, q.Region, stopID)
}

// tagoProvider serves every region through the national aggregator.
type tagoProvider struct {
	repo repository.TransitRepository
}

func NewTagoProvider(repo repository.TransitRepository) ArrivalProvider {
	return &tagoProvider{repo: repo}
}

func (p *tagoProvider) Source() domain.ArrivalSource { return domain.SourceTago }

func (p *tagoProvider) Supports(domain.Region) bool { return true }

func (p *tagoProvider) Fetch(ctx context.Context, q ArrivalQuery) ([]domain.BusArrival, error) {
	stopID := q.StopID
	if stopID == "" && q.StopName != "" {
		ref, err := p.repo.FindStopByName(ctx, q.CityCode, q.StopName)
		if err != nil {
			return nil, err
		}
		if ref == nil {
			return nil, nil
		}
		stopID = ref.StopID
	}
	if stopID == "" {
		return nil, nil
	}

	return p.repo.Arrivals(ctx, q.CityCode, stopID)
}

// sampleProvider terminates the chain with built-in data so the user always
// sees something.
type sampleProvider struct{}

func NewSampleProvider() ArrivalProvider { return sampleProvider{} }

func (sampleProvider) Source() domain.ArrivalSource { return domain.SourceSample }

func (sampleProvider) Supports(domain.Region) bool { return true }

func (sampleProvider) Fetch(context.Context, ArrivalQuery) ([]domain.BusArrival, error) {
	return sampleArrivals(), nil
}
