package repository

import (
	"context"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

// TransitRepository is the national transit aggregator (TAGO) client surface.
type TransitRepository interface {
	// FindStopByName resolves a stop name within a city to its node id.
	// Returns nil (not an error) when nothing matches.
	FindStopByName(ctx context.Context, cityCode, name string) (*domain.StopRef, error)

	// StopsNear lists stops around a GPS point, each carrying its own city
	// code. The provider fixes the radius at roughly 500m.
	StopsNear(ctx context.Context, latitude, longitude float64) ([]domain.BusStop, error)

	// Arrivals returns the normalised arrival list for a resolved stop.
	Arrivals(ctx context.Context, cityCode, stopID string) ([]domain.BusArrival, error)

	// CityCodes fetches the aggregator's city code catalogue.
	CityCodes(ctx context.Context) ([]domain.CityCodeList, error)
}

// RegionalBISRepository is the region-specific bus information system client
// surface (Seoul / Gyeonggi feeds).
type RegionalBISRepository interface {
	FindStopByName(ctx context.Context, region domain.Region, name string) (*domain.StopRef, error)
	Arrivals(ctx context.Context, region domain.Region, stopID string) ([]domain.BusArrival, error)
}

// PlaceSearchRepository is the keyword/category place-search surface (Kakao
// Local) used as a stop-directory strategy.
type PlaceSearchRepository interface {
	SearchStops(ctx context.Context, query string) ([]domain.BusStop, error)
	SearchStopsNear(ctx context.Context, latitude, longitude float64, radiusMeters int) ([]domain.BusStop, error)
}

// DirectionsRepository is the road-routing surface used for travel-time
// estimates. RouteDistance returns the road distance in meters.
type DirectionsRepository interface {
	RouteDistance(ctx context.Context, from, to domain.Coordinate) (float64, error)
}
