package domain

import (
	"sort"
	"strconv"
	"strings"
)

// BusArrival summarises the soonest one or two buses of a single route
// approaching a stop. Providers report one record per physical bus; the
// normalisation step folds those into at most two buses per route.
type BusArrival struct {
	RouteID      string  `json:"route_id"`
	RouteName    string  `json:"route_name"`
	RouteType    string  `json:"route_type,omitempty"`
	ArrivalTime  int     `json:"arrival_time"`            // seconds until the soonest bus
	ArrivalTime2 *int    `json:"arrival_time2,omitempty"` // seconds until the second bus
	LocationNo1  *int    `json:"location_no1,omitempty"`  // stops remaining, bus 1
	LocationNo2  *int    `json:"location_no2,omitempty"`  // stops remaining, bus 2
	VehicleType1 string  `json:"vehicle_type1,omitempty"`
	VehicleType2 string  `json:"vehicle_type2,omitempty"`
	LowPlate     bool    `json:"low_plate"`
}

// ArrivalSource labels where an arrival list came from so callers can mark
// sample data as such.
type ArrivalSource string

const (
	SourceSeoulBIS ArrivalSource = "seoul_bis"
	SourceTago     ArrivalSource = "tago"
	SourceSample   ArrivalSource = "sample"
)

// ArrivalBoard is the aggregated answer for one stop.
type ArrivalBoard struct {
	StopID   string        `json:"stop_id"`
	CityCode string        `json:"city_code"`
	Source   ArrivalSource `json:"source"`
	Arrivals []BusArrival  `json:"arrivals"`
}

// routeTypePriority orders Korean route classes for display: express first,
// village and public routes last. Unknown labels sort after everything.
var routeTypePriority = map[string]int{
	"광역버스":   1,
	"광역급행버스": 1,
	"간선버스":   2,
	"간선급행버스": 2,
	"지선버스":   3,
	"지선급행버스": 3,
	"순환버스":   4,
	"좌석버스":   5,
	"마을버스":   6,
	"공영버스":   6,
}

const unknownRoutePriority = 99

// RouteTypePriority returns the sort rank of a route-type label.
func RouteTypePriority(routeType string) int {
	if p, ok := routeTypePriority[routeType]; ok {
		return p
	}
	return unknownRoutePriority
}

// LessArrival is the canonical display order for arrivals: route-type
// priority first, then route name compared numerically when both names parse
// as plain integers, otherwise a natural string compare.
func LessArrival(a, b BusArrival) bool {
	pa := RouteTypePriority(a.RouteType)
	pb := RouteTypePriority(b.RouteType)
	if pa != pb {
		return pa < pb
	}

	na, errA := strconv.Atoi(a.RouteName)
	nb, errB := strconv.Atoi(b.RouteName)
	if errA == nil && errB == nil {
		return na < nb
	}

	return naturalLess(a.RouteName, b.RouteName)
}

// SortArrivals sorts in place by the canonical display order.
func SortArrivals(arrivals []BusArrival) {
	sort.SliceStable(arrivals, func(i, j int) bool {
		return LessArrival(arrivals[i], arrivals[j])
	})
}

// naturalLess compares strings treating digit runs as numbers, so "M5" sorts
// before "M10".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			da, restA := takeDigits(a)
			db, restB := takeDigits(b)
			if da != db {
				return da < db
			}
			a, b = restA, restB
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func takeDigits(s string) (int, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}

// IsLowFloorVehicle recognises both signals the providers use for accessible
// buses: a bare "1" flag or the literal Korean low-floor label.
func IsLowFloorVehicle(vehicleType string) bool {
	v := strings.TrimSpace(vehicleType)
	return v == "1" || v == "저상버스"
}
