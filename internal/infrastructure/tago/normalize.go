package tago

import (
	"sort"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

// arrivalItem is one raw TAGO record: one per physical bus, not per route.
type arrivalItem struct {
	RouteID          flexString `json:"routeid"`
	RouteNo          flexString `json:"routeno"`
	RouteType        flexString `json:"routetp"`
	ArrTime          flexString `json:"arrtime"`          // seconds
	ArrPrevStationCn flexString `json:"arrprevstationcnt"`
	VehicleType      flexString `json:"vehicletp"`
}

type rawBus struct {
	arrTime     int
	prevStation *int
	vehicleType string
}

// NormalizeArrivals folds raw per-bus records into one BusArrival per route:
// records with a negative arrival time (service ended) are dropped, the rest
// are grouped by route id, sorted ascending, and only the two soonest buses
// survive. The result is in canonical display order.
func NormalizeArrivals(items []arrivalItem) []domain.BusArrival {
	type routeMeta struct {
		name      string
		routeType string
	}

	buses := make(map[string][]rawBus)
	meta := make(map[string]routeMeta)
	order := make([]string, 0)

	for _, item := range items {
		routeID := item.RouteID.String()
		if routeID == "" {
			continue
		}

		arrTime, ok := item.ArrTime.Int()
		if !ok || arrTime < 0 {
			continue
		}

		bus := rawBus{
			arrTime:     arrTime,
			vehicleType: item.VehicleType.String(),
		}
		if cnt, ok := item.ArrPrevStationCn.Int(); ok {
			bus.prevStation = &cnt
		}

		if _, seen := meta[routeID]; !seen {
			meta[routeID] = routeMeta{
				name:      item.RouteNo.String(),
				routeType: item.RouteType.String(),
			}
			order = append(order, routeID)
		}
		buses[routeID] = append(buses[routeID], bus)
	}

	arrivals := make([]domain.BusArrival, 0, len(order))
	for _, routeID := range order {
		group := buses[routeID]
		sort.Slice(group, func(i, j int) bool {
			return group[i].arrTime < group[j].arrTime
		})

		first := group[0]
		arrival := domain.BusArrival{
			RouteID:      routeID,
			RouteName:    meta[routeID].name,
			RouteType:    meta[routeID].routeType,
			ArrivalTime:  first.arrTime,
			LocationNo1:  first.prevStation,
			VehicleType1: first.vehicleType,
			LowPlate:     domain.IsLowFloorVehicle(first.vehicleType),
		}

		if len(group) > 1 {
			second := group[1]
			t2 := second.arrTime
			arrival.ArrivalTime2 = &t2
			arrival.LocationNo2 = second.prevStation
			arrival.VehicleType2 = second.vehicleType
			if domain.IsLowFloorVehicle(second.vehicleType) {
				arrival.LowPlate = true
			}
		}

		arrivals = append(arrivals, arrival)
	}

	domain.SortArrivals(arrivals)
	return arrivals
}
