package usecase

import "github.com/Yoon-jae-min/busalert/internal/domain"

// Built-in sample data keeps the app usable when every upstream provider is
// unreachable or unconfigured. Responses built from it are labelled with
// domain.SourceSample so the client can show a "sample data" badge.

func ptrStr(s string) *string { return &s }
func ptrInt(n int) *int       { return &n }

func sampleStops() []domain.BusStop {
	return []domain.BusStop{
		{
			ID:       "sample-gangnam",
			Name:     "강남역",
			Number:   ptrStr("23284"),
			Latitude: 37.4979, Longitude: 127.0276,
			Address:  ptrStr("서울 강남구 강남대로 396"),
			CityCode: "11",
		},
		{
			ID:       "sample-yeoksam",
			Name:     "역삼역",
			Number:   ptrStr("23285"),
			Latitude: 37.5006, Longitude: 127.0364,
			Address:  ptrStr("서울 강남구 테헤란로 156"),
			CityCode: "11",
		},
		{
			ID:       "sample-seolleung",
			Name:     "선릉역",
			Number:   ptrStr("23286"),
			Latitude: 37.5045, Longitude: 127.0490,
			Address:  ptrStr("서울 강남구 테헤란로 340"),
			CityCode: "11",
		},
		{
			ID:       "sample-samseong",
			Name:     "삼성역",
			Number:   ptrStr("23287"),
			Latitude: 37.5088, Longitude: 127.0631,
			Address:  ptrStr("서울 강남구 테헤란로 538"),
			CityCode: "11",
		},
	}
}

func sampleArrivals() []domain.BusArrival {
	return []domain.BusArrival{
		{
			RouteID:      "sample-146",
			RouteName:    "146",
			RouteType:    "간선버스",
			ArrivalTime:  180,
			ArrivalTime2: ptrInt(540),
			LocationNo1:  ptrInt(3),
			LocationNo2:  ptrInt(9),
			LowPlate:     true,
		},
		{
			RouteID:     "sample-241",
			RouteName:   "241",
			RouteType:   "간선버스",
			ArrivalTime: 420,
			LocationNo1: ptrInt(7),
		},
		{
			RouteID:      "sample-463",
			RouteName:    "463",
			RouteType:    "지선버스",
			ArrivalTime:  90,
			ArrivalTime2: ptrInt(780),
			LocationNo1:  ptrInt(2),
			LocationNo2:  ptrInt(13),
		},
	}
}
