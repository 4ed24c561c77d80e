package seoulbis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Yoon-jae-min/busalert/internal/domain"
)

// serviceEnded is the sentinel for "excluded from output".
const serviceEnded = -1

var (
	minutesPattern = regexp.MustCompile(`(\d+)\s*분`)
	secondsPattern = regexp.MustCompile(`(\d+)\s*초`)
)

// parseArrivalSeconds derives a countdown in seconds from a BIS record. The
// numeric arrtime field wins when present; otherwise the free-text countdown
// message is parsed: "곧 도착"/"도착" mean arriving now, "운행종료" means
// service ended (excluded), "N분"/"N초" are converted to seconds.
func parseArrivalSeconds(arrMsg, arrTime string) int {
	if arrTime != "" {
		if t, err := strconv.Atoi(arrTime); err == nil && t >= 0 {
			return t
		}
	}

	if arrMsg == "" {
		return 0
	}

	if strings.Contains(arrMsg, "운행종료") {
		return serviceEnded
	}

	// A countdown in the text beats the generic arrival wording, so
	// "3분후 도착" counts as three minutes rather than arriving now.
	if m := minutesPattern.FindStringSubmatch(arrMsg); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		return minutes * 60
	}
	if m := secondsPattern.FindStringSubmatch(arrMsg); m != nil {
		seconds, _ := strconv.Atoi(m[1])
		return seconds
	}

	// "곧 도착", bare "도착" and anything unrecognised count as arriving now.
	return 0
}

// parseArrivalItems converts BIS records into the canonical arrival shape.
// Records whose first bus already ended service are dropped entirely.
func parseArrivalItems(items []itemXML) []domain.BusArrival {
	arrivals := make([]domain.BusArrival, 0, len(items))

	for _, item := range items {
		first := parseArrivalSeconds(item.ArrMsg1, firstNonEmpty(item.ArrTime1, item.ArrTime))
		if first < 0 {
			continue
		}

		routeID := item.BusRouteID
		if routeID == "" {
			routeID = item.ArsID
		}

		arrival := domain.BusArrival{
			RouteID:     routeID,
			RouteName:   item.RtNm,
			RouteType:   item.RouteType,
			ArrivalTime: first,
			LowPlate:    item.LowPlate1 == "1" || item.LowPlate2 == "1" || item.LowPlate == "1",
		}

		if item.ArrMsg2 != "" || item.ArrTime2 != "" {
			second := parseArrivalSeconds(item.ArrMsg2, item.ArrTime2)
			if second >= 0 {
				arrival.ArrivalTime2 = &second
			}
		}

		if item.LocationNo1 != "" {
			if n, err := strconv.Atoi(item.LocationNo1); err == nil {
				arrival.LocationNo1 = &n
			}
		}
		if item.LocationNo2 != "" {
			if n, err := strconv.Atoi(item.LocationNo2); err == nil {
				arrival.LocationNo2 = &n
			}
		}

		arrivals = append(arrivals, arrival)
	}

	domain.SortArrivals(arrivals)
	return arrivals
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
