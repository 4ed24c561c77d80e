package domain

import "math"

// WalkingRoute is a best-effort travel estimate from the user to a stop.
// Distance may come from a road-routing provider or from a great-circle
// fallback; Duration is always derived from Distance at a fixed pedestrian
// speed, so callers cannot tell the two sources apart.
type WalkingRoute struct {
	Distance float64 `json:"distance"` // meters
	Duration int     `json:"duration"` // seconds
}

// WalkingDuration converts a distance in meters to seconds at the given
// pedestrian speed (m/s), rounding up.
func WalkingDuration(distanceMeters, speedMps float64) int {
	if speedMps <= 0 {
		return 0
	}
	return int(math.Ceil(distanceMeters / speedMps))
}
