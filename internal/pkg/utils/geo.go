package utils

import "math"

const earthRadiusM = 6371000.0

// HaversineDistance returns the great-circle distance between two points in
// meters. Symmetric, zero for identical points.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	lat1Rad := toRad(lat1)
	lat2Rad := toRad(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

func toRad(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// ValidateCoordinates checks latitude/longitude ranges.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius checks a search radius in meters (50 m - 20 km).
func ValidateRadius(radiusMeters float64) bool {
	return radiusMeters >= 50 && radiusMeters <= 20000
}
