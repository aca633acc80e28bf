package utils

import "math"

// earthRadiusMeters is the mean radius of a spherical Earth.
const earthRadiusMeters = 6371000

// CalculateHaversineDistance returns the great-circle distance in meters
// between two coordinates given in decimal degrees.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius reports whether the actual coordinate lies inside the
// allowed radius around the reference coordinate. The radius is applied
// exactly as given, without any tolerance.
func WithinRadius(lat, lon, refLat, refLon, radiusMeters float64) bool {
	return CalculateHaversineDistance(lat, lon, refLat, refLon) <= radiusMeters
}
