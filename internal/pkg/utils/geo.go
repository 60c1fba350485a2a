package utils

import "math"

// EarthRadiusMeters is the mean earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// HaversineDistance returns the great-circle distance between a and b in meters.
func HaversineDistance(a, b Coordinate) float64 {
	return CalculateHaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// CalculateHaversineDistance computes the distance between two coordinates in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// MetersToLatitudeDegrees converts a north-south distance to degrees of latitude.
func MetersToLatitudeDegrees(meters float64) float64 {
	return meters / EarthRadiusMeters * (180.0 / math.Pi)
}
