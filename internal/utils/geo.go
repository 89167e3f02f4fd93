package utils

import (
	"math"
)

func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// greatCircleKM is the raw haversine distance, unrounded. Rounding happens in
// the exported wrappers so the road factor scales the exact value.
func greatCircleKM(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

// HaversineDistanceKM returns the great-circle distance between two points
// in kilometers, rounded to two decimal places.
func HaversineDistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	return Round2(greatCircleKM(lat1, lon1, lat2, lon2))
}

// RoadDistanceKM approximates driving distance by scaling the great-circle
// distance with a fixed winding factor, rounded to two decimal places. Roads
// are never straight lines; the factor keeps quotes closer to the metered
// distance without a routing provider.
func RoadDistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	return Round2(greatCircleKM(lat1, lon1, lat2, lon2) * RoadDistanceFactor)
}

// EstimateETAMinutes converts a distance to travel time at the given average
// speed, rounded up to whole minutes.
func EstimateETAMinutes(distanceKM float64, averageSpeedKMH float64) int {
	if averageSpeedKMH <= 0 {
		averageSpeedKMH = AverageSpeedKMH
	}

	timeHours := distanceKM / averageSpeedKMH
	return int(math.Ceil(timeHours * 60))
}
