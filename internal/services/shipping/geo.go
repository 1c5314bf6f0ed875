package shipping

import (
	"math"

	"shipfee/internal/models"
)

// haversineKm returns the great-circle distance in kilometers.
func haversineKm(from, to models.Coordinate) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180.0 }
	dlat := rad(to.Lat - from.Lat)
	dlon := rad(to.Lon - from.Lon)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rad(from.Lat))*math.Cos(rad(to.Lat))*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func roundDistance(km float64) float64 {
	return math.Round(km*distanceScale) / distanceScale
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
