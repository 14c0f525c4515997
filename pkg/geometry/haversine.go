package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadius is the mean earth radius in meters used for all distances.
const EarthRadius = 6371000.0

// Haversine returns the great-circle distance between a and b in meters.
// Invalid coordinates yield +Inf, which callers treat as unreachable.
func Haversine(a, b orb.Point) float64 {
	if !Valid(a) || !Valid(b) {
		return math.Inf(1)
	}
	lat1 := deg2rad(a.Lat())
	lat2 := deg2rad(b.Lat())
	dLat := lat2 - lat1
	dLon := deg2rad(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// IntHaversine returns the haversine distance rounded to whole meters.
func IntHaversine(a, b orb.Point) int {
	d := Haversine(a, b)
	if math.IsInf(d, 1) {
		return math.MaxInt
	}
	return int(math.Round(d))
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180.0
}
