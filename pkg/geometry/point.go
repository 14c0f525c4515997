// Package geometry holds the coordinate helpers shared by the graph builder,
// the node selector and the route assembler. Coordinates are orb.Points,
// i.e. (longitude, latitude) pairs.
package geometry

import (
	"math"
	"strconv"

	"github.com/paulmach/orb"
)

// KeyPrecision is the number of decimals a coordinate is quantized to when
// deriving node keys. Six decimals are roughly 0.1 m at the equator.
const KeyPrecision = 6

// MakePoint creates a point from longitude and latitude.
func MakePoint(lon, lat float64) orb.Point {
	return orb.Point{lon, lat}
}

// NewPoint creates a point from longitude and latitude and returns a pointer to it.
func NewPoint(lon, lat float64) *orb.Point {
	p := MakePoint(lon, lat)
	return &p
}

// Valid reports whether p is a finite WGS84 coordinate.
func Valid(p orb.Point) bool {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// Key derives the quantized identifier of a coordinate.
// Coincident points (after rounding to KeyPrecision decimals) share the same key.
func Key(p orb.Point) string {
	return quantize(p.Lon()) + "," + quantize(p.Lat())
}

// SameKey reports whether a and b collapse onto the same quantized coordinate.
func SameKey(a, b orb.Point) bool {
	return Key(a) == Key(b)
}

func quantize(v float64) string {
	s := strconv.FormatFloat(v, 'f', KeyPrecision, 64)
	if s == "-0.000000" {
		// -0.0000001 and 0.0000001 describe the same position
		return s[1:]
	}
	return s
}
