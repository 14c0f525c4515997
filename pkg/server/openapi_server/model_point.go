// SPDX-License-Identifier: MIT

package openapi_server

import (
	"fmt"

	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func (p Point) Orb() orb.Point {
	return geometry.MakePoint(p.Lon, p.Lat)
}

func pointFromOrb(p orb.Point) Point {
	return Point{Lon: p.Lon(), Lat: p.Lat()}
}

// AssertPointValid checks if the point is a usable WGS84 coordinate
func AssertPointValid(obj Point) error {
	if !geometry.Valid(obj.Orb()) {
		return &ParsingError{Err: fmt.Errorf("invalid coordinate (%v, %v)", obj.Lon, obj.Lat)}
	}
	return nil
}
