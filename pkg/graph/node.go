package graph

import (
	"strings"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/paulmach/orb"
)

type NodeId = int

// PathNode is a point of the walkable network.
// The POI fields are only set for nodes which were created from a POI record.
type PathNode struct {
	ID          string    // quantized coordinate key
	Coordinates orb.Point // (lon, lat)
	Connections []PathEdge
	Floor       int
	Accessible  bool

	IsPOI          bool
	POIID          string
	Name           string
	BuildingID     string
	OpenSpaceID    string
	IsMainEntrance bool
}

// PathEdge is a directed connection to another node of the same graph.
type PathEdge struct {
	To          NodeId
	Distance    float64 // meters
	PathID      string
	Type        string
	Accessible  bool
	Coordinates [2]orb.Point
}

func (e PathEdge) Destination() NodeId {
	return e.To
}

func (e PathEdge) Cost() float64 {
	return e.Distance
}

// IsStairs reports whether the edge leads over stairs.
func (e PathEdge) IsStairs() bool {
	return strings.EqualFold(e.Type, campus.TypeStairs)
}

// Invert returns the edge in opposite direction, pointing to from.
func (e PathEdge) Invert(from NodeId) PathEdge {
	inverted := e
	inverted.To = from
	inverted.Coordinates = [2]orb.Point{e.Coordinates[1], e.Coordinates[0]}
	return inverted
}
