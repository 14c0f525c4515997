package path

import (
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/natevvv/campus-routing/pkg/graph"
)

// Weights applied to the geometric length of an edge.
const (
	POIDiscount          = 0.8 // edge leads to a POI
	MainEntranceDiscount = 0.7 // edge leads to a main entrance, applied on top of POIDiscount
	StairsPenalty        = 1.5
)

// EdgeCost returns the search cost of taking edge into target.
func EdgeCost(edge graph.PathEdge, target *graph.PathNode) float64 {
	cost := edge.Distance
	if target.IsPOI {
		cost *= POIDiscount
		if target.IsMainEntrance {
			cost *= MainEntranceDiscount
		}
	}
	if edge.IsStairs() {
		cost *= StairsPenalty
	}
	return cost
}

// heuristicValue estimates the remaining cost with the plain haversine distance.
// Returns 0 if useHeuristic is false.
//
// The estimate ignores the POI discounts of EdgeCost, so next to POIs it may
// exceed the real remaining cost.
func heuristicValue(useHeuristic bool, g *graph.Graph, origin, destination graph.NodeId) float64 {
	if useHeuristic {
		return geometry.Haversine(g.GetNode(origin).Coordinates, g.GetNode(destination).Coordinates)
	}
	return 0
}
