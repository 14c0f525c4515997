package routing

import (
	"math"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/natevvv/campus-routing/pkg/graph"
	"github.com/paulmach/orb"
)

// DefaultSelectorRadius is the radius in meters in which POIs are scored as
// entry or exit node of a route.
const DefaultSelectorRadius = 500.0

// Score multipliers of the node selection
const (
	efficientViaBonus  = 2.0 // via route shorter than 1.2x the direct distance
	acceptableViaBonus = 1.5 // via route shorter than 1.5x the direct distance
	mainEntranceBonus  = 3.0
	buildingBonus      = 2.0
	openSpaceBonus     = 1.5
	doorBonus          = 1.3
	sideDoorBonus      = 1.8

	sideDoorRadius = 200.0 // query and companion must both be this close to a side door
	minDistance    = 0.01  // lower bound for the distance of the inverse score
)

// selector maps arbitrary coordinates to graph nodes.
type selector struct {
	g      *graph.Graph
	radius float64
}

func isPOINode(node *graph.PathNode) bool { return node.IsPOI }

// selectNode returns the best node to enter or leave the graph at query.
// companion is the opposite end of the trip and may be nil.
//
// An exact POI at the query position wins. Otherwise the POIs within the
// selector radius are scored and the best one is used. If there is none, the
// closest node of any kind is used. An empty graph yields no node.
func (s selector) selectNode(query orb.Point, companion *orb.Point) (graph.NodeId, bool) {
	if s.g.NodeCount() == 0 || !geometry.Valid(query) {
		return -1, false
	}

	if id, ok := s.g.NodeAt(query); ok && s.g.GetNode(id).IsPOI {
		return id, true
	}

	best := -1
	bestScore := 0.0
	for _, id := range s.g.Within(query, s.radius, isPOINode) {
		score := s.score(s.g.GetNode(id), query, companion)
		// candidates are ordered by id, so ties keep the lower one
		if score > bestScore {
			best = id
			bestScore = score
		}
	}
	if best >= 0 {
		return best, true
	}

	id, _, ok := s.g.Nearest(query, nil)
	return id, ok
}

func (s selector) score(node *graph.PathNode, query orb.Point, companion *orb.Point) float64 {
	distance := geometry.Haversine(query, node.Coordinates)
	score := 1 / math.Max(distance, minDistance)

	if companion != nil {
		direct := geometry.Haversine(query, *companion)
		if direct > 0 {
			via := distance + geometry.Haversine(node.Coordinates, *companion)
			switch ratio := via / direct; {
			case ratio < 1.2:
				score *= efficientViaBonus
			case ratio < 1.5:
				score *= acceptableViaBonus
			}
		}
	}

	if node.IsMainEntrance {
		score *= mainEntranceBonus
	}
	if node.BuildingID != "" {
		score *= buildingBonus
	}
	if node.OpenSpaceID != "" {
		score *= openSpaceBonus
	}
	if campus.IsDoorName(node.Name) {
		score *= doorBonus
	}
	if companion != nil && campus.IsSideEntranceName(node.Name) &&
		distance < sideDoorRadius && geometry.Haversine(*companion, node.Coordinates) < sideDoorRadius {
		score *= sideDoorBonus
	}
	return score
}
