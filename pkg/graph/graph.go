// Package graph builds the walkable campus network from POI and path records.
//
// A Graph is an immutable snapshot: it is created by a Builder and never
// changed afterwards, so it can be shared by concurrent searches. New input
// data results in a new Graph.
package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

type Graph struct {
	nodes    []PathNode
	keys     map[string]NodeId
	pois     []NodeId
	index    *spatialIndex
	arcCount int
}

// Return the node for the given id
func (g *Graph) GetNode(id NodeId) *PathNode {
	if id < 0 || id >= g.NodeCount() {
		panic(fmt.Sprintf("NodeId %d is not contained in the graph.", id))
	}
	return &g.nodes[id]
}

// Return all nodes of the graph. The slice must not be modified.
func (g *Graph) GetNodes() []PathNode {
	return g.nodes
}

// Get the edges leaving the given node
func (g *Graph) GetArcsFrom(id NodeId) []PathEdge {
	return g.GetNode(id).Connections
}

// Return the number of total nodes
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// Return the number of total (directed) edges
func (g *Graph) ArcCount() int {
	if g == nil {
		return 0
	}
	return g.arcCount
}

// NodeByKey returns the node with the given quantized coordinate key.
func (g *Graph) NodeByKey(key string) (NodeId, bool) {
	if g == nil {
		return -1, false
	}
	id, ok := g.keys[key]
	return id, ok
}

// NodeAt returns the node located at the quantized position of p.
func (g *Graph) NodeAt(p orb.Point) (NodeId, bool) {
	return g.NodeByKey(geometry.Key(p))
}

// POINodes returns the ids of all nodes created from POI records.
func (g *Graph) POINodes() []NodeId {
	if g == nil {
		return nil
	}
	return g.pois
}

// Within returns the nodes within radius meters of center which satisfy
// filter (nil accepts all), ordered by id.
func (g *Graph) Within(center orb.Point, radius float64, filter func(*PathNode) bool) []NodeId {
	if g.NodeCount() == 0 || !geometry.Valid(center) {
		return nil
	}
	var result []NodeId
	for _, id := range g.index.inBound(geometry.BoundAround(center, radius)) {
		node := &g.nodes[id]
		if filter != nil && !filter(node) {
			continue
		}
		if geometry.Haversine(center, node.Coordinates) <= radius {
			result = append(result, id)
		}
	}
	return result
}

// Nearest returns the node closest to center which satisfies filter (nil
// accepts all). Ties are resolved in favor of the lower id.
func (g *Graph) Nearest(center orb.Point, filter func(*PathNode) bool) (NodeId, float64, bool) {
	best := -1
	bestDistance := math.Inf(1)
	for id := 0; id < g.NodeCount(); id++ {
		node := &g.nodes[id]
		if filter != nil && !filter(node) {
			continue
		}
		if d := geometry.Haversine(center, node.Coordinates); d < bestDistance {
			best = id
			bestDistance = d
		}
	}
	return best, bestDistance, best >= 0
}

// Return a human readable string of the graph
func (g *Graph) AsString() string {
	var sb strings.Builder

	// write number of nodes and number of edges
	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.ArcCount()))

	sb.WriteString("#Nodes\n")
	// list all nodes structured as "id lat lon key [poi]"
	for i := 0; i < g.NodeCount(); i++ {
		node := g.GetNode(i)
		sb.WriteString(fmt.Sprintf("%v %v %v %v", i, node.Coordinates.Lat(), node.Coordinates.Lon(), node.ID))
		if node.IsPOI {
			sb.WriteString(fmt.Sprintf(" poi=%q", node.POIID))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("#Edges\n")
	// list all edges structured as "fromId targetId distance type"
	for i := 0; i < g.NodeCount(); i++ {
		for _, arc := range g.GetArcsFrom(i) {
			sb.WriteString(fmt.Sprintf("%v %v %.2f %v\n", i, arc.Destination(), arc.Cost(), arc.Type))
		}
	}
	return sb.String()
}
