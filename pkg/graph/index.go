package graph

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// indexedNode implements orb.Pointer
type indexedNode struct {
	id    NodeId
	point orb.Point
}

func (n indexedNode) Point() orb.Point { return n.point }

// spatialIndex answers bounding box queries over the node coordinates.
type spatialIndex struct {
	tree *quadtree.Quadtree
}

func newSpatialIndex(nodes []PathNode) *spatialIndex {
	if len(nodes) == 0 {
		return nil
	}
	bound := orb.Bound{Min: nodes[0].Coordinates, Max: nodes[0].Coordinates}
	for _, n := range nodes[1:] {
		bound = bound.Extend(n.Coordinates)
	}
	tree := quadtree.New(bound.Pad(1e-6))
	for id, n := range nodes {
		if err := tree.Add(indexedNode{id: id, point: n.Coordinates}); err != nil {
			// the bound covers all nodes
			panic(err)
		}
	}
	return &spatialIndex{tree: tree}
}

// inBound returns the ids of all nodes inside b in ascending order.
func (si *spatialIndex) inBound(b orb.Bound) []NodeId {
	if si == nil {
		return nil
	}
	pointers := si.tree.InBound(nil, b)
	ids := make([]NodeId, 0, len(pointers))
	for _, p := range pointers {
		ids = append(ids, p.(indexedNode).id)
	}
	sort.Ints(ids)
	return ids
}
