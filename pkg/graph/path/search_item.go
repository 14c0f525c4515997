package path

import (
	"fmt"

	"github.com/natevvv/campus-routing/pkg/graph"
)

// SearchItem is the state of one heap entry of the search.
// Items live in an arena; parent is the arena index of the predecessor item.
type SearchItem struct {
	nodeId graph.NodeId // node id of this item in the graph
	gScore float64      // cost from the origin to this node
	fScore float64      // gScore plus the estimated cost to the destination
	parent int          // arena index of the predecessor, -1 for the origin
	edge   int          // index of the edge in the predecessor's connections, -1 for the origin
}

func (item *SearchItem) NodeId() graph.NodeId { return item.nodeId }
func (item *SearchItem) GScore() float64      { return item.gScore }
func (item *SearchItem) FScore() float64      { return item.fScore }
func (item *SearchItem) String() string {
	return fmt.Sprintf("%v: g=%.2f f=%.2f\n", item.nodeId, item.gScore, item.fScore)
}
