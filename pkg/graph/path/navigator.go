// Package path implements the route search over a campus graph.
package path

import "github.com/natevvv/campus-routing/pkg/graph"

type Navigator interface {
	ComputeShortestPath(origin, destination graph.NodeId) float64 // Compute the cheapest path from the origin to the destination. Returns -1 if there is none
	GetPath(origin, destination graph.NodeId) []graph.NodeId      // Get the path of a previous computation. This contains the nodeIds which lie on the path from source to destination
	GetPathEdges() []graph.PathEdge                               // Get the edges used by the path of a previous computation
	SetSearchOptions(options SearchOptions)                       // Restrict the usable edges
	GetSearchSpace() []*SearchItem                                // Returns the search space of a previous computation. This contains all items which were settled.
	GetPqPops() int                                               // Returns the amount of priority queue/heap pops which were performed during the search
	GetPqUpdates() int                                            // Get the number of pq pushes
	GetEdgeRelaxations() int                                      // Get the number of relaxed edges
	GetRelaxationAttempts() int                                   // Get the number of attempted edge relaxations (some may early terminated)
	GetGraph() *graph.Graph                                       // Get the used graph
}
