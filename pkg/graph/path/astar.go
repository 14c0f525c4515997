package path

import (
	"io"
	"log/slog"
	"math"

	"github.com/natevvv/campus-routing/pkg/graph"
	"github.com/natevvv/campus-routing/pkg/queue"
	"github.com/natevvv/campus-routing/pkg/slice"
)

type SearchKPIs struct {
	pqPops             int // amount of Pops which were performed on the priority queue
	pqUpdates          int // each push to the priority queue
	relaxationAttempts int // edges which were looked at
	relaxedEdges       int // edges which improved the cost of their target
	numSettledNodes    int // number of settled nodes
}

// Reset the kpi
func (kpi *SearchKPIs) Reset() {
	kpi.pqPops = 0
	kpi.pqUpdates = 0
	kpi.relaxationAttempts = 0
	kpi.relaxedEdges = 0
	kpi.numSettledNodes = 0
}

// AStar searches the cheapest path between two nodes under the costs of EdgeCost.
// Without heuristic it behaves like plain Dijkstra.
// Implements the Navigator Interface.
//
// An AStar keeps the state of its last search and must not be shared between goroutines.
type AStar struct {
	g *graph.Graph

	items   []SearchItem         // arena of all items created during the search
	minHeap *queue.MinHeap[int]  // open set, holds arena indices ordered by fScore
	closed  slice.FixedSizeSlice // settled nodes
	gScore  []float64            // best known cost per node
	best    []int                // arena index of the best item per node, -1 if unknown
	settled []int                // arena indices in settle order

	origin      graph.NodeId
	destination graph.NodeId
	goalItem    int // arena index of the settled destination, -1 if not found

	useHeuristic       bool
	searchOptions      SearchOptions
	maxNumSettledNodes int

	searchKPIs SearchKPIs
	logger     *slog.Logger
}

// NewAStar creates a new A* instance on the graph g
func NewAStar(g *graph.Graph) *AStar {
	a := &AStar{
		g:                  g,
		origin:             -1,
		destination:        -1,
		goalItem:           -1,
		useHeuristic:       true,
		maxNumSettledNodes: math.MaxInt,
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a.minHeap = queue.NewMinHeap(a.less)
	return a
}

// NewDijkstra creates a search without heuristic
func NewDijkstra(g *graph.Graph) *AStar {
	a := NewAStar(g)
	a.SetUseHeuristic(false)
	return a
}

func (a *AStar) less(i, j int) bool {
	if a.items[i].fScore == a.items[j].fScore {
		// prefer items closer to the goal
		return a.items[i].gScore > a.items[j].gScore
	}
	return a.items[i].fScore < a.items[j].fScore
}

// ComputeShortestPath computes the cheapest path from the origin to the destination.
// It returns the cost of the found path.
// If no path was found, it returns -1
func (a *AStar) ComputeShortestPath(origin, destination graph.NodeId) float64 {
	a.initializeSearch(origin, destination)
	if a.g.NodeCount() == 0 || !a.valid(origin) || !a.valid(destination) {
		return -1
	}

	a.logger.Debug("new search", "origin", origin, "destination", destination)

	a.push(origin, 0, -1, -1)

	for a.minHeap.Len() > 0 {
		current := a.minHeap.Pop()
		a.searchKPIs.pqPops++
		item := a.items[current]

		if a.closed.Has(item.nodeId) || a.best[item.nodeId] != current {
			// outdated entry
			continue
		}

		if item.nodeId == destination {
			a.goalItem = current
			a.settle(current)
			a.logger.Debug("found path", "cost", item.gScore, "settled", a.searchKPIs.numSettledNodes)
			return item.gScore
		}

		if a.searchKPIs.numSettledNodes >= a.maxNumSettledNodes {
			a.logger.Debug("settled node budget exhausted", "budget", a.maxNumSettledNodes)
			return -1
		}

		a.settle(current)
		a.relaxEdges(current)
	}

	a.logger.Debug("no path found", "origin", origin, "destination", destination)
	return -1
}

func (a *AStar) valid(id graph.NodeId) bool {
	return id >= 0 && id < a.g.NodeCount()
}

func (a *AStar) initializeSearch(origin, destination graph.NodeId) {
	n := a.g.NodeCount()
	a.origin = origin
	a.destination = destination
	a.goalItem = -1
	a.items = a.items[:0]
	a.settled = a.settled[:0]
	a.minHeap.Reset()
	a.searchKPIs.Reset()
	a.closed = slice.MakeFixedSizeSlice(n)
	if len(a.gScore) != n {
		a.gScore = make([]float64, n)
		a.best = make([]int, n)
	}
	for i := range a.gScore {
		a.gScore[i] = math.Inf(1)
		a.best[i] = -1
	}
}

func (a *AStar) push(nodeId graph.NodeId, gScore float64, parent, edge int) {
	fScore := gScore + heuristicValue(a.useHeuristic, a.g, nodeId, a.destination)
	a.items = append(a.items, SearchItem{nodeId: nodeId, gScore: gScore, fScore: fScore, parent: parent, edge: edge})
	index := len(a.items) - 1
	a.gScore[nodeId] = gScore
	a.best[nodeId] = index
	a.minHeap.Push(index)
	a.searchKPIs.pqUpdates++
}

func (a *AStar) settle(index int) {
	a.closed.Add(a.items[index].nodeId)
	a.settled = append(a.settled, index)
	a.searchKPIs.numSettledNodes++
}

func (a *AStar) relaxEdges(index int) {
	item := a.items[index]
	for i, edge := range a.g.GetArcsFrom(item.nodeId) {
		a.searchKPIs.relaxationAttempts++
		target := edge.Destination()
		if a.closed.Has(target) {
			continue
		}
		if a.searchOptions.IsAccessibleOnly() && !edge.Accessible {
			continue
		}
		if a.searchOptions.AvoidsStairs() && edge.IsStairs() {
			continue
		}
		tentative := item.gScore + EdgeCost(edge, a.g.GetNode(target))
		if tentative < a.gScore[target] {
			a.searchKPIs.relaxedEdges++
			a.push(target, tentative, index, i)
		}
	}
}

// GetPath returns the node ids of the last found path, including origin and destination.
// It returns nil if the last search did not reach the destination or was done for another pair.
func (a *AStar) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	if origin != a.origin || destination != a.destination || a.goalItem < 0 {
		return nil
	}
	path := make([]graph.NodeId, 0)
	for index := a.goalItem; index >= 0; index = a.items[index].parent {
		path = append(path, a.items[index].nodeId)
	}
	slice.ReverseInPlace(path)
	return path
}

// GetPathEdges returns the edges of the last found path in travel order.
func (a *AStar) GetPathEdges() []graph.PathEdge {
	if a.goalItem < 0 {
		return nil
	}
	edges := make([]graph.PathEdge, 0)
	for index := a.goalItem; a.items[index].parent >= 0; index = a.items[index].parent {
		item := a.items[index]
		parent := a.items[item.parent]
		edges = append(edges, a.g.GetArcsFrom(parent.nodeId)[item.edge])
	}
	slice.ReverseInPlace(edges)
	return edges
}

// GetSearchSpace returns the settled items of the last search in settle order.
func (a *AStar) GetSearchSpace() []*SearchItem {
	searchSpace := make([]*SearchItem, 0, len(a.settled))
	for _, index := range a.settled {
		searchSpace = append(searchSpace, &a.items[index])
	}
	return searchSpace
}

func (a *AStar) SetSearchOptions(options SearchOptions) {
	a.searchOptions = options
}

// SetUseHeuristic switches between A* and Dijkstra.
func (a *AStar) SetUseHeuristic(useHeuristic bool) {
	a.useHeuristic = useHeuristic
}

// SetMaxNumSettledNodes limits the nodes a search may settle before it gives up.
// A value <= 0 removes the limit.
func (a *AStar) SetMaxNumSettledNodes(maxNumSettledNodes int) {
	if maxNumSettledNodes <= 0 {
		maxNumSettledNodes = math.MaxInt
	}
	a.maxNumSettledNodes = maxNumSettledNodes
}

func (a *AStar) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a.logger = logger
}

// Get the number of pq pops
func (a *AStar) GetPqPops() int { return a.searchKPIs.pqPops }

// Get the number of pq pushes
func (a *AStar) GetPqUpdates() int { return a.searchKPIs.pqUpdates }

// Get the number of relaxed edges
func (a *AStar) GetEdgeRelaxations() int { return a.searchKPIs.relaxedEdges }

// Get the number of attempted edge relaxations
func (a *AStar) GetRelaxationAttempts() int { return a.searchKPIs.relaxationAttempts }

// Get the number of settled nodes
func (a *AStar) GetSettledNodes() int { return a.searchKPIs.numSettledNodes }

// Get the used graph
func (a *AStar) GetGraph() *graph.Graph { return a.g }
