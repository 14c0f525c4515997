package path

import (
	"testing"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/natevvv/campus-routing/pkg/graph"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pA = geometry.MakePoint(-7.9365, 32.2185)
	pB = geometry.MakePoint(-7.9360, 32.2185)
	pC = geometry.MakePoint(-7.9355, 32.2185)
	pD = geometry.MakePoint(-7.9350, 32.2185)
	pX = geometry.MakePoint(-7.9360, 32.2186)
	pY = geometry.MakePoint(-7.9360, 32.2195)
)

func nodeAt(t *testing.T, g *graph.Graph, p orb.Point) graph.NodeId {
	t.Helper()
	id, ok := g.NodeAt(p)
	require.True(t, ok, "no node at %v", p)
	return id
}

func TestAStarChain(t *testing.T) {
	g := graph.BuildGraph(nil, []campus.Path{campus.NewPath("p1", pA, pB, pC, pD)})
	a := NewAStar(g)

	origin, destination := nodeAt(t, g, pA), nodeAt(t, g, pD)
	cost := a.ComputeShortestPath(origin, destination)

	expected := geometry.Haversine(pA, pB) + geometry.Haversine(pB, pC) + geometry.Haversine(pC, pD)
	assert.InDelta(t, expected, cost, 1e-6)
	assert.Equal(t, []graph.NodeId{origin, nodeAt(t, g, pB), nodeAt(t, g, pC), destination}, a.GetPath(origin, destination))

	edges := a.GetPathEdges()
	require.Len(t, edges, 3)
	assert.Equal(t, pA, edges[0].Coordinates[0])
	assert.Equal(t, pD, edges[2].Coordinates[1])
}

func TestAStarSameNode(t *testing.T) {
	g := graph.BuildGraph(nil, []campus.Path{campus.NewPath("p1", pA, pB)})
	a := NewAStar(g)
	origin := nodeAt(t, g, pA)

	assert.Equal(t, 0.0, a.ComputeShortestPath(origin, origin))
	assert.Equal(t, []graph.NodeId{origin}, a.GetPath(origin, origin))
	assert.Empty(t, a.GetPathEdges())
}

func TestAStarInvalidNodes(t *testing.T) {
	g := graph.BuildGraph(nil, []campus.Path{campus.NewPath("p1", pA, pB)})
	a := NewAStar(g)

	assert.Equal(t, -1.0, a.ComputeShortestPath(-1, 0))
	assert.Equal(t, -1.0, a.ComputeShortestPath(0, 5))
	assert.Nil(t, a.GetPath(0, 5))

	empty := NewAStar(graph.BuildGraph(nil, nil))
	assert.Equal(t, -1.0, empty.ComputeShortestPath(0, 0))
}

func TestAStarDisconnected(t *testing.T) {
	g := graph.BuildGraph(nil, []campus.Path{
		campus.NewPath("p1", pA, pB),
		campus.NewPath("p2", pC, pD),
	})
	a := NewAStar(g)
	origin, destination := nodeAt(t, g, pA), nodeAt(t, g, pD)

	assert.Equal(t, -1.0, a.ComputeShortestPath(origin, destination))
	assert.Nil(t, a.GetPath(origin, destination))
	assert.Nil(t, a.GetPathEdges())
}

func TestStairsAvoidance(t *testing.T) {
	stairs := campus.NewPath("s1", pA, pB)
	stairs.Type = campus.TypeStairs
	g := graph.BuildGraph(nil, []campus.Path{stairs})
	origin, destination := nodeAt(t, g, pA), nodeAt(t, g, pB)

	a := NewAStar(g)
	cost := a.ComputeShortestPath(origin, destination)
	assert.InDelta(t, geometry.Haversine(pA, pB)*StairsPenalty, cost, 1e-6)
	edges := a.GetPathEdges()
	require.Len(t, edges, 1)
	assert.True(t, edges[0].IsStairs())

	a.SetSearchOptions(MakeSearchOptions().SetAvoidStairs(true))
	assert.Equal(t, -1.0, a.ComputeShortestPath(origin, destination))
	assert.Nil(t, a.GetPath(origin, destination))
}

func TestAccessibilityFilter(t *testing.T) {
	closed := false
	shortcut := campus.NewPath("shortcut", pA, pX, pC)
	shortcut.IsAccessible = &closed
	detour := campus.NewPath("detour", pA, pY, pC)
	g := graph.BuildGraph(nil, []campus.Path{shortcut, detour})
	origin, destination := nodeAt(t, g, pA), nodeAt(t, g, pC)

	a := NewAStar(g)
	a.ComputeShortestPath(origin, destination)
	assert.Contains(t, a.GetPath(origin, destination), nodeAt(t, g, pX))

	a.SetSearchOptions(MakeSearchOptions().SetAccessibleOnly(true))
	a.ComputeShortestPath(origin, destination)
	assert.Equal(t, []graph.NodeId{origin, nodeAt(t, g, pY), destination}, a.GetPath(origin, destination))
	for _, e := range a.GetPathEdges() {
		assert.True(t, e.Accessible)
	}
}

func TestAStarMatchesDijkstra(t *testing.T) {
	// 4x4 grid
	paths := make([]campus.Path, 0)
	point := func(x, y int) orb.Point {
		return geometry.MakePoint(-7.9370+float64(x)*0.0004, 32.2180+float64(y)*0.0003)
	}
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			if x < 3 {
				paths = append(paths, campus.NewPath("h", point(x, y), point(x+1, y)))
			}
			if y < 3 {
				paths = append(paths, campus.NewPath("v", point(x, y), point(x, y+1)))
			}
		}
	}
	g := graph.BuildGraph(nil, paths)
	require.Equal(t, 16, g.NodeCount())

	astar := NewAStar(g)
	dijkstra := NewDijkstra(g)
	for origin := 0; origin < g.NodeCount(); origin++ {
		for destination := 0; destination < g.NodeCount(); destination++ {
			expected := dijkstra.ComputeShortestPath(origin, destination)
			actual := astar.ComputeShortestPath(origin, destination)
			assert.InDelta(t, expected, actual, 1e-6, "%v -> %v", origin, destination)
			assert.LessOrEqual(t, astar.GetSettledNodes(), dijkstra.GetSettledNodes())
		}
	}
}

func TestKPIs(t *testing.T) {
	g := graph.BuildGraph(nil, []campus.Path{campus.NewPath("p1", pA, pB, pC, pD)})
	a := NewDijkstra(g)
	a.ComputeShortestPath(nodeAt(t, g, pA), nodeAt(t, g, pD))

	assert.Equal(t, 4, a.GetSettledNodes())
	assert.Equal(t, 4, a.GetPqPops())
	assert.Equal(t, 4, a.GetPqUpdates())
	assert.Equal(t, 3, a.GetEdgeRelaxations())
	// the backward edges of B and C are attempted but lead to settled nodes
	assert.Equal(t, 5, a.GetRelaxationAttempts())

	searchSpace := a.GetSearchSpace()
	require.Len(t, searchSpace, 4)
	assert.Equal(t, nodeAt(t, g, pA), searchSpace[0].NodeId())
	assert.Equal(t, 0.0, searchSpace[0].GScore())
	assert.Same(t, g, a.GetGraph())
}

func TestSettledNodeBudget(t *testing.T) {
	g := graph.BuildGraph(nil, []campus.Path{campus.NewPath("p1", pA, pB, pC, pD)})
	origin, destination := nodeAt(t, g, pA), nodeAt(t, g, pD)
	a := NewAStar(g)

	a.SetMaxNumSettledNodes(2)
	assert.Equal(t, -1.0, a.ComputeShortestPath(origin, destination))
	assert.Equal(t, 2, a.GetSettledNodes())

	a.SetMaxNumSettledNodes(0)
	assert.Greater(t, a.ComputeShortestPath(origin, destination), 0.0)
}

func TestEdgeCost(t *testing.T) {
	edge := graph.PathEdge{Distance: 100, Type: campus.TypePath}
	plain := &graph.PathNode{}
	poi := &graph.PathNode{IsPOI: true}
	entrance := &graph.PathNode{IsPOI: true, IsMainEntrance: true}

	assert.InDelta(t, 100, EdgeCost(edge, plain), 1e-9)
	assert.InDelta(t, 80, EdgeCost(edge, poi), 1e-9)
	assert.InDelta(t, 56, EdgeCost(edge, entrance), 1e-9)

	edge.Type = "Stairs"
	assert.InDelta(t, 150, EdgeCost(edge, plain), 1e-9)
	assert.InDelta(t, 84, EdgeCost(edge, entrance), 1e-9)
}

func TestSearchOptions(t *testing.T) {
	o := MakeSearchOptions()
	assert.False(t, o.IsAccessibleOnly())
	assert.False(t, o.AvoidsStairs())

	o = o.SetAccessibleOnly(true).SetAvoidStairs(true)
	assert.True(t, o.IsAccessibleOnly())
	assert.True(t, o.AvoidsStairs())

	o = o.SetAccessibleOnly(false)
	assert.False(t, o.IsAccessibleOnly())
	assert.True(t, o.AvoidsStairs())
}
