package graph

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pA = geometry.MakePoint(-7.9365, 32.2185)
	pB = geometry.MakePoint(-7.9360, 32.2185)
	pC = geometry.MakePoint(-7.9355, 32.2185)
	pD = geometry.MakePoint(-7.9355, 32.2180)
)

func TestNodeDedup(t *testing.T) {
	paths := []campus.Path{
		campus.NewPath("p1", pA, pB),
		campus.NewPath("p2", geometry.MakePoint(-7.93600001, 32.21850001), pC),
	}
	g, stats := NewBuilder().Build(nil, paths)

	require.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 3, stats.Nodes)
	id, ok := g.NodeAt(pB)
	require.True(t, ok)
	// the shared node connects both segments
	assert.Len(t, g.GetArcsFrom(id), 2)
}

func TestPOIPrecedence(t *testing.T) {
	pois := []campus.POI{campus.NewPOI("entrance", "Main Entrance", pB.Lon(), pB.Lat())}
	paths := []campus.Path{campus.NewPath("p1", pA, pB, pC)}
	g := BuildGraph(pois, paths)

	id, ok := g.NodeAt(pB)
	require.True(t, ok)
	node := g.GetNode(id)
	assert.True(t, node.IsPOI)
	assert.True(t, node.IsMainEntrance)
	assert.Equal(t, "entrance", node.POIID)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, []NodeId{id}, g.POINodes())
}

func TestEdgesAreMirrored(t *testing.T) {
	stairs := campus.NewPath("s1", pA, pB, pC)
	stairs.Type = "stairs"
	closed := false
	stairs.IsAccessible = &closed

	g := BuildGraph(nil, []campus.Path{stairs})
	require.Equal(t, 4, g.ArcCount())

	for from := 0; from < g.NodeCount(); from++ {
		for _, e := range g.GetArcsFrom(from) {
			assert.True(t, e.IsStairs())
			assert.False(t, e.Accessible)
			assert.Equal(t, "s1", e.PathID)
			assert.Equal(t, g.GetNode(from).Coordinates, e.Coordinates[0])
			assert.Equal(t, g.GetNode(e.To).Coordinates, e.Coordinates[1])

			found := false
			for _, back := range g.GetArcsFrom(e.To) {
				if back.To == from && back.PathID == e.PathID {
					found = true
					assert.Equal(t, e.Distance, back.Distance)
				}
			}
			assert.True(t, found, "edge %d -> %d has no reverse edge", from, e.To)
		}
	}
}

func TestAccessibleDefault(t *testing.T) {
	g := BuildGraph(nil, []campus.Path{campus.NewPath("p", pA, pB)})
	for _, e := range g.GetArcsFrom(0) {
		assert.True(t, e.Accessible)
		assert.Equal(t, campus.TypePath, e.Type)
	}
	assert.True(t, g.GetNode(0).Accessible)
}

func TestMalformedRecordsAreSkipped(t *testing.T) {
	var logs bytes.Buffer
	b := NewBuilder()
	b.Logger = slog.New(slog.NewJSONHandler(&logs, nil))

	pois := []campus.POI{
		{ID: "nowhere", Name: "Lost"},
		campus.NewPOI("ok", "Cafeteria", pD.Lon(), pD.Lat()),
	}
	paths := []campus.Path{
		{ID: "empty"},
		{ID: "garbage", Coordinates: [][]float64{{500, 500}, nil}},
		campus.NewPath("single", pA),
		campus.NewPath("p", pB, pC),
	}
	g, stats := b.Build(pois, paths)

	assert.Equal(t, 1, stats.SkippedPOIs)
	assert.Equal(t, 2, stats.SkippedPaths)
	assert.Equal(t, 4, g.NodeCount())
	assert.Contains(t, logs.String(), "nowhere")
	assert.Contains(t, logs.String(), "garbage")
	// a single point path creates a node without edges
	id, ok := g.NodeAt(pA)
	require.True(t, ok)
	assert.Empty(t, g.GetArcsFrom(id))
}

func TestPOIAttachment(t *testing.T) {
	poi := campus.NewPOI("cafe", "Cafeteria", -7.9359, 32.2187)
	g, stats := NewBuilder().Build([]campus.POI{poi}, []campus.Path{campus.NewPath("p", pA, pB, pC)})

	require.Equal(t, 1, stats.AttachedPOIs)
	poiID := g.POINodes()[0]
	arcs := g.GetArcsFrom(poiID)
	require.Len(t, arcs, 1)
	assert.Equal(t, campus.TypeConnector, arcs[0].Type)

	// pB is the closest path node
	closest, ok := g.NodeAt(pB)
	require.True(t, ok)
	assert.Equal(t, closest, arcs[0].To)
	assert.InDelta(t, geometry.Haversine(geometry.MakePoint(-7.9359, 32.2187), pB), arcs[0].Distance, 1e-9)
}

func TestPOIOutOfReachStaysDisconnected(t *testing.T) {
	b := NewBuilder()
	b.AttachRadius = 50
	poi := campus.NewPOI("far", "Observatory", -7.9300, 32.2100)
	g, stats := b.Build([]campus.POI{poi}, []campus.Path{campus.NewPath("p", pA, pB)})

	assert.Equal(t, 1, stats.DisconnectedPOIs)
	assert.Empty(t, g.GetArcsFrom(g.POINodes()[0]))
}

func TestPOIsAreNotAttachedToPOIs(t *testing.T) {
	pois := []campus.POI{
		campus.NewPOI("a", "A", pA.Lon(), pA.Lat()),
		campus.NewPOI("b", "B", pB.Lon(), pB.Lat()),
	}
	g, stats := NewBuilder().Build(pois, nil)
	assert.Equal(t, 2, stats.DisconnectedPOIs)
	assert.Zero(t, g.ArcCount())
}

func TestDuplicatePOI(t *testing.T) {
	pois := []campus.POI{
		campus.NewPOI("first", "A", pA.Lon(), pA.Lat()),
		campus.NewPOI("second", "B", pA.Lon(), pA.Lat()),
	}
	g, stats := NewBuilder().Build(pois, nil)
	assert.Equal(t, 1, stats.DuplicatePOIs)
	require.Equal(t, 1, g.NodeCount())
	assert.Equal(t, "first", g.GetNode(0).POIID)
}

func TestMultiLinePathConnectsEveryLine(t *testing.T) {
	path := campus.Path{ID: "p", Geometry: orb.MultiLineString{{pA, pB}, {pC, pD}}}
	g, stats := NewBuilder().Build(nil, []campus.Path{path})

	assert.Equal(t, 2, stats.Paths)
	require.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 4, g.ArcCount())
	id, ok := g.NodeAt(pD)
	require.True(t, ok)
	require.Len(t, g.GetArcsFrom(id), 1)
	assert.Equal(t, "p#1", g.GetArcsFrom(id)[0].PathID)
}

func TestDistanceCacheIsScopedToBuild(t *testing.T) {
	paths := []campus.Path{campus.NewPath("p", pA, pB, pC, pD)}
	b := NewBuilder()
	b.Build(nil, paths)
	assert.Nil(t, b.Cache)

	cache := geometry.NewDistanceCache()
	b.Cache = cache
	b.Build(nil, paths)
	entries := cache.Len()
	assert.Equal(t, 3, entries)
	b.Build(nil, paths)
	assert.Equal(t, entries, cache.Len())
}

func TestBuildIsIdempotent(t *testing.T) {
	pois := []campus.POI{campus.NewPOI("cafe", "Cafeteria", -7.9357, 32.2187)}
	paths := []campus.Path{campus.NewPath("p", pA, pB, pC), campus.NewPath("q", pC, pD)}
	first := BuildGraph(pois, paths)
	second := BuildGraph(pois, paths)
	assert.Equal(t, first.AsString(), second.AsString())
}
