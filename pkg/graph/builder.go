package graph

import (
	"io"
	"log/slog"
	"math"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

// DefaultAttachRadius is the maximum distance in meters between a POI and the
// path node it gets connected to.
const DefaultAttachRadius = 1000.0

// BuildStats summarizes a graph construction.
type BuildStats struct {
	POIs             int `json:"pois"`
	SkippedPOIs      int `json:"skippedPois"`
	DuplicatePOIs    int `json:"duplicatePois"`
	Paths            int `json:"paths"`
	SkippedPaths     int `json:"skippedPaths"`
	Nodes            int `json:"nodes"`
	Edges            int `json:"edges"`
	AttachedPOIs     int `json:"attachedPois"`
	DisconnectedPOIs int `json:"disconnectedPois"`
}

// Builder turns POI and path records into a Graph.
type Builder struct {
	AttachRadius float64
	Logger       *slog.Logger
	// Cache memoizes node distances during one build. A nil cache is
	// replaced by a fresh one per Build, which is dropped with the build state.
	Cache *geometry.DistanceCache
}

func NewBuilder() *Builder {
	return &Builder{
		AttachRadius: DefaultAttachRadius,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// BuildGraph builds a graph with the default builder settings.
func BuildGraph(pois []campus.POI, paths []campus.Path) *Graph {
	g, _ := NewBuilder().Build(pois, paths)
	return g
}

// construction state, discarded once the graph is complete
type buildState struct {
	*Builder
	nodes []PathNode
	keys  map[string]NodeId
	pois  []NodeId
	arcs  int
	stats BuildStats
}

// Build constructs a new graph. Malformed records are skipped and logged.
// The result only depends on the input, building twice yields equal graphs.
func (b *Builder) Build(pois []campus.POI, paths []campus.Path) (*Graph, BuildStats) {
	settings := *b
	s := &buildState{
		Builder: &settings,
		keys:    make(map[string]NodeId),
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.Cache == nil {
		s.Cache = geometry.NewDistanceCache()
	}
	paths = campus.SplitPaths(paths)
	s.stats.POIs = len(pois)
	s.stats.Paths = len(paths)

	for _, poi := range pois {
		s.addPOI(poi)
	}

	lines := make([][]orb.Point, len(paths))
	for i, path := range paths {
		lines[i] = s.addPathNodes(path)
	}
	for i, path := range paths {
		s.connect(path, lines[i])
	}

	index := newSpatialIndex(s.nodes)
	s.attachPOIs(index)

	s.stats.Nodes = len(s.nodes)
	s.stats.Edges = s.arcs
	s.Logger.Info("graph built",
		slog.Int("nodes", s.stats.Nodes),
		slog.Int("edges", s.stats.Edges),
		slog.Int("skipped_pois", s.stats.SkippedPOIs),
		slog.Int("skipped_paths", s.stats.SkippedPaths),
		slog.Int("disconnected_pois", s.stats.DisconnectedPOIs),
	)

	g := &Graph{
		nodes:    s.nodes,
		keys:     s.keys,
		pois:     s.pois,
		index:    index,
		arcCount: s.arcs,
	}
	return g, s.stats
}

func (s *buildState) addPOI(poi campus.POI) {
	coords, ok := poi.Coordinate()
	if !ok {
		s.stats.SkippedPOIs++
		s.Logger.Warn("skipping POI without valid coordinates", slog.String("poi", poi.ID), slog.String("name", poi.Name))
		return
	}
	key := geometry.Key(coords)
	if existing, ok := s.keys[key]; ok {
		s.stats.DuplicatePOIs++
		s.Logger.Debug("POI shares its position with another POI",
			slog.String("poi", poi.ID), slog.String("kept", s.nodes[existing].POIID))
		return
	}

	s.keys[key] = len(s.nodes)
	s.pois = append(s.pois, len(s.nodes))
	s.nodes = append(s.nodes, PathNode{
		ID:             key,
		Coordinates:    coords,
		Accessible:     true,
		IsPOI:          true,
		POIID:          poi.ID,
		Name:           poi.Name,
		BuildingID:     poi.BuildingID,
		OpenSpaceID:    poi.OpenSpaceID,
		IsMainEntrance: poi.IsMainEntrance(),
	})
}

// addPathNodes creates a node for every coordinate of the path which is not
// claimed by an existing node yet, and returns the usable coordinates.
func (s *buildState) addPathNodes(path campus.Path) []orb.Point {
	points := path.Points()
	if len(points) == 0 {
		s.stats.SkippedPaths++
		s.Logger.Warn("skipping path without valid coordinates", slog.String("path", path.ID))
		return nil
	}
	for _, p := range points {
		key := geometry.Key(p)
		if _, ok := s.keys[key]; ok {
			continue
		}
		s.keys[key] = len(s.nodes)
		s.nodes = append(s.nodes, PathNode{
			ID:          key,
			Coordinates: p,
			Floor:       path.Floor,
			Accessible:  path.Accessible(),
		})
	}
	return points
}

// connect adds an edge pair for every consecutive coordinate pair of the path.
func (s *buildState) connect(path campus.Path, points []orb.Point) {
	for i := 0; i+1 < len(points); i++ {
		from := s.keys[geometry.Key(points[i])]
		to := s.keys[geometry.Key(points[i+1])]
		if from == to {
			continue
		}
		s.addEdgePair(from, to, path.ID, path.EdgeType(), path.Accessible())
	}
}

func (s *buildState) addEdgePair(from, to NodeId, pathID, edgeType string, accessible bool) {
	fromCoords, toCoords := s.nodes[from].Coordinates, s.nodes[to].Coordinates
	edge := PathEdge{
		To:          to,
		Distance:    s.Cache.Distance(fromCoords, toCoords),
		PathID:      pathID,
		Type:        edgeType,
		Accessible:  accessible,
		Coordinates: [2]orb.Point{fromCoords, toCoords},
	}
	s.nodes[from].Connections = append(s.nodes[from].Connections, edge)
	s.nodes[to].Connections = append(s.nodes[to].Connections, edge.Invert(from))
	s.arcs += 2
}

// attachPOIs links every POI node to the closest non-POI node within the
// attach radius. POIs without such a node stay disconnected.
func (s *buildState) attachPOIs(index *spatialIndex) {
	radius := s.AttachRadius
	if radius <= 0 {
		radius = DefaultAttachRadius
	}
	for _, poiID := range s.pois {
		poi := s.nodes[poiID]
		best := -1
		bestDistance := math.Inf(1)
		for _, candidate := range index.inBound(geometry.BoundAround(poi.Coordinates, radius)) {
			if s.nodes[candidate].IsPOI {
				continue
			}
			d := s.Cache.Distance(poi.Coordinates, s.nodes[candidate].Coordinates)
			if d <= radius && d < bestDistance {
				best = candidate
				bestDistance = d
			}
		}
		if best < 0 {
			s.stats.DisconnectedPOIs++
			s.Logger.Warn("POI has no path node within reach", slog.String("poi", poi.POIID), slog.Float64("radius", radius))
			continue
		}
		s.addEdgePair(poiID, best, "", campus.TypeConnector, true)
		s.stats.AttachedPOIs++
		s.Logger.Debug("attached POI", slog.String("poi", poi.POIID), slog.String("node", s.nodes[best].ID), slog.Float64("distance", bestDistance))
	}
}
