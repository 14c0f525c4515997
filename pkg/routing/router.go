// Package routing resolves route requests against the active campus graph.
package routing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/natevvv/campus-routing/pkg/graph"
	"github.com/natevvv/campus-routing/pkg/graph/path"
	"github.com/paulmach/orb"
)

var ErrUnknownNavigator = errors.New("unknown navigator")

// navigators which can be selected by name
var navigators = map[string]func(g *graph.Graph) *path.AStar{
	"astar":    path.NewAStar,
	"dijkstra": path.NewDijkstra,
}

// DefaultNavigator is used unless another one is set.
const DefaultNavigator = "astar"

// Navigators returns the names of the available navigators.
func Navigators() []string {
	names := make([]string, 0, len(navigators))
	for name := range navigators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RouteOptions restrict the edges a route may use.
type RouteOptions struct {
	Accessible  bool `json:"accessible"`
	AvoidStairs bool `json:"avoidStairs"`
}

func (o RouteOptions) searchOptions() path.SearchOptions {
	return path.MakeSearchOptions().SetAccessibleOnly(o.Accessible).SetAvoidStairs(o.AvoidStairs)
}

// snapshot is an immutable graph together with the records it was built from.
type snapshot struct {
	graph *graph.Graph
	pois  []campus.POI
	stats graph.BuildStats
}

// Router answers route requests. It is safe for concurrent use; BuildGraph
// replaces the active graph without affecting requests in flight.
type Router struct {
	current   atomic.Pointer[snapshot]
	navigator atomic.Pointer[string]

	logger          *slog.Logger
	metrics         *Metrics
	attachRadius    float64
	selectorRadius  float64
	maxSettledNodes int
}

type Option func(*Router)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(r *Router) { r.metrics = metrics }
}

// WithAttachRadius sets the radius in meters in which POIs get attached to path nodes.
func WithAttachRadius(meters float64) Option {
	return func(r *Router) { r.attachRadius = meters }
}

// WithSelectorRadius sets the radius in meters in which POIs are scored as route endpoints.
func WithSelectorRadius(meters float64) Option {
	return func(r *Router) { r.selectorRadius = meters }
}

// WithMaxSettledNodes limits the work of a single search. A value <= 0 means no limit.
func WithMaxSettledNodes(n int) Option {
	return func(r *Router) { r.maxSettledNodes = n }
}

// WithNavigator selects the search algorithm. Unknown names are ignored;
// use SetNavigator to get an error.
func WithNavigator(name string) Option {
	return func(r *Router) { _ = r.SetNavigator(name) }
}

// NewRouter creates a router with an empty graph.
func NewRouter(options ...Option) *Router {
	r := &Router{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		attachRadius:   graph.DefaultAttachRadius,
		selectorRadius: DefaultSelectorRadius,
	}
	name := DefaultNavigator
	r.navigator.Store(&name)
	r.current.Store(&snapshot{graph: graph.BuildGraph(nil, nil)})
	for _, option := range options {
		option(r)
	}
	return r
}

// SetNavigator switches the search algorithm for subsequent requests.
func (r *Router) SetNavigator(name string) error {
	if _, ok := navigators[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNavigator, name)
	}
	r.navigator.Store(&name)
	return nil
}

func (r *Router) Navigator() string {
	return *r.navigator.Load()
}

// BuildGraph builds a new graph from the records and makes it the active one.
func (r *Router) BuildGraph(pois []campus.POI, paths []campus.Path) graph.BuildStats {
	builder := graph.Builder{AttachRadius: r.attachRadius, Logger: r.logger}
	g, stats := builder.Build(pois, paths)

	kept := make([]campus.POI, len(pois))
	copy(kept, pois)
	r.current.Store(&snapshot{graph: g, pois: kept, stats: stats})
	r.metrics.observeBuild(stats)
	return stats
}

// Graph returns the active graph. It must not be modified.
func (r *Router) Graph() *graph.Graph {
	return r.current.Load().graph
}

// Stats returns the statistics of the build which created the active graph.
func (r *Router) Stats() graph.BuildStats {
	return r.current.Load().stats
}

// POIs returns the records of the active graph.
func (r *Router) POIs() []campus.POI {
	return r.current.Load().pois
}

// FindRoute computes the route between from and to. It always returns a route;
// if no graph connection exists the route is the straight line between both points.
func (r *Router) FindRoute(from, to orb.Point, fromName, toName string, options RouteOptions) Route {
	start := time.Now()
	snap := r.current.Load()
	sel := selector{g: snap.graph, radius: r.selectorRadius}

	origin, originOk := sel.selectNode(from, &to)
	destination, destinationOk := sel.selectNode(to, &from)
	fromEndpoint := r.endpoint(snap.graph, from, fromName, origin, originOk)
	toEndpoint := r.endpoint(snap.graph, to, toName, destination, destinationOk)

	var route Route
	if !originOk || !destinationOk {
		r.logger.Debug("no graph node for route endpoint", "from", fromEndpoint.ID, "to", toEndpoint.ID)
		route = directRoute(fromEndpoint, toEndpoint)
	} else {
		route = r.search(snap.graph, origin, destination, fromEndpoint, toEndpoint, options)
	}

	elapsed := time.Since(start)
	r.metrics.observeRoute(route.Direct, elapsed)
	r.logger.Debug("route computed",
		slog.String("from", fromEndpoint.ID),
		slog.String("to", toEndpoint.ID),
		slog.Float64("distance", route.Distance),
		slog.Bool("direct", route.Direct),
		slog.Duration("elapsed", elapsed))
	return route
}

func (r *Router) search(g *graph.Graph, origin, destination graph.NodeId, from, to Endpoint, options RouteOptions) Route {
	navigator := navigators[r.Navigator()](g)
	navigator.SetSearchOptions(options.searchOptions())
	navigator.SetMaxNumSettledNodes(r.maxSettledNodes)
	navigator.SetLogger(r.logger)

	if cost := navigator.ComputeShortestPath(origin, destination); cost < 0 {
		r.logger.Debug("no path between route endpoints", "origin", origin, "destination", destination)
		return directRoute(from, to)
	}

	nodes := navigator.GetPath(origin, destination)
	points := make([]orb.Point, 0, len(nodes))
	for _, id := range nodes {
		points = append(points, g.GetNode(id).Coordinates)
	}
	return assembleRoute(from, to, pathCoordinates(from.Coordinates, points, to.Coordinates), false)
}

// endpoint describes a query point. It takes the id, and the name if none is
// given, from the POI the point was resolved to.
func (r *Router) endpoint(g *graph.Graph, query orb.Point, name string, id graph.NodeId, resolved bool) Endpoint {
	e := Endpoint{ID: geometry.Key(query), Name: name, Coordinates: query}
	if !resolved {
		return e
	}
	if node := g.GetNode(id); node.IsPOI {
		e.ID = node.POIID
		if e.Name == "" {
			e.Name = node.Name
		}
	}
	return e
}

// FindNearestPOI returns the POI closest to coords, optionally restricted to a
// building or an open space.
func (r *Router) FindNearestPOI(coords orb.Point, buildingID, openSpaceID string) (campus.POI, bool) {
	return campus.FindNearestPOI(r.POIs(), coords, buildingID, openSpaceID)
}

func (r *Router) FindPOIsForBuilding(buildingID string) []campus.POI {
	return campus.FindPOIsForBuilding(r.POIs(), buildingID)
}

func (r *Router) FindPOIsForOpenSpace(openSpaceID string) []campus.POI {
	return campus.FindPOIsForOpenSpace(r.POIs(), openSpaceID)
}
