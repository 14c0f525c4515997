package walkways

import (
	"io"
	"log/slog"
	"sort"

	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type Stats struct {
	Nodes        int
	Ways         int
	Paths        int
	MergedPaths  int
	POIs         int
	Buildings    int
	OpenSpaces   int
	MissingNodes int // way references to nodes which were never added
}

type node struct {
	point orb.Point
	tags  Tags
}

type way struct {
	id      int64
	nodeIDs []int64
	tags    Tags
}

// area is a building or open space outline
type area struct {
	id       string
	nodeIDs  []int64
	ring     orb.Ring
	building bool
}

// Collector gathers OSM nodes and ways of any source and turns them into a
// campus dataset. Nodes may be added before or after the ways referencing them.
type Collector struct {
	nodes  map[int64]node
	ways   []way
	areas  []way
	Logger *slog.Logger
}

func NewCollector() *Collector {
	return &Collector{
		nodes:  make(map[int64]node),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c *Collector) AddNode(id int64, lon, lat float64, tags Tags) {
	c.nodes[id] = node{point: geometry.MakePoint(lon, lat), tags: tags}
}

// AddWay keeps walkable ways and building or open space outlines, all other
// ways are ignored.
func (c *Collector) AddWay(id int64, nodeIDs []int64, tags Tags) {
	w := way{id: id, nodeIDs: nodeIDs, tags: tags}
	if IsWalkable(tags) {
		c.ways = append(c.ways, w)
	}
	if IsBuilding(tags) || IsOpenSpace(tags) {
		c.areas = append(c.areas, w)
	}
}

// Dataset resolves the collected elements. Consecutive paths with identical
// attributes are merged.
func (c *Collector) Dataset() (*campus.Dataset, Stats) {
	stats := Stats{Nodes: len(c.nodes), Ways: len(c.ways)}

	paths := make([]campus.Path, 0, len(c.ways))
	for _, w := range c.ways {
		points, missing := c.resolve(w.nodeIDs)
		stats.MissingNodes += missing
		if len(points) < 2 {
			c.Logger.Warn("skipping way with less than two known nodes", slog.Int64("way", w.id))
			continue
		}
		path := campus.NewPath(WayID(w.id), points...)
		path.Name = w.tags["name"]
		path.Type = PathType(w.tags)
		path.Floor = Floor(w.tags)
		path.IsAccessible = Accessible(w.tags)
		paths = append(paths, path)
	}

	merger := campus.NewMerger(paths)
	merger.Merge()
	stats.MergedPaths = merger.MergeCount()
	paths = merger.Paths()
	stats.Paths = len(paths)

	areas := c.resolveAreas(&stats)
	pois := c.collectPOIs(areas)
	stats.POIs = len(pois)

	c.Logger.Info("collected campus dataset",
		slog.Int("paths", stats.Paths),
		slog.Int("merged_paths", stats.MergedPaths),
		slog.Int("pois", stats.POIs),
		slog.Int("buildings", stats.Buildings),
		slog.Int("open_spaces", stats.OpenSpaces),
		slog.Int("missing_nodes", stats.MissingNodes),
	)
	return &campus.Dataset{POIs: pois, Paths: paths}, stats
}

func (c *Collector) resolve(nodeIDs []int64) ([]orb.Point, int) {
	points := make([]orb.Point, 0, len(nodeIDs))
	missing := 0
	for _, id := range nodeIDs {
		n, ok := c.nodes[id]
		if !ok {
			missing++
			continue
		}
		points = append(points, n.point)
	}
	return points, missing
}

func (c *Collector) resolveAreas(stats *Stats) []area {
	areas := make([]area, 0, len(c.areas))
	for _, w := range c.areas {
		points, missing := c.resolve(w.nodeIDs)
		stats.MissingNodes += missing
		a := area{id: WayID(w.id), nodeIDs: w.nodeIDs, building: IsBuilding(w.tags)}
		if len(points) >= 4 && points[0] == points[len(points)-1] {
			a.ring = orb.Ring(points)
		}
		if a.building {
			stats.Buildings++
		} else {
			stats.OpenSpaces++
		}
		areas = append(areas, a)
	}
	return areas
}

// collectPOIs creates the POIs ordered by node id. A POI belongs to a building
// or open space if it lies on its outline or inside it.
func (c *Collector) collectPOIs(areas []area) []campus.POI {
	ids := make([]int64, 0)
	for id, n := range c.nodes {
		if _, ok := POIName(n.tags); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	onOutline := make(map[int64][]int)
	for i, a := range areas {
		for _, id := range a.nodeIDs {
			onOutline[id] = append(onOutline[id], i)
		}
	}

	pois := make([]campus.POI, 0, len(ids))
	for _, id := range ids {
		n := c.nodes[id]
		name, _ := POIName(n.tags)
		poi := campus.NewPOI(NodeID(id), name, n.point.Lon(), n.point.Lat())

		for _, i := range onOutline[id] {
			assignArea(&poi, areas[i])
		}
		for _, a := range areas {
			if a.ring != nil && planar.RingContains(a.ring, n.point) {
				assignArea(&poi, a)
			}
		}
		pois = append(pois, poi)
	}
	return pois
}

// assignArea keeps the first building and open space found
func assignArea(poi *campus.POI, a area) {
	if a.building && poi.BuildingID == "" {
		poi.BuildingID = a.id
	}
	if !a.building && poi.OpenSpaceID == "" {
		poi.OpenSpaceID = a.id
	}
}
