// Package overpass fetches campus walkways from an Overpass API endpoint.
package overpass

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/natevvv/campus-routing/internal/walkways"
	"github.com/paulmach/orb"
	"github.com/serjvanilla/go-overpass"
)

const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// campusQuery selects walkable ways, building and open space outlines and
// entrance, door and amenity nodes inside a bounding box, plus all nodes of the ways.
const campusQuery = `[out:json][timeout:%d];
(
	way["highway"](%[2]s);
	way["building"](%[2]s);
	way["leisure"~"^(park|garden|pitch|playground)$"](%[2]s);
	way["place"="square"](%[2]s);
	node["entrance"](%[2]s);
	node["door"](%[2]s);
	node["amenity"](%[2]s);
);
out body;
>;
out body qt;`

// Importer queries an Overpass endpoint for the OSM elements of a campus.
type Importer struct {
	endpoint string
	bound    orb.Bound
	timeout  time.Duration
	nodes    int
	ways     int
}

func NewImporter(endpoint string, bound orb.Bound, timeout time.Duration) *Importer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Importer{
		endpoint: endpoint,
		bound:    bound,
		timeout:  timeout,
	}
}

// contextTransport attaches ctx to every request, the overpass client has no
// context support of its own.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

func (oi *Importer) client(ctx context.Context) overpass.Client {
	httpClient := &http.Client{
		Timeout:   oi.timeout,
		Transport: contextTransport{ctx: ctx, base: http.DefaultTransport},
	}
	return overpass.NewWithSettings(oi.endpoint, 1, httpClient)
}

// Query returns the Overpass QL query for the bounding box.
func (oi *Importer) Query() string {
	bbox := fmt.Sprintf("%f,%f,%f,%f", oi.bound.Min.Lat(), oi.bound.Min.Lon(), oi.bound.Max.Lat(), oi.bound.Max.Lon())
	return fmt.Sprintf(campusQuery, int(oi.timeout.Seconds()), bbox)
}

func (oi *Importer) Collect(ctx context.Context, c *walkways.Collector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client := oi.client(ctx)
	result, err := client.Query(oi.Query())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("overpass query canceled: %w", ctxErr)
		}
		return fmt.Errorf("overpass query failed: %w", err)
	}

	for id, node := range result.Nodes {
		// way members which were not part of the response carry no position
		if node.Lat == 0 && node.Lon == 0 {
			continue
		}
		c.AddNode(id, node.Lon, node.Lat, node.Tags)
		oi.nodes++
	}
	// ways in id order keep the dataset stable between runs
	wayIDs := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		wayIDs = append(wayIDs, id)
	}
	sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })

	for _, id := range wayIDs {
		way := result.Ways[id]
		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			nodeIDs = append(nodeIDs, node.ID)
		}
		c.AddWay(id, nodeIDs, way.Tags)
		oi.ways++
	}
	return nil
}

// Counts returns the number of received nodes and ways.
func (oi *Importer) Counts() (nodes, ways int) {
	return oi.nodes, oi.ways
}
