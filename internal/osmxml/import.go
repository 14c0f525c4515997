// Package osmxml imports campus walkways from OpenStreetMap .osm XML files.
package osmxml

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/natevvv/campus-routing/internal/walkways"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
)

// Importer feeds the nodes and ways of an XML file into a walkways.Collector.
type Importer struct {
	filename string
	nodes    int
	ways     int
}

func NewImporter(filename string) *Importer {
	return &Importer{filename: filename}
}

func (xi *Importer) Collect(ctx context.Context, c *walkways.Collector) error {
	file, err := os.Open(xi.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := xi.decode(ctx, file, c); err != nil {
		return fmt.Errorf("decode %s: %w", xi.filename, err)
	}
	return nil
}

func (xi *Importer) decode(ctx context.Context, r io.Reader, c *walkways.Collector) error {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			c.AddNode(int64(o.ID), o.Lon, o.Lat, o.Tags.Map())
			xi.nodes++
		case *osm.Way:
			nodeIDs := make([]int64, 0, len(o.Nodes))
			for _, id := range o.Nodes.NodeIDs() {
				nodeIDs = append(nodeIDs, int64(id))
			}
			c.AddWay(int64(o.ID), nodeIDs, o.Tags.Map())
			xi.ways++
		}
	}
	return scanner.Err()
}

// Counts returns the number of decoded nodes and ways.
func (xi *Importer) Counts() (nodes, ways int) {
	return xi.nodes, xi.ways
}
