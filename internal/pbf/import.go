// Package pbf imports campus walkways from OpenStreetMap .osm.pbf extracts.
package pbf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/natevvv/campus-routing/internal/walkways"
	"github.com/qedus/osmpbf"
)

// Importer feeds the nodes and ways of a PBF file into a walkways.Collector.
type Importer struct {
	filename string
	nodes    int
	ways     int
}

func NewImporter(filename string) *Importer {
	return &Importer{filename: filename}
}

// Collect decodes the whole file. It stops early if ctx is canceled.
func (pi *Importer) Collect(ctx context.Context, c *walkways.Collector) error {
	file, err := os.Open(pi.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return pi.decode(ctx, file, c)
}

func (pi *Importer) decode(ctx context.Context, r io.Reader, c *walkways.Collector) error {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return fmt.Errorf("start pbf decoder: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", pi.filename, err)
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			c.AddNode(v.ID, v.Lon, v.Lat, v.Tags)
			pi.nodes++
		case *osmpbf.Way:
			c.AddWay(v.ID, v.NodeIDs, v.Tags)
			pi.ways++
		}
	}
}

// Counts returns the number of decoded nodes and ways.
func (pi *Importer) Counts() (nodes, ways int) {
	return pi.nodes, pi.ways
}
