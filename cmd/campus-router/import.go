package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/natevvv/campus-routing/internal/osmxml"
	"github.com/natevvv/campus-routing/internal/overpass"
	"github.com/natevvv/campus-routing/internal/pbf"
	"github.com/natevvv/campus-routing/internal/walkways"
	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
)

var (
	importOut     string
	importGeoJSON bool
	importBBox    string
)

// source is an OSM importer feeding a collector
type source interface {
	Collect(ctx context.Context, c *walkways.Collector) error
	Counts() (nodes, ways int)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert OpenStreetMap data into a campus dataset",
}

var importPbfCmd = &cobra.Command{
	Use:   "pbf <file.osm.pbf>",
	Short: "Import an OSM PBF extract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), pbf.NewImporter(args[0]))
	},
}

var importXMLCmd = &cobra.Command{
	Use:   "osm <file.osm>",
	Short: "Import an OSM XML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context(), osmxml.NewImporter(args[0]))
	},
}

var importOverpassCmd = &cobra.Command{
	Use:   "overpass",
	Short: "Fetch the campus from an Overpass API endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		bound, err := parseBound(importBBox)
		if err != nil {
			return err
		}
		return runImport(cmd.Context(), overpass.NewImporter(cfg.OverpassEndpoint, bound, cfg.OverpassTimeout))
	},
}

func runImport(ctx context.Context, src source) error {
	start := time.Now()
	c := walkways.NewCollector()
	c.Logger = logger
	if err := src.Collect(ctx, c); err != nil {
		return err
	}
	nodes, ways := src.Counts()
	logger.Info("read osm data", slog.Int("nodes", nodes), slog.Int("ways", ways), slog.Duration("took", time.Since(start)))

	start = time.Now()
	dataset, stats := c.Dataset()
	logger.Info("collected campus",
		slog.Int("paths", stats.Paths),
		slog.Int("mergedPaths", stats.MergedPaths),
		slog.Int("pois", stats.POIs),
		slog.Int("buildings", stats.Buildings),
		slog.Int("openSpaces", stats.OpenSpaces),
		slog.Int("missingNodes", stats.MissingNodes),
		slog.Duration("took", time.Since(start)))

	return writeDataset(dataset)
}

func writeDataset(dataset *campus.Dataset) error {
	out := os.Stdout
	if importOut != "" && importOut != "-" {
		file, err := os.Create(importOut)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	if importGeoJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(dataset.FeatureCollection())
	}
	return campus.WriteDataset(out, dataset)
}

// parseBound parses "minLon,minLat,maxLon,maxLat"
func parseBound(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("invalid bounding box %q, expected minLon,minLat,maxLon,maxLat", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("invalid bounding box %q: %w", s, err)
		}
		v[i] = f
	}
	bound := orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}
	if bound.Min.Lon() >= bound.Max.Lon() || bound.Min.Lat() >= bound.Max.Lat() {
		return orb.Bound{}, fmt.Errorf("empty bounding box %q", s)
	}
	return bound, nil
}

func init() {
	pf := importCmd.PersistentFlags()
	pf.StringVarP(&importOut, "out", "o", "", "Output file (default stdout)")
	pf.BoolVar(&importGeoJSON, "geojson", false, "Write a GeoJSON FeatureCollection instead of the dataset document")

	f := importOverpassCmd.Flags()
	f.StringVar(&importBBox, "bbox", "", "Bounding box as minLon,minLat,maxLon,maxLat")
	f.StringVar(&flags.OverpassEndpoint, "overpass-endpoint", flags.OverpassEndpoint, "Overpass API endpoint")
	f.DurationVar(&flags.OverpassTimeout, "overpass-timeout", flags.OverpassTimeout, "Overpass request timeout")
	importOverpassCmd.MarkFlagRequired("bbox")

	importCmd.AddCommand(importPbfCmd, importXMLCmd, importOverpassCmd)
	rootCmd.AddCommand(importCmd)
}
