package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/natevvv/campus-routing/internal/config"
	"github.com/natevvv/campus-routing/internal/logging"
	"github.com/natevvv/campus-routing/pkg/campus"
	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/natevvv/campus-routing/pkg/routing"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
)

var (
	envFile string
	flags   = config.Default()

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "campus-router",
	Short:         "Campus walkway routing",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "Optional file with CAMPUS_* variables")
	pf.StringVar(&flags.DataFile, "data", flags.DataFile, "Campus dataset (JSON or GeoJSON FeatureCollection)")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format (text, json)")
	pf.Float64Var(&flags.AttachRadius, "attach-radius", flags.AttachRadius, "Max distance in meters between a POI and its path node")
	pf.Float64Var(&flags.SelectorRadius, "selector-radius", flags.SelectorRadius, "Radius in meters in which POIs are scored as route endpoints")
	pf.IntVar(&flags.MaxSettledNodes, "max-settled-nodes", flags.MaxSettledNodes, "Abort searches after this many settled nodes (0: no limit)")
	pf.StringVar(&flags.Navigator, "navigator", flags.Navigator, "Search algorithm ("+strings.Join(routing.Navigators(), ", ")+")")
}

// applyFlags overrides the loaded config with the flags given on the command line
func applyFlags(cmd *cobra.Command) {
	changed := cmd.Flags().Changed
	if changed("data") {
		cfg.DataFile = flags.DataFile
	}
	if changed("addr") {
		cfg.Addr = flags.Addr
	}
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if changed("log-format") {
		cfg.LogFormat = flags.LogFormat
	}
	if changed("attach-radius") {
		cfg.AttachRadius = flags.AttachRadius
	}
	if changed("selector-radius") {
		cfg.SelectorRadius = flags.SelectorRadius
	}
	if changed("max-settled-nodes") {
		cfg.MaxSettledNodes = flags.MaxSettledNodes
	}
	if changed("navigator") {
		cfg.Navigator = flags.Navigator
	}
	if changed("overpass-endpoint") {
		cfg.OverpassEndpoint = flags.OverpassEndpoint
	}
	if changed("overpass-timeout") {
		cfg.OverpassTimeout = flags.OverpassTimeout
	}
}

// loadRouter builds a router on the configured dataset
func loadRouter(options ...routing.Option) (*routing.Router, error) {
	dataset, err := campus.LoadDatasetFile(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	options = append(cfg.RouterOptions(), options...)
	options = append(options, routing.WithLogger(logger))
	router := routing.NewRouter(options...)
	stats := router.BuildGraph(dataset.POIs, dataset.Paths)
	logger.Info("loaded dataset", slog.String("file", cfg.DataFile), slog.Int("nodes", stats.Nodes), slog.Int("edges", stats.Edges))
	return router, nil
}

// parsePoint parses "lon,lat"
func parsePoint(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("invalid coordinate %q, expected lon,lat", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	p := geometry.MakePoint(lon, lat)
	if !geometry.Valid(p) {
		return orb.Point{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return p, nil
}
