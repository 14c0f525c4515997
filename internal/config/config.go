// Package config loads the runtime settings of the campus router.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/natevvv/campus-routing/pkg/graph"
	"github.com/natevvv/campus-routing/pkg/routing"
	"github.com/natevvv/campus-routing/pkg/slice"
)

// EnvPrefix is prepended to the names of all environment variables.
const EnvPrefix = "CAMPUS_"

type Config struct {
	DataFile         string        // CAMPUS_DATA
	Addr             string        // CAMPUS_ADDR
	LogLevel         string        // CAMPUS_LOG_LEVEL
	LogFormat        string        // CAMPUS_LOG_FORMAT
	AttachRadius     float64       // CAMPUS_ATTACH_RADIUS
	SelectorRadius   float64       // CAMPUS_SELECTOR_RADIUS
	MaxSettledNodes  int           // CAMPUS_MAX_SETTLED_NODES
	Navigator        string        // CAMPUS_NAVIGATOR
	OverpassEndpoint string        // CAMPUS_OVERPASS_ENDPOINT
	OverpassTimeout  time.Duration // CAMPUS_OVERPASS_TIMEOUT
}

func Default() Config {
	return Config{
		DataFile:        "campus.json",
		Addr:            ":8081",
		LogLevel:        "info",
		LogFormat:       "text",
		AttachRadius:    graph.DefaultAttachRadius,
		SelectorRadius:  routing.DefaultSelectorRadius,
		Navigator:       routing.DefaultNavigator,
		OverpassTimeout: 60 * time.Second,
	}
}

// Load reads the optional env files and then the environment on top of the defaults.
// Variables which are already set take precedence over the files.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := Default()
	var err error
	lookupString("DATA", &cfg.DataFile)
	lookupString("ADDR", &cfg.Addr)
	lookupString("LOG_LEVEL", &cfg.LogLevel)
	lookupString("LOG_FORMAT", &cfg.LogFormat)
	lookupString("NAVIGATOR", &cfg.Navigator)
	lookupString("OVERPASS_ENDPOINT", &cfg.OverpassEndpoint)
	err = errors.Join(
		lookupFloat("ATTACH_RADIUS", &cfg.AttachRadius),
		lookupFloat("SELECTOR_RADIUS", &cfg.SelectorRadius),
		lookupInt("MAX_SETTLED_NODES", &cfg.MaxSettledNodes),
		lookupDuration("OVERPASS_TIMEOUT", &cfg.OverpassTimeout),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings which can not be corrected silently.
func (c Config) Validate() error {
	var errs []error
	if c.AttachRadius <= 0 {
		errs = append(errs, fmt.Errorf("attach radius must be positive, got %v", c.AttachRadius))
	}
	if c.SelectorRadius <= 0 {
		errs = append(errs, fmt.Errorf("selector radius must be positive, got %v", c.SelectorRadius))
	}
	if c.MaxSettledNodes < 0 {
		errs = append(errs, fmt.Errorf("max settled nodes must not be negative, got %v", c.MaxSettledNodes))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if !slice.Contains(routing.Navigators(), c.Navigator) {
		errs = append(errs, fmt.Errorf("%w: %q", routing.ErrUnknownNavigator, c.Navigator))
	}
	return errors.Join(errs...)
}

// RouterOptions returns the router settings of the config.
func (c Config) RouterOptions() []routing.Option {
	return []routing.Option{
		routing.WithAttachRadius(c.AttachRadius),
		routing.WithSelectorRadius(c.SelectorRadius),
		routing.WithMaxSettledNodes(c.MaxSettledNodes),
		routing.WithNavigator(c.Navigator),
	}
}

func lookupString(name string, target *string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
		*target = v
	}
}

func lookupFloat(name string, target *float64) error {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*target = f
	return nil
}

func lookupInt(name string, target *int) error {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*target = i
	return nil
}

func lookupDuration(name string, target *time.Duration) error {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*target = d
	return nil
}
