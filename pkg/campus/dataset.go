package campus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrUnknownFormat is returned for dataset files which are neither a
// {"pois": [], "paths": []} document nor a GeoJSON FeatureCollection.
var ErrUnknownFormat = errors.New("unknown dataset format")

// Dataset is the raw input of the graph builder.
type Dataset struct {
	POIs  []POI  `json:"pois"`
	Paths []Path `json:"paths"`
}

// LoadDataset reads a dataset from r.
func LoadDataset(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParseDataset(data)
}

// LoadDatasetFile reads the dataset stored in filename.
func LoadDatasetFile(filename string) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()
	return LoadDataset(file)
}

// ParseDataset decodes a dataset document or a GeoJSON FeatureCollection.
func ParseDataset(data []byte) (*Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrUnknownFormat
	}

	var probe struct {
		Type  string          `json:"type"`
		POIs  json.RawMessage `json:"pois"`
		Paths json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	if probe.Type == "FeatureCollection" {
		fc, err := geojson.UnmarshalFeatureCollection(trimmed)
		if err != nil {
			return nil, fmt.Errorf("decode feature collection: %w", err)
		}
		return FromFeatureCollection(fc), nil
	}
	if probe.POIs == nil && probe.Paths == nil {
		return nil, ErrUnknownFormat
	}

	var d Dataset
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	d.Paths = SplitPaths(d.Paths)
	return &d, nil
}

// WriteDataset writes d as indented JSON.
func WriteDataset(w io.Writer, d *Dataset) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

// WriteDatasetFile writes d to filename.
func WriteDatasetFile(filename string, d *Dataset) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteDataset(file, d)
}

// FromFeatureCollection converts point features to POIs and line features to
// paths. Attributes are read from the feature properties.
func FromFeatureCollection(fc *geojson.FeatureCollection) *Dataset {
	d := &Dataset{}
	for i, f := range fc.Features {
		id := featureID(f, i)
		props := f.Properties
		switch g := f.Geometry.(type) {
		case orb.Point:
			d.POIs = append(d.POIs, POI{
				ID:          id,
				Name:        propString(props, "name"),
				BuildingID:  propString(props, "buildingId"),
				OpenSpaceID: propString(props, "openSpaceId"),
				Geometry:    g,
			})
		case orb.LineString:
			d.Paths = append(d.Paths, pathFromProperties(id, props, g))
		case orb.MultiLineString:
			d.Paths = append(d.Paths, pathFromProperties(id, props, g).Lines()...)
		}
	}
	return d
}

// FeatureCollection converts d to GeoJSON. Records without usable
// coordinates are left out.
func (d *Dataset) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, poi := range d.POIs {
		pt, ok := poi.Coordinate()
		if !ok {
			continue
		}
		f := geojson.NewFeature(pt)
		f.ID = poi.ID
		f.Properties["name"] = poi.Name
		if poi.BuildingID != "" {
			f.Properties["buildingId"] = poi.BuildingID
		}
		if poi.OpenSpaceID != "" {
			f.Properties["openSpaceId"] = poi.OpenSpaceID
		}
		fc.Append(f)
	}
	for _, path := range d.Paths {
		points := path.Points()
		if len(points) == 0 {
			continue
		}
		f := geojson.NewFeature(orb.LineString(points))
		f.ID = path.ID
		f.Properties["type"] = path.EdgeType()
		f.Properties["floor"] = path.Floor
		f.Properties["isAccessible"] = path.Accessible()
		if path.Name != "" {
			f.Properties["name"] = path.Name
		}
		fc.Append(f)
	}
	return fc
}

func pathFromProperties(id string, props geojson.Properties, line orb.Geometry) Path {
	p := Path{
		ID:       id,
		Name:     propString(props, "name"),
		Type:     propString(props, "type"),
		Geometry: line,
	}
	if floor, err := strconv.Atoi(propString(props, "floor")); err == nil {
		p.Floor = floor
	}
	if v, ok := props["isAccessible"]; ok {
		switch b := v.(type) {
		case bool:
			p.IsAccessible = &b
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				p.IsAccessible = &parsed
			}
		}
	}
	return p
}

func featureID(f *geojson.Feature, index int) string {
	if id := propString(f.Properties, "id"); id != "" {
		return id
	}
	switch id := f.ID.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return strconv.Itoa(index)
}

func propString(props geojson.Properties, key string) string {
	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
