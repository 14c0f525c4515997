// Package campus models the POI and walkway records consumed by the routing
// engine and provides simple lookups over them.
package campus

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

// Edge types with a special meaning for the search.
const (
	TypePath      = "path"
	TypeStairs    = "stairs"
	TypeConnector = "connector"
)

// POI is a point of interest. Its coordinate can be given as point geometry,
// as an explicit [lon, lat] pair or as separate longitude/latitude fields.
type POI struct {
	ID          string
	Name        string
	BuildingID  string
	OpenSpaceID string
	Geometry    orb.Geometry
	Coordinates []float64
	Longitude   *float64
	Latitude    *float64
}

// NewPOI creates a POI located at (lon, lat).
func NewPOI(id, name string, lon, lat float64) POI {
	return POI{ID: id, Name: name, Coordinates: []float64{lon, lat}}
}

// Coordinate resolves the location of the POI.
// The point geometry has precedence over the coordinate pair, which has
// precedence over the longitude/latitude fields.
func (p POI) Coordinate() (orb.Point, bool) {
	if pt, ok := p.Geometry.(orb.Point); ok && geometry.Valid(pt) {
		return pt, true
	}
	if len(p.Coordinates) >= 2 {
		pt := geometry.MakePoint(p.Coordinates[0], p.Coordinates[1])
		if geometry.Valid(pt) {
			return pt, true
		}
	}
	if p.Longitude != nil && p.Latitude != nil {
		pt := geometry.MakePoint(*p.Longitude, *p.Latitude)
		if geometry.Valid(pt) {
			return pt, true
		}
	}
	return orb.Point{}, false
}

// IsMainEntrance reports whether the POI name marks a main entrance.
func (p POI) IsMainEntrance() bool {
	return IsMainEntranceName(p.Name)
}

type poiJSON struct {
	ID          json.RawMessage `json:"id"`
	Name        json.RawMessage `json:"name"`
	BuildingID  json.RawMessage `json:"buildingId"`
	OpenSpaceID json.RawMessage `json:"openSpaceId"`
	Geometry    json.RawMessage `json:"geometry"`
	Coordinates json.RawMessage `json:"coordinates"`
	Longitude   json.RawMessage `json:"longitude"`
	Latitude    json.RawMessage `json:"latitude"`
}

func (p *POI) UnmarshalJSON(data []byte) error {
	var raw poiJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = POI{}
	p.ID, _ = looseString(raw.ID)
	p.Name, _ = looseString(raw.Name)
	p.BuildingID, _ = looseString(raw.BuildingID)
	p.OpenSpaceID, _ = looseString(raw.OpenSpaceID)
	p.Geometry = looseGeometry(raw.Geometry)
	if pair, ok := looseFloats(raw.Coordinates); ok {
		p.Coordinates = pair
	}
	if lon, ok := looseFloat(raw.Longitude); ok {
		p.Longitude = &lon
	}
	if lat, ok := looseFloat(raw.Latitude); ok {
		p.Latitude = &lat
	}
	return nil
}

func (p POI) MarshalJSON() ([]byte, error) {
	out := struct {
		ID          string    `json:"id"`
		Name        string    `json:"name,omitempty"`
		BuildingID  string    `json:"buildingId,omitempty"`
		OpenSpaceID string    `json:"openSpaceId,omitempty"`
		Coordinates []float64 `json:"coordinates,omitempty"`
	}{ID: p.ID, Name: p.Name, BuildingID: p.BuildingID, OpenSpaceID: p.OpenSpaceID}
	if pt, ok := p.Coordinate(); ok {
		out.Coordinates = []float64{pt.Lon(), pt.Lat()}
	}
	return json.Marshal(out)
}

// Path is a walkway segment given as an ordered list of coordinates.
type Path struct {
	ID           string
	Name         string
	Type         string
	Floor        int
	IsAccessible *bool
	Geometry     orb.Geometry
	Coordinates  [][]float64
}

// NewPath creates a path through the given points.
func NewPath(id string, points ...orb.Point) Path {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lon(), p.Lat()})
	}
	return Path{ID: id, Coordinates: coords}
}

// Points returns the usable coordinates of the path in order.
// Line geometry has precedence over the coordinate array; invalid points are dropped.
// Of a multi-line geometry only the first line is returned, use Lines to split it.
func (p Path) Points() []orb.Point {
	var candidates []orb.Point
	switch g := p.Geometry.(type) {
	case orb.LineString:
		candidates = g
	case orb.MultiLineString:
		if len(g) > 0 {
			candidates = g[0]
		}
	case orb.Point:
		candidates = []orb.Point{g}
	}
	if len(candidates) == 0 {
		for _, pair := range p.Coordinates {
			if len(pair) < 2 {
				continue
			}
			candidates = append(candidates, geometry.MakePoint(pair[0], pair[1]))
		}
	}

	points := make([]orb.Point, 0, len(candidates))
	for _, c := range candidates {
		if geometry.Valid(c) {
			points = append(points, c)
		}
	}
	return points
}

// Lines splits a path with multi-line geometry into one path per line, with
// ids "<id>#<n>". Any other path is returned as it is.
func (p Path) Lines() []Path {
	multi, ok := p.Geometry.(orb.MultiLineString)
	if !ok || len(multi) < 2 {
		return []Path{p}
	}
	lines := make([]Path, 0, len(multi))
	for i, line := range multi {
		part := p
		part.ID = fmt.Sprintf("%s#%d", p.ID, i)
		part.Geometry = line
		lines = append(lines, part)
	}
	return lines
}

// SplitPaths applies Lines to every path.
func SplitPaths(paths []Path) []Path {
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.Lines()...)
	}
	return out
}

// Accessible reports whether the path can be used by wheelchairs.
// Only an explicit false marks a path inaccessible.
func (p Path) Accessible() bool {
	return p.IsAccessible == nil || *p.IsAccessible
}

// EdgeType returns the normalized type of the path, TypePath if unset.
func (p Path) EdgeType() string {
	t := strings.ToLower(strings.TrimSpace(p.Type))
	if t == "" {
		return TypePath
	}
	return t
}

type pathJSON struct {
	ID           json.RawMessage `json:"id"`
	Name         json.RawMessage `json:"name"`
	Type         json.RawMessage `json:"type"`
	Floor        json.RawMessage `json:"floor"`
	IsAccessible json.RawMessage `json:"isAccessible"`
	Geometry     json.RawMessage `json:"geometry"`
	Coordinates  json.RawMessage `json:"coordinates"`
}

func (p *Path) UnmarshalJSON(data []byte) error {
	var raw pathJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Path{}
	p.ID, _ = looseString(raw.ID)
	p.Name, _ = looseString(raw.Name)
	p.Type, _ = looseString(raw.Type)
	p.Floor, _ = looseInt(raw.Floor)
	p.IsAccessible = looseBool(raw.IsAccessible)
	p.Geometry = looseGeometry(raw.Geometry)
	p.Coordinates = looseLine(raw.Coordinates)
	return nil
}

func (p Path) MarshalJSON() ([]byte, error) {
	out := struct {
		ID           string      `json:"id"`
		Name         string      `json:"name,omitempty"`
		Type         string      `json:"type,omitempty"`
		Floor        int         `json:"floor,omitempty"`
		IsAccessible *bool       `json:"isAccessible,omitempty"`
		Coordinates  [][]float64 `json:"coordinates"`
	}{ID: p.ID, Name: p.Name, Type: p.Type, Floor: p.Floor, IsAccessible: p.IsAccessible}
	points := p.Points()
	out.Coordinates = make([][]float64, 0, len(points))
	for _, pt := range points {
		out.Coordinates = append(out.Coordinates, []float64{pt.Lon(), pt.Lat()})
	}
	return json.Marshal(out)
}
