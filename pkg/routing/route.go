package routing

import (
	"fmt"
	"math"

	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// WalkingSpeed in meters per minute
const WalkingSpeed = 80.0

// Instruction types
const (
	StepStart       = "start"
	StepContinue    = "continue"
	StepDestination = "destination"
)

// Endpoint is the start or the end of a route.
type Endpoint struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Coordinates orb.Point `json:"coordinates"`
}

type RouteInstruction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Distance    float64   `json:"distance"` // meters of the segment leading to Coordinate
	Duration    float64   `json:"duration"` // minutes of the segment leading to Coordinate
	Coordinate  orb.Point `json:"coordinate"`
}

// Route is the result of a route request.
type Route struct {
	From         Endpoint           `json:"from"`
	To           Endpoint           `json:"to"`
	Distance     float64            `json:"distance"` // meters
	Duration     float64            `json:"duration"` // minutes, rounded
	Coordinates  []orb.Point        `json:"coordinates"`
	Instructions []RouteInstruction `json:"instructions"`
	Direct       bool               `json:"direct"` // straight line, no graph connection was found
}

// assembleRoute builds a route along coordinates, which starts and ends at the
// query points.
func assembleRoute(from, to Endpoint, coordinates []orb.Point, direct bool) Route {
	route := Route{
		From:         from,
		To:           to,
		Coordinates:  coordinates,
		Instructions: make([]RouteInstruction, 0, len(coordinates)),
		Direct:       direct,
	}

	last := len(coordinates) - 1
	for i, c := range coordinates {
		instruction := RouteInstruction{
			ID:         fmt.Sprintf("step-%d", i),
			Coordinate: c,
		}
		if i > 0 {
			instruction.Distance = geometry.Haversine(coordinates[i-1], c)
			instruction.Duration = instruction.Distance / WalkingSpeed
			route.Distance += instruction.Distance
		}
		switch {
		case i == 0:
			instruction.Type = StepStart
			instruction.Description = "Start at " + displayName(from.Name, "your location")
		case i == last:
			instruction.Type = StepDestination
			instruction.Description = "Arrive at " + displayName(to.Name, "your destination")
		default:
			instruction.Type = StepContinue
			instruction.Description = fmt.Sprintf("Continue for %.0f m", instruction.Distance)
		}
		route.Instructions = append(route.Instructions, instruction)
	}
	route.Duration = math.Round(route.Distance / WalkingSpeed)
	return route
}

// directRoute is the straight line between both endpoints.
func directRoute(from, to Endpoint) Route {
	return assembleRoute(from, to, []orb.Point{from.Coordinates, to.Coordinates}, true)
}

// pathCoordinates returns the polyline from the query start over the nodes to the query goal.
func pathCoordinates(from orb.Point, nodes []orb.Point, to orb.Point) []orb.Point {
	coordinates := make([]orb.Point, 0, len(nodes)+2)
	coordinates = append(coordinates, from)
	coordinates = append(coordinates, nodes...)
	if len(nodes) == 0 || !geometry.SameKey(nodes[len(nodes)-1], to) {
		coordinates = append(coordinates, to)
	}
	return coordinates
}

func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// GeoJSON returns the route as a LineString feature.
func (r Route) GeoJSON() *geojson.Feature {
	f := geojson.NewFeature(orb.LineString(r.Coordinates))
	f.Properties["from"] = r.From
	f.Properties["to"] = r.To
	f.Properties["distance"] = r.Distance
	f.Properties["duration"] = r.Duration
	f.Properties["direct"] = r.Direct
	f.Properties["instructions"] = r.Instructions
	return f
}
