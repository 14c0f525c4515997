// Package walkways classifies OSM elements into campus paths and POIs.
package walkways

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/natevvv/campus-routing/pkg/campus"
)

type Tags map[string]string

var walkableHighways = map[string]bool{
	"footway":       true,
	"path":          true,
	"pedestrian":    true,
	"steps":         true,
	"corridor":      true,
	"living_street": true,
	"track":         true,
	"cycleway":      true,
}

var openSpaceLeisure = map[string]bool{
	"park":       true,
	"garden":     true,
	"pitch":      true,
	"playground": true,
}

// IsWalkable reports whether a way with these tags can be used on foot.
func IsWalkable(tags Tags) bool {
	if tags["foot"] == "no" || tags["access"] == "private" {
		return false
	}
	highway := tags["highway"]
	if walkableHighways[highway] {
		return true
	}
	return highway == "service" && tags["foot"] == "yes"
}

func IsBuilding(tags Tags) bool {
	building, ok := tags["building"]
	return ok && building != "no"
}

func IsOpenSpace(tags Tags) bool {
	return openSpaceLeisure[tags["leisure"]] || tags["place"] == "square"
}

// PathType returns the campus path type of a walkable way.
func PathType(tags Tags) string {
	if tags["highway"] == "steps" {
		return campus.TypeStairs
	}
	return campus.TypePath
}

// Accessible returns nil if nothing is known about wheelchair access.
func Accessible(tags Tags) *bool {
	accessible := true
	switch {
	case tags["highway"] == "steps", tags["wheelchair"] == "no":
		accessible = false
	case tags["wheelchair"] == "yes", tags["wheelchair"] == "limited":
	default:
		return nil
	}
	return &accessible
}

// Floor parses the level tag. Only the first level of a list like "0;1" is used.
func Floor(tags Tags) int {
	level := tags["level"]
	if i := strings.IndexAny(level, ";,"); i >= 0 {
		level = level[:i]
	}
	floor, err := strconv.ParseFloat(strings.TrimSpace(level), 64)
	if err != nil {
		return 0
	}
	return int(floor)
}

// POIName returns the name of a node which should become a POI, or false
// if the node is no POI.
func POIName(tags Tags) (string, bool) {
	name := tags["name"]
	entrance, isEntrance := tags["entrance"]
	_, isDoor := tags["door"]
	_, isAmenity := tags["amenity"]

	if !isEntrance && !isDoor && !isAmenity {
		return "", false
	}
	if name != "" {
		return name, true
	}
	if !isEntrance || entrance == "no" {
		return "", false
	}
	return entranceName(entrance), true
}

func entranceName(value string) string {
	switch value {
	case "main":
		return "Main Entrance"
	case "yes", "":
		return "Entrance"
	}
	value = strings.ReplaceAll(value, "_", " ")
	return strings.ToUpper(value[:1]) + value[1:] + " entrance"
}

func NodeID(id int64) string { return fmt.Sprintf("node/%d", id) }
func WayID(id int64) string  { return fmt.Sprintf("way/%d", id) }
