package campus

import (
	"math"

	"github.com/natevvv/campus-routing/pkg/geometry"
	"github.com/paulmach/orb"
)

// FindNearestPOI returns the POI closest to coords. A non-empty buildingID or
// openSpaceID restricts the candidates to that building or open space.
// POIs without a valid coordinate are never returned.
func FindNearestPOI(pois []POI, coords orb.Point, buildingID, openSpaceID string) (POI, bool) {
	best := -1
	bestDistance := math.Inf(1)
	for i, poi := range pois {
		if buildingID != "" && poi.BuildingID != buildingID {
			continue
		}
		if openSpaceID != "" && poi.OpenSpaceID != openSpaceID {
			continue
		}
		pt, ok := poi.Coordinate()
		if !ok {
			continue
		}
		if d := geometry.Haversine(coords, pt); d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	if best < 0 {
		return POI{}, false
	}
	return pois[best], true
}

// FindPOIsForBuilding returns all POIs associated with buildingID.
func FindPOIsForBuilding(pois []POI, buildingID string) []POI {
	if buildingID == "" {
		return nil
	}
	var result []POI
	for _, poi := range pois {
		if poi.BuildingID == buildingID {
			result = append(result, poi)
		}
	}
	return result
}

// FindPOIsForOpenSpace returns all POIs associated with openSpaceID.
func FindPOIsForOpenSpace(pois []POI, openSpaceID string) []POI {
	if openSpaceID == "" {
		return nil
	}
	var result []POI
	for _, poi := range pois {
		if poi.OpenSpaceID == openSpaceID {
			result = append(result, poi)
		}
	}
	return result
}
