package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// orb/geo works with a slightly larger earth radius, so the bound gets padded
// to never miss a candidate that lies exactly on the search radius.
const boundPadding = 1.01

// BoundAround returns a bound which contains every point within meters of center.
func BoundAround(center orb.Point, meters float64) orb.Bound {
	return geo.NewBoundAroundPoint(center, meters*boundPadding)
}
