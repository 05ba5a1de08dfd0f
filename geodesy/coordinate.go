package geodesy

import (
	"fmt"
	"math"
)

// Coordinate is a geodetic position in decimal degrees. Accuracy fields
// are meters and are zero when the source didn't report them.
type Coordinate struct {
	Lat float64
	Lng float64

	HorizontalAccuracy float64
	VerticalAccuracy   float64
}

// Valid reports whether the coordinate is finite and inside the legal
// lat/lng ranges. Every conversion in this package gates its result
// through this before handing it back, so degenerate projection output
// never escapes as a usable coordinate.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng)
}
