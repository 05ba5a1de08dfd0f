package geodesy

import (
	"fmt"
	"math"
	"strconv"
)

// GridRef is the human-facing grid reference: zone number plus easting
// and northing in whole meters, zero-padded to seven digits. It is
// always derived from a coordinate on demand, never stored as truth.
type GridRef struct {
	Zone     int
	Easting  string
	Northing string
}

func (g GridRef) String() string {
	return fmt.Sprintf("%d %s %s", g.Zone, g.Easting, g.Northing)
}

// FormatGridRef converts a WGS84 coordinate to a grid reference.
// Returns ok=false for invalid input or anything that lands at or past
// the poles on the local datum.
func FormatGridRef(global Coordinate) (GridRef, bool) {
	if !global.Valid() {
		return GridRef{}, false
	}

	local := ToLocal(global)
	if !local.Valid() || math.Abs(local.Lat) >= 90 {
		return GridRef{}, false
	}

	zone, easting, northing := Project(local)
	if math.IsNaN(easting) || math.IsNaN(northing) || northing < 0 {
		return GridRef{}, false
	}

	return GridRef{
		Zone:     zone,
		Easting:  fmt.Sprintf("%07d", int64(math.Round(easting))),
		Northing: fmt.Sprintf("%07d", int64(math.Round(northing))),
	}, true
}

// ParseGridRef converts user-entered zone/easting/northing text back to
// a WGS84 coordinate. Non-numeric fields, a zone outside 1..60, or a
// triple that unprojects off the ellipsoid all return ok=false.
func ParseGridRef(zoneText, eastingText, northingText string) (Coordinate, bool) {
	zone, err := strconv.Atoi(zoneText)
	if err != nil || zone < 1 || zone > 60 {
		return Coordinate{}, false
	}
	easting, err := strconv.ParseInt(eastingText, 10, 64)
	if err != nil || easting < 0 {
		return Coordinate{}, false
	}
	northing, err := strconv.ParseInt(northingText, 10, 64)
	if err != nil || northing < 0 {
		return Coordinate{}, false
	}

	local := Unproject(zone, float64(easting), float64(northing))
	if !local.Valid() || math.Abs(local.Lat) >= 90 {
		return Coordinate{}, false
	}

	global := ToGlobal(local)
	if !global.Valid() {
		return Coordinate{}, false
	}
	return global, true
}
