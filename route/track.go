package route

import "gridnav/geodesy"

// Track records the path actually traveled. Points are appended only
// when they move at least minSpacing meters from the last recorded
// point, which keeps a stationary receiver from flooding the path.
type Track struct {
	minSpacing float64
	points     []geodesy.Coordinate
}

// NewTrack returns an empty track with the given minimum point spacing
// in meters.
func NewTrack(minSpacing float64) *Track {
	return &Track{minSpacing: minSpacing}
}

// Add appends pos if it is valid and far enough from the last recorded
// point, reporting whether it was recorded.
func (t *Track) Add(pos geodesy.Coordinate) bool {
	if !pos.Valid() {
		return false
	}
	if n := len(t.points); n > 0 {
		if geodesy.DistanceMeters(t.points[n-1], pos) < t.minSpacing {
			return false
		}
	}
	t.points = append(t.points, pos)
	return true
}

// Points returns the recorded path in order.
func (t *Track) Points() []geodesy.Coordinate {
	return t.points
}

// Reset discards the recorded path.
func (t *Track) Reset() {
	t.points = nil
}
