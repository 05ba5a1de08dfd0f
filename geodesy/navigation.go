package geodesy

import "math"

// earthRadius is the mean Earth radius in meters used by the spherical
// distance and bearing formulas.
const earthRadius = 6371000.0

// DistanceMeters returns the great-circle distance between two points
// using the haversine formula.
func DistanceMeters(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// InitialBearing returns the forward azimuth from a to b in degrees,
// normalized to [0,360). Coincident points yield 0.
func InitialBearing(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	if x == 0 && y == 0 {
		return 0
	}
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// RemainingRouteDistance returns the distance from current to the
// waypoint at legIndex plus the lengths of all legs after it.
func RemainingRouteDistance(waypoints []Coordinate, legIndex int, current Coordinate) float64 {
	if legIndex < 0 || legIndex >= len(waypoints) {
		return 0
	}
	total := DistanceMeters(current, waypoints[legIndex])
	for i := legIndex; i < len(waypoints)-1; i++ {
		total += DistanceMeters(waypoints[i], waypoints[i+1])
	}
	return total
}
