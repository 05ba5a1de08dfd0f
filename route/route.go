package route

import "gridnav/geodesy"

// Waypoint is one named stop along a route.
type Waypoint struct {
	Name  string
	Coord geodesy.Coordinate
}

// Route is an ordered sequence of waypoints; the order is the travel
// order. A single-waypoint route is how a direct target entry is
// navigated.
type Route struct {
	Name      string
	Waypoints []Waypoint
}

// Direct builds a one-leg route to a target coordinate.
func Direct(name string, target geodesy.Coordinate) Route {
	return Route{
		Name:      name,
		Waypoints: []Waypoint{{Name: name, Coord: target}},
	}
}

// Coordinates returns the waypoint coordinates in travel order.
func (r Route) Coordinates() []geodesy.Coordinate {
	coords := make([]geodesy.Coordinate, len(r.Waypoints))
	for i, wp := range r.Waypoints {
		coords[i] = wp.Coord
	}
	return coords
}
