package route

import "gridnav/geodesy"

// arrivalThreshold is how close, in meters, a position must be to the
// current waypoint before the machine advances to the next leg.
const arrivalThreshold = 30.0

// Event describes what a position update did to the active route.
type Event int

const (
	EventNone      Event = iota // no active route, or nothing changed
	EventAdvanced               // reached a waypoint, more legs remain
	EventCompleted              // reached the final waypoint
)

// Machine tracks the active route and the index of the leg being
// flown. It is the only owner of the leg index: the index moves forward
// on the arrival rule and resets only when a new route starts.
type Machine struct {
	active   bool
	route    Route
	legIndex int
}

// NewMachine returns a machine with no active route.
func NewMachine() *Machine {
	return &Machine{}
}

// Start activates a route at its first leg. An empty route is ignored.
func (m *Machine) Start(r Route) {
	if len(r.Waypoints) == 0 {
		return
	}
	m.active = true
	m.route = r
	m.legIndex = 0
}

// Cancel drops the active route unconditionally.
func (m *Machine) Cancel() {
	m.active = false
	m.route = Route{}
	m.legIndex = 0
}

// Update feeds a position fix through the advancement rule. Invalid
// fixes are ignored. Completing the last leg deactivates the machine.
func (m *Machine) Update(pos geodesy.Coordinate) Event {
	if !m.active || !pos.Valid() {
		return EventNone
	}

	target := m.route.Waypoints[m.legIndex].Coord
	if geodesy.DistanceMeters(pos, target) >= arrivalThreshold {
		return EventNone
	}

	m.legIndex++
	if m.legIndex == len(m.route.Waypoints) {
		m.Cancel()
		return EventCompleted
	}
	return EventAdvanced
}

// Active returns the route and leg index while navigating.
func (m *Machine) Active() (Route, int, bool) {
	if !m.active {
		return Route{}, 0, false
	}
	return m.route, m.legIndex, true
}

// Target returns the waypoint the current leg is headed for.
func (m *Machine) Target() (Waypoint, bool) {
	if !m.active {
		return Waypoint{}, false
	}
	return m.route.Waypoints[m.legIndex], true
}

// Remaining returns the distance in meters from pos to the end of the
// route along the remaining legs, or 0 when idle.
func (m *Machine) Remaining(pos geodesy.Coordinate) float64 {
	if !m.active {
		return 0
	}
	return geodesy.RemainingRouteDistance(m.route.Coordinates(), m.legIndex, pos)
}
