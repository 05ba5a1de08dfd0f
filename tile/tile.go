// Package tile plans and executes offline prefetch of slippy-map tiles
// covering a zone's bounding rectangle.
package tile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gridnav/geodesy"
)

// Address identifies one tile in the standard slippy-map scheme.
type Address struct {
	Z int
	X int
	Y int
}

func (a Address) String() string {
	return fmt.Sprintf("z%d/x%d/y%d", a.Z, a.X, a.Y)
}

// FromCoordinate returns the tile containing c at the given zoom.
func FromCoordinate(c geodesy.Coordinate, zoom int) Address {
	n := math.Exp2(float64(zoom))
	x := int((c.Lng + 180) / 360 * n)
	latRad := c.Lat * math.Pi / 180
	y := int((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n)

	max := int(n) - 1
	if x < 0 {
		x = 0
	} else if x > max {
		x = max
	}
	if y < 0 {
		y = 0
	} else if y > max {
		y = max
	}
	return Address{Z: zoom, X: x, Y: y}
}

// Layer describes one tile source supplied by the host: a registry key
// and a URL template with {z}, {x}, {y} and optional {s} placeholders.
type Layer struct {
	Key         string
	URLTemplate string
	Subdomains  []string
}

// URL substitutes a's indices into the layer template. The sub-host
// token is picked deterministically from (x+y) so repeated plans spread
// the same way across mirrors.
func (l Layer) URL(a Address) string {
	u := l.URLTemplate
	u = strings.ReplaceAll(u, "{z}", strconv.Itoa(a.Z))
	u = strings.ReplaceAll(u, "{x}", strconv.Itoa(a.X))
	u = strings.ReplaceAll(u, "{y}", strconv.Itoa(a.Y))
	if strings.Contains(u, "{s}") && len(l.Subdomains) > 0 {
		u = strings.ReplaceAll(u, "{s}", l.Subdomains[(a.X+a.Y)%len(l.Subdomains)])
	}
	return u
}
