package geodesy

import "math"

// Ellipsoid holds the defining constants of a reference ellipsoid.
type Ellipsoid struct {
	A  float64 // semi-major axis (m)
	F  float64 // flattening
	B  float64 // semi-minor axis (m)
	E2 float64 // first eccentricity squared
}

func newEllipsoid(a, invF float64) Ellipsoid {
	f := 1.0 / invF
	b := a * (1 - f)
	return Ellipsoid{A: a, F: f, B: b, E2: (a*a - b*b) / (a * a)}
}

// The two datums this system converts between: positions arrive on
// WGS84 and the grid plane is defined on Everest 1830.
var (
	WGS84       = newEllipsoid(6378137.0, 298.257223563)
	Everest1830 = newEllipsoid(6377276.345, 300.8017)
)

// datumShift is the Cartesian offset from the Everest 1830 origin to the
// WGS84 origin, meters. Added going local->global, subtracted coming back.
var datumShift = struct{ DX, DY, DZ float64 }{295.0, 736.0, 257.0}

// toCartesian converts a geodetic coordinate on e to ECEF, treating
// height as zero; elevation is never modeled in the transform.
func toCartesian(e Ellipsoid, c Coordinate) (x, y, z float64) {
	phi := c.Lat * math.Pi / 180
	lam := c.Lng * math.Pi / 180
	sinPhi := math.Sin(phi)
	n := e.A / math.Sqrt(1-e.E2*sinPhi*sinPhi)
	x = n * math.Cos(phi) * math.Cos(lam)
	y = n * math.Cos(phi) * math.Sin(lam)
	z = n * (1 - e.E2) * sinPhi
	return
}

// toGeodetic converts an ECEF point back to a geodetic coordinate on e.
// Latitude is refined with a fixed five-pass iteration, which is more
// than enough for terrestrial latitudes; longitude is exact from atan2.
func toGeodetic(e Ellipsoid, x, y, z float64) Coordinate {
	p := math.Hypot(x, y)
	if p < 1e-6 {
		// Polar point: latitude from the sign of z, longitude moot.
		return Coordinate{Lat: math.Copysign(90, z), Lng: 0}
	}

	lng := math.Atan2(y, x)
	phi := math.Atan2(z, p*(1-e.E2))
	for i := 0; i < 5; i++ {
		sinPhi := math.Sin(phi)
		n := e.A / math.Sqrt(1-e.E2*sinPhi*sinPhi)
		if math.Abs(math.Cos(phi)) < 1e-12 {
			phi = math.Copysign(math.Pi/2, phi)
			break
		}
		phi = math.Atan((z + e.E2*n*sinPhi) / p)
	}

	return Coordinate{Lat: phi * 180 / math.Pi, Lng: lng * 180 / math.Pi}
}

// ToLocal converts a WGS84 coordinate to the Everest 1830 datum.
// It never fails: polar input degenerates to (±90, 0), which callers
// reject before projecting.
func ToLocal(c Coordinate) Coordinate {
	x, y, z := toCartesian(WGS84, c)
	return toGeodetic(Everest1830, x-datumShift.DX, y-datumShift.DY, z-datumShift.DZ)
}

// ToGlobal converts an Everest 1830 coordinate to WGS84.
func ToGlobal(c Coordinate) Coordinate {
	x, y, z := toCartesian(Everest1830, c)
	return toGeodetic(WGS84, x+datumShift.DX, y+datumShift.DY, z+datumShift.DZ)
}
