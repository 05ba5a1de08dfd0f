package geodesy

import "math"

// Zoned Transverse Mercator projection on the Everest 1830 ellipsoid.
// Standard 6°-wide zones, central scale 0.9996, 500 km false easting and
// no false northing. Both directions are undefined at the poles; callers
// keep |lat| strictly below 90° (the grid codec enforces this).

const (
	scaleFactor  = 0.9996
	falseEasting = 500000.0
)

// ZoneOf returns the 1..60 zone number for a longitude.
func ZoneOf(lng float64) int {
	return int(math.Floor((lng+180)/6)) + 1
}

// CentralMeridian returns the central meridian of a zone in degrees.
func CentralMeridian(zone int) float64 {
	return float64(zone-1)*6 - 180 + 3
}

// meridionalArc is the arc length along the central meridian from the
// equator to latitude phi (radians).
func meridionalArc(e Ellipsoid, phi float64) float64 {
	e2 := e.E2
	return e.A * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))
}

// Project converts a local-datum coordinate to its zone and planar
// easting/northing in meters. The zone is always recomputed from the
// longitude, never carried in from elsewhere.
func Project(c Coordinate) (zone int, easting, northing float64) {
	e := Everest1830
	zone = ZoneOf(c.Lng)
	lng0 := CentralMeridian(zone)

	phi := c.Lat * math.Pi / 180
	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	ep2 := e.E2 / (1 - e.E2)
	n := e.A / math.Sqrt(1-e.E2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	cc := ep2 * cosPhi * cosPhi
	a := (c.Lng - lng0) * math.Pi / 180 * cosPhi
	m := meridionalArc(e, phi)

	easting = scaleFactor*n*(a+(1-t+cc)*a*a*a/6+
		(5-18*t+t*t+72*cc-58*ep2)*math.Pow(a, 5)/120) + falseEasting
	northing = scaleFactor * (m + n*tanPhi*(a*a/2+
		(5-t+9*cc+4*cc*cc)*math.Pow(a, 4)/24+
		(61-58*t+t*t+600*cc-330*ep2)*math.Pow(a, 6)/720))
	return
}

// Unproject converts a zone/easting/northing triple back to a
// local-datum coordinate. The zone supplies the central meridian; it is
// not recoverable from the planar values alone.
func Unproject(zone int, easting, northing float64) Coordinate {
	e := Everest1830
	lng0 := CentralMeridian(zone)

	e2 := e.E2
	ep2 := e2 / (1 - e2)
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	// Footpoint latitude from the series inversion of the meridional arc.
	m := northing / scaleFactor
	mu := m / (e.A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))
	phi1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)

	c1 := ep2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := e.A / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := e.A * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := (easting - falseEasting) / (n1 * scaleFactor)

	lat := phi1 - (n1*tanPhi1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)
	lng := lng0*math.Pi/180 + (d-(1+2*t1+c1)*d*d*d/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120)/cosPhi1

	return Coordinate{Lat: lat * 180 / math.Pi, Lng: lng * 180 / math.Pi}
}
