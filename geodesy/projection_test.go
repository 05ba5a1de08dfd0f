package geodesy

import (
	"math"
	"testing"
)

func TestZoneOf(t *testing.T) {
	cases := []struct {
		lng  float64
		zone int
	}{
		{77.2090, 43},
		{72.8777, 43},
		{80.19, 44},
		{-0.12, 30},
		{-180, 1},
		{179.99, 60},
	}
	for _, c := range cases {
		if got := ZoneOf(c.lng); got != c.zone {
			t.Errorf("ZoneOf(%v) = %d, want %d", c.lng, got, c.zone)
		}
	}
}

func TestCentralMeridian(t *testing.T) {
	if cm := CentralMeridian(43); cm != 75 {
		t.Errorf("CentralMeridian(43) = %v, want 75", cm)
	}
	if cm := CentralMeridian(1); cm != -177 {
		t.Errorf("CentralMeridian(1) = %v, want -177", cm)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	points := []Coordinate{
		{Lat: 8.1, Lng: 77.5},
		{Lat: 20.0, Lng: 73.0},
		{Lat: 28.0, Lng: 76.5},
		{Lat: 34.0, Lng: 74.8},
		{Lat: 12.97, Lng: 80.19},
	}
	for _, p := range points {
		zone, e, n := Project(p)
		back := Unproject(zone, e, n)
		if math.Abs(back.Lat-p.Lat) > 1e-7 || math.Abs(back.Lng-p.Lng) > 1e-7 {
			t.Errorf("round trip of %v gave %v", p, back)
		}
	}
}

func TestProjectKnownPoint(t *testing.T) {
	// Local-datum equivalent of WGS84 (28.6139, 77.2090).
	zone, e, n := Project(Coordinate{Lat: 28.613856, Lng: 77.210276})
	if zone != 43 {
		t.Fatalf("zone = %d, want 43", zone)
	}
	if math.Abs(e-716075) > 1.0 {
		t.Errorf("easting = %v, want ~716075", e)
	}
	if math.Abs(n-3166934) > 1.0 {
		t.Errorf("northing = %v, want ~3166934", n)
	}
}

func TestProjectionMetricAccuracy(t *testing.T) {
	// Re-projecting the unprojected point must agree to a centimeter.
	zone, e, n := Project(Coordinate{Lat: 28.0, Lng: 76.5})
	back := Unproject(zone, e, n)
	zone2, e2, n2 := Project(back)
	if zone2 != zone {
		t.Fatalf("zone changed on round trip: %d -> %d", zone, zone2)
	}
	if math.Abs(e2-e) > 0.01 || math.Abs(n2-n) > 0.01 {
		t.Errorf("planar drift: (%v,%v) -> (%v,%v)", e, n, e2, n2)
	}
}
