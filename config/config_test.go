package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
[gps]
type = "serial"
device = "/dev/ttyUSB0"
baud = 9600

[log]
level = "info"
dir = "logs"

[track]
minspacing = 15.0

[registry]
path = "registry.txt"

[[layer]]
key = "topo"
template = "https://{s}.tiles.example/{z}/{x}/{y}.png"
subdomains = ["a", "b", "c"]

[[zone]]
name = "North Sector"
centerlat = 28.6139
centerlng = 77.2090
defaultzoom = 12
bounds = [28.0, 76.5, 29.0, 77.5]
minzoom = 10
maxzoom = 14
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	conf, err := LoadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	if conf.GPS.Type != "serial" || conf.GPS.Device != "/dev/ttyUSB0" || conf.GPS.Baud != 9600 {
		t.Errorf("gps config = %+v", conf.GPS)
	}
	if conf.Track.MinSpacingMeters != 15 {
		t.Errorf("minspacing = %v, want 15", conf.Track.MinSpacingMeters)
	}

	layers := conf.TileLayers()
	if len(layers) != 1 || layers[0].Key != "topo" || len(layers[0].Subdomains) != 3 {
		t.Errorf("layers = %+v", layers)
	}

	zones, err := conf.ZoneCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 1 {
		t.Fatalf("got %d zones", len(zones))
	}
	z := zones[0]
	if z.Key() != "north_sector" {
		t.Errorf("zone key = %q", z.Key())
	}
	if z.Bounds.MinLat != 28 || z.Bounds.MaxLng != 77.5 {
		t.Errorf("bounds = %+v", z.Bounds)
	}
	if z.MinZoom != 10 || z.MaxZoom != 14 {
		t.Errorf("zoom range = %d..%d", z.MinZoom, z.MaxZoom)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	conf, err := LoadConfig(writeConfig(t, "[gps]\ntype = \"tcp\"\ndevice = \"localhost:2947\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if conf.Track.MinSpacingMeters != 10 {
		t.Errorf("default minspacing = %v, want 10", conf.Track.MinSpacingMeters)
	}
	if conf.Registry.Path != "cache_registry.txt" {
		t.Errorf("default registry path = %q", conf.Registry.Path)
	}
}

func TestRouteCatalog(t *testing.T) {
	body := sampleConfig + `
[[route]]
name = "river patrol"
waypoints = [
  { name = "crossing", zone = "43", easting = "0716075", northing = "3166934" },
  { name = "ridge",    zone = "43", easting = "0481625", northing = "3761902" },
]
`
	conf, err := LoadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatal(err)
	}
	routes, err := conf.RouteCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if len(routes) != 1 {
		t.Fatalf("got %d routes", len(routes))
	}
	r := routes[0]
	if r.Name != "river patrol" || len(r.Waypoints) != 2 {
		t.Fatalf("route = %+v", r)
	}
	// First waypoint is the Delhi reference point.
	wp := r.Waypoints[0]
	if wp.Name != "crossing" || wp.Coord.Lat < 28.5 || wp.Coord.Lat > 28.7 {
		t.Errorf("waypoint = %+v", wp)
	}
}

func TestRouteCatalogRejectsBadWaypoint(t *testing.T) {
	body := sampleConfig + `
[[route]]
name = "broken"
waypoints = [
  { name = "nowhere", zone = "61", easting = "0716075", northing = "3166934" },
]
`
	conf, err := LoadConfig(writeConfig(t, body))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conf.RouteCatalog(); err == nil {
		t.Fatal("expected an error for an invalid waypoint")
	}
}

func TestZoneCatalogRejectsBoundlessZone(t *testing.T) {
	conf, err := LoadConfig(writeConfig(t, "[[zone]]\nname = \"Nowhere\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conf.ZoneCatalog(); err == nil {
		t.Fatal("expected an error for a zone without bounds")
	}
}
