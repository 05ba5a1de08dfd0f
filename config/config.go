package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"gridnav/geodesy"
	"gridnav/route"
	"gridnav/tile"
	"gridnav/zone"
)

// GPSConfig holds settings for the position source.
type GPSConfig struct {
	Type   string `toml:"type"`   // "serial" or "tcp"
	Device string `toml:"device"` // /dev/ttyUSB0, COM3, or host:port
	Baud   int    `toml:"baud"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	Dir   string `toml:"dir"`
}

// TrackConfig holds path-recording settings.
type TrackConfig struct {
	MinSpacingMeters float64 `toml:"minspacing"`
}

// RegistryConfig points at the persisted tile-cache registry.
type RegistryConfig struct {
	Path string `toml:"path"`
}

// DescribeConfig points at the location-description service.
type DescribeConfig struct {
	URL string `toml:"url"`
}

// LayerConfig describes one tile source.
type LayerConfig struct {
	Key        string   `toml:"key"`
	Template   string   `toml:"template"`
	Subdomains []string `toml:"subdomains"`
}

// ZoneConfig is one operating-area entry. Bounds is
// [minlat, minlng, maxlat, maxlng]; a boundary shapefile, when given,
// overrides it.
type ZoneConfig struct {
	Name        string    `toml:"name"`
	CenterLat   float64   `toml:"centerlat"`
	CenterLng   float64   `toml:"centerlng"`
	DefaultZoom int       `toml:"defaultzoom"`
	Bounds      []float64 `toml:"bounds"`
	MinZoom     int       `toml:"minzoom"`
	MaxZoom     int       `toml:"maxzoom"`
	Boundary    string    `toml:"boundary"`
}

// WaypointConfig is one stop of a stored route, recorded in the same
// zone/easting/northing text form the operator enters by hand.
type WaypointConfig struct {
	Name     string `toml:"name"`
	Zone     string `toml:"zone"`
	Easting  string `toml:"easting"`
	Northing string `toml:"northing"`
}

// RouteConfig is a stored multi-leg route.
type RouteConfig struct {
	Name      string           `toml:"name"`
	Waypoints []WaypointConfig `toml:"waypoints"`
}

// Config holds all application configuration.
type Config struct {
	GPS      GPSConfig      `toml:"gps"`
	Log      LogConfig      `toml:"log"`
	Track    TrackConfig    `toml:"track"`
	Registry RegistryConfig `toml:"registry"`
	Describe DescribeConfig `toml:"describe"`
	Layers   []LayerConfig  `toml:"layer"`
	Zones    []ZoneConfig   `toml:"zone"`
	Routes   []RouteConfig  `toml:"route"`
}

// LoadConfig reads the configuration from the given TOML file.
func LoadConfig(path string) (Config, error) {
	var conf Config

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}

	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, err
	}

	if conf.Track.MinSpacingMeters <= 0 {
		conf.Track.MinSpacingMeters = 10
	}
	if conf.Registry.Path == "" {
		conf.Registry.Path = "cache_registry.txt"
	}
	return conf, nil
}

// TileLayers converts the configured layers for the prefetcher.
func (c Config) TileLayers() []tile.Layer {
	layers := make([]tile.Layer, len(c.Layers))
	for i, l := range c.Layers {
		layers[i] = tile.Layer{Key: l.Key, URLTemplate: l.Template, Subdomains: l.Subdomains}
	}
	return layers
}

// ZoneCatalog builds the immutable zone catalog, resolving boundary
// shapefiles where configured.
func (c Config) ZoneCatalog() ([]zone.Zone, error) {
	zones := make([]zone.Zone, 0, len(c.Zones))
	for _, zc := range c.Zones {
		z := zone.Zone{
			Name:        zc.Name,
			Center:      geodesy.Coordinate{Lat: zc.CenterLat, Lng: zc.CenterLng},
			DefaultZoom: zc.DefaultZoom,
			MinZoom:     zc.MinZoom,
			MaxZoom:     zc.MaxZoom,
		}
		switch {
		case zc.Boundary != "":
			bounds, err := zone.BoundsFromShapefile(zc.Boundary)
			if err != nil {
				return nil, fmt.Errorf("zone %s: %w", zc.Name, err)
			}
			z.Bounds = bounds
		case len(zc.Bounds) == 4:
			z.Bounds = zone.Bounds{
				MinLat: zc.Bounds[0], MinLng: zc.Bounds[1],
				MaxLat: zc.Bounds[2], MaxLng: zc.Bounds[3],
			}
		default:
			return nil, fmt.Errorf("zone %s has neither bounds nor a boundary shapefile", zc.Name)
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// RouteCatalog builds the stored routes, resolving each waypoint's grid
// reference. A waypoint that doesn't parse fails the whole catalog.
func (c Config) RouteCatalog() ([]route.Route, error) {
	routes := make([]route.Route, 0, len(c.Routes))
	for _, rc := range c.Routes {
		r := route.Route{Name: rc.Name}
		for _, wc := range rc.Waypoints {
			coord, ok := geodesy.ParseGridRef(wc.Zone, wc.Easting, wc.Northing)
			if !ok {
				return nil, fmt.Errorf("route %s: waypoint %s has an invalid grid reference",
					rc.Name, wc.Name)
			}
			r.Waypoints = append(r.Waypoints, route.Waypoint{Name: wc.Name, Coord: coord})
		}
		if len(r.Waypoints) == 0 {
			return nil, fmt.Errorf("route %s has no waypoints", rc.Name)
		}
		routes = append(routes, r)
	}
	return routes, nil
}
