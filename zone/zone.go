// Package zone holds the static catalog of operating areas. Each entry
// names a map center, a display zoom, and the rectangular bounds and
// zoom range used when caching its tiles for offline use.
package zone

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"

	"gridnav/geodesy"
)

// Bounds is a lat/lng rectangle.
type Bounds struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// Contains reports whether c falls inside the rectangle.
func (b Bounds) Contains(c geodesy.Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// Zone is one catalog entry. Loaded once from configuration and never
// mutated afterwards.
type Zone struct {
	Name        string
	Center      geodesy.Coordinate
	DefaultZoom int
	Bounds      Bounds
	MinZoom     int // lowest zoom level cached for offline use
	MaxZoom     int // highest zoom level cached for offline use
}

// Key returns the registry key fragment for this zone: lowercased with
// spaces collapsed to underscores.
func (z Zone) Key() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(z.Name)), " ", "_")
}

// BoundsFromShapefile derives a zone's rectangle from the bounding box
// of the first polygon in a boundary shapefile.
func BoundsFromShapefile(path string) (Bounds, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return Bounds{}, fmt.Errorf("failed to open boundary shapefile %s: %w", path, err)
	}
	defer reader.Close()

	for reader.Next() {
		_, shape := reader.Shape()
		box := shape.BBox()
		return Bounds{
			MinLat: box.MinY,
			MinLng: box.MinX,
			MaxLat: box.MaxY,
			MaxLng: box.MaxX,
		}, nil
	}
	return Bounds{}, fmt.Errorf("boundary shapefile %s has no shapes", path)
}
