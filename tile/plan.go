package tile

import (
	"gridnav/geodesy"
	"gridnav/zone"
)

// Plan enumerates every tile covering z's bounding rectangle for each
// zoom level in the zone's cache range, shallowest zoom first.
func Plan(z zone.Zone) []Address {
	var addrs []Address
	for zoom := z.MinZoom; zoom <= z.MaxZoom; zoom++ {
		// Northwest corner gives the smallest x/y, southeast the largest.
		nw := FromCoordinate(geodesy.Coordinate{Lat: z.Bounds.MaxLat, Lng: z.Bounds.MinLng}, zoom)
		se := FromCoordinate(geodesy.Coordinate{Lat: z.Bounds.MinLat, Lng: z.Bounds.MaxLng}, zoom)
		for x := nw.X; x <= se.X; x++ {
			for y := nw.Y; y <= se.Y; y++ {
				addrs = append(addrs, Address{Z: zoom, X: x, Y: y})
			}
		}
	}
	return addrs
}
