// Package geo holds the small geographic types shared by the road-network
// contract and the route builder. Coordinates are backed by orb.Point so
// that callers assembling GeoJSON output (outside this module's scope) can
// use the wider orb toolchain directly on route legs.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Coord is a (lon, lat) pair, matching orb's axis order.
type Coord orb.Point

func NewCoord(lon, lat float32) Coord {
	return Coord{float64(lon), float64(lat)}
}

func (self Coord) Lon() float32 {
	return float32(self[0])
}

func (self Coord) Lat() float32 {
	return float32(self[1])
}

func (self Coord) Point() orb.Point {
	return orb.Point(self)
}

// earthRadiusMeters is the mean radius used for the haversine estimate below.
const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two coordinates.
// It is used only as an epsilon check when concatenating boundary and
// transit legs (§4.6); it is not part of the road-network weighting, which
// is owned by the external router.
func HaversineMeters(a, b Coord) float64 {
	lat1 := float64(a.Lat()) * math.Pi / 180
	lat2 := float64(b.Lat()) * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (float64(b.Lon()) - float64(a.Lon())) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// SameLocation reports whether a and b are within toleranceMeters of each
// other, the epsilon tolerance §4.6 allows when two consecutive legs are
// expected to share an endpoint but were computed independently.
func SameLocation(a, b Coord, toleranceMeters float64) bool {
	return HaversineMeters(a, b) <= toleranceMeters
}
