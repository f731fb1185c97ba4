// Package geo holds the coordinate helpers shared by the proximity search and
// the external import.
package geo

import (
	"errors"
	"math"
)

// EarthRadiusMeters is the mean earth radius used for spherical distances.
const EarthRadiusMeters = 6371008.8

// KmPerDegreeLat is the length of one degree of latitude.
const KmPerDegreeLat = 111.0

var (
	ErrLatitudeRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange = errors.New("longitude must be between -180 and 180")
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate reports whether the point is a valid coordinate.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return ErrLatitudeRange
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return ErrLongitudeRange
	}
	return nil
}

// HaversineMeters returns the great-circle distance between a and b.
func HaversineMeters(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Box is a latitude/longitude rectangle.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBox approximates the square of half-side radiusKm around center.
// The longitude span widens with latitude and is clamped near the poles.
func BoundingBox(center Point, radiusKm float64) Box {
	latDelta := radiusKm / KmPerDegreeLat

	cosLat := math.Cos(radians(center.Lat))
	lonDelta := 180.0
	if cosLat > 1e-9 {
		lonDelta = math.Min(180, radiusKm/(KmPerDegreeLat*cosLat))
	}

	return Box{
		MinLat: math.Max(-90, center.Lat-latDelta),
		MaxLat: math.Min(90, center.Lat+latDelta),
		MinLon: math.Max(-180, center.Lon-lonDelta),
		MaxLon: math.Min(180, center.Lon+lonDelta),
	}
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
