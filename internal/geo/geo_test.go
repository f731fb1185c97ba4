package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointValidate(t *testing.T) {
	assert.NoError(t, Point{Lat: 90, Lon: -180}.Validate())
	assert.ErrorIs(t, Point{Lat: 90.0001, Lon: 0}.Validate(), ErrLatitudeRange)
	assert.ErrorIs(t, Point{Lat: 0, Lon: 180.5}.Validate(), ErrLongitudeRange)
}

func TestHaversineMeters(t *testing.T) {
	sf := Point{Lat: 37.7749, Lon: -122.4194}
	assert.Zero(t, HaversineMeters(sf, sf))

	// One degree of latitude is roughly 111.2 km.
	d := HaversineMeters(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
	assert.InDelta(t, 111195, d, 50)

	la := Point{Lat: 34.0522, Lon: -118.2437}
	assert.InDelta(t, 559000, HaversineMeters(sf, la), 2000)
	assert.Equal(t, HaversineMeters(sf, la), HaversineMeters(la, sf))
}

func TestBoundingBox(t *testing.T) {
	center := Point{Lat: 37.7749, Lon: -122.4194}
	box := BoundingBox(center, 1)

	assert.InDelta(t, 1/111.0, box.MaxLat-center.Lat, 1e-9)
	assert.Greater(t, box.MaxLon-center.Lon, box.MaxLat-center.Lat)
	assert.True(t, box.Contains(center))
	assert.False(t, box.Contains(Point{Lat: 37.8, Lon: -122.4194}))
}

func TestBoundingBoxNearPole(t *testing.T) {
	box := BoundingBox(Point{Lat: 89.999, Lon: 0}, 10)

	assert.Equal(t, 90.0, box.MaxLat)
	assert.Equal(t, -180.0, box.MinLon)
	assert.Equal(t, 180.0, box.MaxLon)
}
