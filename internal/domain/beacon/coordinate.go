package beacon

import (
	"fmt"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Coordinate is a geographic position snapshot. Updates overwrite the whole
// value, never merge into it.
type Coordinate struct {
	// Lat is the latitude in decimal degrees.
	Lat float64
	// Lng is the longitude in decimal degrees.
	Lng float64
}

// Point converts the coordinate to an orb point (lng/lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// DistanceMeters returns the haversine distance to another coordinate.
func (c Coordinate) DistanceMeters(other Coordinate) float64 {
	return geo.DistanceHaversine(c.Point(), other.Point())
}

// String renders the coordinate as "lat, lng" with exactly five decimals,
// the precision used in alert text.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', 5, 64) + ", " + strconv.FormatFloat(c.Lng, 'f', 5, 64)
}

// MapLink builds a map-service deep link from the raw, unrounded values.
func (c Coordinate) MapLink(mapHost string) string {
	return fmt.Sprintf("https://%s/?q=%s,%s",
		mapHost,
		strconv.FormatFloat(c.Lat, 'f', -1, 64),
		strconv.FormatFloat(c.Lng, 'f', -1, 64))
}

// Fix is a single resolved position reading.
type Fix struct {
	// Coordinate is the resolved position.
	Coordinate Coordinate
	// AccuracyMeters is the reported accuracy radius, zero when unknown.
	AccuracyMeters float64
	// Timestamp is when the reading was taken.
	Timestamp time.Time
}

// Clone returns a copy of the fix to avoid leaking internal references.
func (f *Fix) Clone() *Fix {
	if f == nil {
		return nil
	}

	cloned := *f

	return &cloned
}
