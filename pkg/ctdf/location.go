package ctdf

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

type Coordinates struct {
	Latitude  float64 `json:"latitude" groups:"detailed"`
	Longitude float64 `json:"longitude" groups:"detailed"`
}

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, c.Longitude)
	}

	return nil
}

// DistanceTo is the straight line distance between the two points measured in raw degrees.
// It is not a geodesic distance and gets worse near the poles and across the antimeridian.
func (c Coordinates) DistanceTo(other Coordinates) float64 {
	dLat := c.Latitude - other.Latitude
	dLon := c.Longitude - other.Longitude

	return math.Sqrt(dLat*dLat + dLon*dLon)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}
