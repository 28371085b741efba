package ctdf

import "time"

type RouteSearch struct {
	Origin      Coordinates
	Destination Coordinates

	DepartureTime time.Time

	// Optional expression evaluated against each Flight, flights it rejects are never used
	Filter string
}
