package ctdf

import "time"

// Flight is a single scheduled flight. Arrival is never before Departure, overnight
// flights have their arrival shifted onto the next day when they are imported.
type Flight struct {
	OriginIATA      string `json:"origin" bson:"originiata"`
	DestinationIATA string `json:"destination" bson:"destinationiata"`

	Departure time.Time `json:"departure" bson:"departure"`
	Arrival   time.Time `json:"arrival" bson:"arrival"`
}

func (f Flight) Duration() time.Duration {
	return f.Arrival.Sub(f.Departure)
}
