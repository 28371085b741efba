package ctdf

import (
	"strconv"
	"time"
)

const RouteTimeLayout = "2006-01-02 15:04"

type RoutePlan struct {
	Found bool `json:"-"`

	Legs []RouteLeg `json:"route" groups:"basic"`

	DepartureTime RouteTime `json:"departure_date" groups:"basic"`
	ArrivalTime   RouteTime `json:"arrive_date" groups:"basic"`
	TotalLayover  Layover   `json:"total_layover_minutes" groups:"basic"`
}

type RouteLeg struct {
	DepartureTime      RouteTime `json:"departure_date" groups:"basic"`
	DepartureIATA      string    `json:"departure_iata_code" groups:"basic"`
	DepartureAirport   string    `json:"departure_airport" groups:"detailed"`
	DepartureLatitude  float64   `json:"departure_latitude" groups:"detailed"`
	DepartureLongitude float64   `json:"departure_longitude" groups:"detailed"`

	ArrivalTime      RouteTime `json:"arrive_date" groups:"basic"`
	ArrivalIATA      string    `json:"arrive_iata_code" groups:"basic"`
	ArrivalAirport   string    `json:"arrive_airport" groups:"detailed"`
	ArrivalLatitude  float64   `json:"arrive_latitude" groups:"detailed"`
	ArrivalLongitude float64   `json:"arrive_longitude" groups:"detailed"`
}

// RouteTime is written to JSON as RouteTimeLayout
type RouteTime struct {
	time.Time
}

func (t RouteTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Format(RouteTimeLayout))), nil
}

func (t *RouteTime) UnmarshalJSON(data []byte) error {
	value, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}

	parsed, err := time.ParseInLocation(RouteTimeLayout, value, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed

	return nil
}

// Layover is written to JSON as whole minutes
type Layover struct {
	time.Duration
}

func (l Layover) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(l.Duration/time.Minute), 10)), nil
}

func (l *Layover) UnmarshalJSON(data []byte) error {
	minutes, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	l.Duration = time.Duration(minutes) * time.Minute

	return nil
}

func (l RouteLeg) Duration() time.Duration {
	return l.ArrivalTime.Sub(l.DepartureTime.Time)
}

// Layovers returns the waiting time between each pair of consecutive legs.
func (p *RoutePlan) Layovers() []time.Duration {
	var layovers []time.Duration
	for i := 1; i < len(p.Legs); i++ {
		layovers = append(layovers, p.Legs[i].DepartureTime.Sub(p.Legs[i-1].ArrivalTime.Time))
	}

	return layovers
}
