package flightcatalog

import (
	"sort"
	"time"

	"github.com/travigo/airroute/pkg/ctdf"
)

// TimeWindow is the half open interval [Start, End)
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Snapshot is an immutable view of the catalog, flights are grouped by origin and sorted by departure.
// Slices returned from the query methods must be treated as read only.
type Snapshot struct {
	byOrigin map[string][]ctdf.Flight
	count    int
}

func (s *Snapshot) Len() int {
	return s.count
}

// DepartingFrom returns flights leaving any of the origins within the window. Results are grouped in
// the order origins are given, then by departure. Repeated origins are only queried once.
func (s *Snapshot) DepartingFrom(origins []string, window TimeWindow) []ctdf.Flight {
	var flights []ctdf.Flight
	seen := map[string]bool{}

	for _, origin := range origins {
		if seen[origin] {
			continue
		}
		seen[origin] = true

		flights = append(flights, s.departures(origin, window)...)
	}

	return flights
}

// DepartingAfter returns flights from origin departing in [earliest, earliest+within)
func (s *Snapshot) DepartingAfter(origin string, earliest time.Time, within time.Duration) []ctdf.Flight {
	return s.departures(origin, TimeWindow{Start: earliest, End: earliest.Add(within)})
}

func (s *Snapshot) departures(origin string, window TimeWindow) []ctdf.Flight {
	flights := s.byOrigin[origin]
	if len(flights) == 0 || !window.Start.Before(window.End) {
		return nil
	}

	start := sort.Search(len(flights), func(i int) bool {
		return !flights[i].Departure.Before(window.Start)
	})
	end := sort.Search(len(flights), func(i int) bool {
		return !flights[i].Departure.Before(window.End)
	})

	if start >= end {
		return nil
	}

	return flights[start:end:end]
}
