// Package flightcatalog holds the in-memory flight schedule used by the route planner.
//
// The schedule is append only. Every Append publishes a brand new immutable Snapshot so a search
// holding a Snapshot keeps a consistent view no matter how many batches land while it runs.
package flightcatalog

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
)

var (
	ErrMissingOrigin          = errors.New("missing origin")
	ErrMissingDestination     = errors.New("missing destination")
	ErrMissingTime            = errors.New("missing departure or arrival time")
	ErrArrivalBeforeDeparture = errors.New("arrival is before departure")
)

type Catalog struct {
	writeLock sync.Mutex
	current   atomic.Pointer[Snapshot]
}

func New() *Catalog {
	catalog := &Catalog{}
	catalog.current.Store(&Snapshot{byOrigin: map[string][]ctdf.Flight{}})

	return catalog
}

// Snapshot returns the current view of the catalog. It is never modified afterwards.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

func (c *Catalog) Len() int {
	return c.Snapshot().Len()
}

// Validate checks a batch without applying it. The first bad record is returned as a *ctdf.IngestionError.
func Validate(flights []ctdf.Flight) error {
	for n, flight := range flights {
		row := n + 1

		switch {
		case flight.OriginIATA == "":
			return &ctdf.IngestionError{Row: row, Field: "origin", Err: ErrMissingOrigin}
		case flight.DestinationIATA == "":
			return &ctdf.IngestionError{Row: row, Field: "destination", Err: ErrMissingDestination}
		case flight.Departure.IsZero() || flight.Arrival.IsZero():
			return &ctdf.IngestionError{Row: row, Field: "departure", Err: ErrMissingTime}
		case flight.Arrival.Before(flight.Departure):
			return &ctdf.IngestionError{Row: row, Field: "arrival", Err: ErrArrivalBeforeDeparture}
		}
	}

	return nil
}

// Append adds a batch of flights. Either the whole batch becomes visible to readers or, if any record
// is invalid, none of it does.
func (c *Catalog) Append(flights []ctdf.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	if err := Validate(flights); err != nil {
		return err
	}

	grouped := map[string][]ctdf.Flight{}
	for _, flight := range flights {
		grouped[flight.OriginIATA] = append(grouped[flight.OriginIATA], flight)
	}

	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	previous := c.current.Load()

	next := &Snapshot{
		byOrigin: make(map[string][]ctdf.Flight, len(previous.byOrigin)+len(grouped)),
		count:    previous.count + len(flights),
	}

	// Untouched origins share their slices with the previous snapshot, both are read only
	for origin, existing := range previous.byOrigin {
		next.byOrigin[origin] = existing
	}

	for origin, added := range grouped {
		existing := previous.byOrigin[origin]

		merged := make([]ctdf.Flight, 0, len(existing)+len(added))
		merged = append(merged, existing...)
		merged = append(merged, added...)

		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].Departure.Before(merged[j].Departure)
		})

		next.byOrigin[origin] = merged
	}

	c.current.Store(next)

	log.Debug().
		Int("added", len(flights)).
		Int("origins", len(grouped)).
		Int("total", next.count).
		Msg("Appended flights to catalog")

	return nil
}
