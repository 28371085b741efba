package routeservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/airportindex"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/flightcatalog"
	"github.com/travigo/airroute/pkg/routeplanner"
)

type Store interface {
	InsertFlights(ctx context.Context, flights []ctdf.Flight) error
	LoadFlights(ctx context.Context) ([]ctdf.Flight, error)
	LoadAirports(ctx context.Context) ([]*ctdf.Airport, error)
}

type Service struct {
	Planner *routeplanner.Planner
	Catalog *flightcatalog.Catalog

	// Optional, flights are only kept in memory without it
	Store Store

	writeLock sync.Mutex
}

func New(airports []*ctdf.Airport, store Store, config routeplanner.Config) (*Service, error) {
	index, err := airportindex.New(airports)
	if err != nil {
		return nil, err
	}

	catalog := flightcatalog.New()

	return &Service{
		Planner: routeplanner.New(index, catalog, config),
		Catalog: catalog,
		Store:   store,
	}, nil
}

// Load builds a service from everything already in store.
func Load(ctx context.Context, store Store, config routeplanner.Config) (*Service, error) {
	airports, err := store.LoadAirports(ctx)
	if err != nil {
		return nil, err
	}

	service, err := New(airports, store, config)
	if err != nil {
		return nil, err
	}

	flights, err := store.LoadFlights(ctx)
	if err != nil {
		return nil, err
	}

	if err := service.Catalog.Append(flights); err != nil {
		return nil, fmt.Errorf("load stored flights: %w", err)
	}

	log.Info().
		Int("airports", service.Planner.Airports.Len()).
		Int("flights", service.Catalog.Len()).
		Msg("Loaded route service")

	return service, nil
}

func (s *Service) SearchRoute(ctx context.Context, search ctdf.RouteSearch) (*ctdf.RoutePlan, error) {
	plan, err := s.Planner.SearchRoute(ctx, search)
	if err != nil {
		return nil, err
	}

	indexSearchEvent(search, plan)

	return plan, nil
}

// AddFlightData makes a batch searchable. An invalid batch returns an *ctdf.IngestionError and changes
// nothing. With a store configured the batch must be persisted before it becomes searchable.
func (s *Service) AddFlightData(ctx context.Context, flights []ctdf.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	if err := flightcatalog.Validate(flights); err != nil {
		return err
	}

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if s.Store != nil {
		if err := s.Store.InsertFlights(ctx, flights); err != nil {
			return fmt.Errorf("persist flights: %w", err)
		}
	}

	return s.Catalog.Append(flights)
}

func (s *Service) ImportFlights(ctx context.Context, flights []ctdf.Flight) error {
	return s.AddFlightData(ctx, flights)
}
