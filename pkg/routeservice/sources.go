package routeservice

import (
	"context"

	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/database"
	"github.com/travigo/airroute/pkg/dataimporter/datasets"
	"github.com/travigo/airroute/pkg/dataimporter/manager"
	"github.com/travigo/airroute/pkg/routeplanner"
)

func LoadFromDatabase(ctx context.Context, config routeplanner.Config) (*Service, error) {
	if err := database.Connect(); err != nil {
		return nil, err
	}

	store, err := database.GlobalFlightStore()
	if err != nil {
		return nil, err
	}

	return Load(ctx, store, config)
}

type memoryDestination struct {
	airports []*ctdf.Airport
	flights  []ctdf.Flight
}

func (m *memoryDestination) ImportAirports(_ context.Context, airports []*ctdf.Airport) error {
	m.airports = append(m.airports, airports...)
	return nil
}

func (m *memoryDestination) ImportFlights(_ context.Context, flights []ctdf.Flight) error {
	m.flights = append(m.flights, flights...)
	return nil
}

// LoadFromSources builds a service without a store. Sources are local paths or URLs,
// flightsSource may be empty.
func LoadFromSources(ctx context.Context, airportsSource string, flightsSource string, config routeplanner.Config) (*Service, error) {
	destination := &memoryDestination{}

	err := manager.ImportDataset(ctx, datasets.DataSet{
		Identifier: "startup-airports",
		Format:     datasets.DataSetFormatOurAirports,
		Source:     airportsSource,
	}, destination)
	if err != nil {
		return nil, err
	}

	if flightsSource != "" {
		err := manager.ImportDataset(ctx, datasets.DataSet{
			Identifier: "startup-flights",
			Format:     datasets.DataSetFormatFlightSchedule,
			Source:     flightsSource,
		}, destination)
		if err != nil {
			return nil, err
		}
	}

	service, err := New(destination.airports, nil, config)
	if err != nil {
		return nil, err
	}

	if err := service.AddFlightData(ctx, destination.flights); err != nil {
		return nil, err
	}

	return service, nil
}
