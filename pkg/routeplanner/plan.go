package routeplanner

import (
	"time"

	"github.com/travigo/airroute/pkg/ctdf"
)

func (p *Planner) buildPlan(flights []ctdf.Flight, layover time.Duration) *ctdf.RoutePlan {
	plan := &ctdf.RoutePlan{
		Found:        true,
		TotalLayover: ctdf.Layover{Duration: layover},
		Legs:         make([]ctdf.RouteLeg, len(flights)),
	}

	for n, flight := range flights {
		leg := ctdf.RouteLeg{
			DepartureTime: ctdf.RouteTime{Time: flight.Departure},
			DepartureIATA: flight.OriginIATA,
			ArrivalTime:   ctdf.RouteTime{Time: flight.Arrival},
			ArrivalIATA:   flight.DestinationIATA,
		}

		// Catalog codes are not checked against the airport list, unknown ones just stay as codes
		if airport, exists := p.Airports.Lookup(flight.OriginIATA); exists {
			leg.DepartureAirport = airport.Name
			leg.DepartureLatitude = airport.Location.Latitude
			leg.DepartureLongitude = airport.Location.Longitude
		}
		if airport, exists := p.Airports.Lookup(flight.DestinationIATA); exists {
			leg.ArrivalAirport = airport.Name
			leg.ArrivalLatitude = airport.Location.Latitude
			leg.ArrivalLongitude = airport.Location.Longitude
		}

		plan.Legs[n] = leg
	}

	if len(flights) > 0 {
		plan.DepartureTime = ctdf.RouteTime{Time: flights[0].Departure}
		plan.ArrivalTime = ctdf.RouteTime{Time: flights[len(flights)-1].Arrival}
	}

	return plan
}
