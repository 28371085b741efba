package routeservice

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/elastic_client"
)

const searchEventIndex = "airroute-route-searches"

type searchEvent struct {
	Origin      ctdf.Coordinates
	Destination ctdf.Coordinates

	DepartureTime time.Time

	Found          bool
	Legs           int
	Airports       []string
	LayoverSeconds float64

	Timestamp time.Time
}

func newSearchEvent(search ctdf.RouteSearch, plan *ctdf.RoutePlan) searchEvent {
	event := searchEvent{
		Origin:        search.Origin,
		Destination:   search.Destination,
		DepartureTime: search.DepartureTime,
		Found:         plan.Found,
		Legs:          len(plan.Legs),
		Timestamp:     time.Now(),
	}

	if plan.Found {
		event.LayoverSeconds = plan.TotalLayover.Seconds()
		for _, leg := range plan.Legs {
			event.Airports = append(event.Airports, leg.DepartureIATA)
		}
		event.Airports = append(event.Airports, plan.Legs[len(plan.Legs)-1].ArrivalIATA)
	}

	return event
}

func indexSearchEvent(search ctdf.RouteSearch, plan *ctdf.RoutePlan) {
	if elastic_client.Client == nil {
		return
	}

	eventBytes, err := json.Marshal(newSearchEvent(search, plan))
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal route search event")
		return
	}

	elastic_client.IndexRequest(searchEventIndex, bytes.NewReader(eventBytes))
}
