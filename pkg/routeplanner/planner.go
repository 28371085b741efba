// Package routeplanner finds the multi-hop flight itinerary with the least total layover between two coordinates.
package routeplanner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/airroute/pkg/airportindex"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/flightcatalog"
	"golang.org/x/exp/slices"
)

const noPrevious = -1

// searchNode is a flight reached during one search. previous is the position of the flight it
// connects from in the node arena, or noPrevious for first legs.
type searchNode struct {
	flight   ctdf.Flight
	previous int
}

type Planner struct {
	Airports *airportindex.Index
	Catalog  *flightcatalog.Catalog
	Config   Config
}

func New(airports *airportindex.Index, catalog *flightcatalog.Catalog, config Config) *Planner {
	return &Planner{
		Airports: airports,
		Catalog:  catalog,
		Config:   config,
	}
}

// SearchRoute expands the flight schedule layer by layer from the airports near the origin until a layer
// reaches an airport near the destination, then returns the itinerary in that layer with the least total
// layover. Not finding anything is not an error, the returned plan just has Found set to false.
func (p *Planner) SearchRoute(ctx context.Context, search ctdf.RouteSearch) (*ctdf.RoutePlan, error) {
	if err := search.Origin.Validate(); err != nil {
		return nil, err
	}
	if err := search.Destination.Validate(); err != nil {
		return nil, err
	}

	filter, err := compileFilter(search.Filter)
	if err != nil {
		return nil, err
	}

	nearFrom, err := p.Airports.Nearest(search.Origin, p.Config.NearestAirports)
	if err != nil {
		return nil, err
	}
	nearTo, err := p.Airports.Nearest(search.Destination, p.Config.NearestAirports)
	if err != nil {
		return nil, err
	}

	destinations := map[string]bool{}
	for _, airport := range nearTo {
		destinations[airport.IATACode] = true
	}

	// One snapshot for the whole search so batches appended meanwhile are not seen half way through
	snapshot := p.Catalog.Snapshot()

	windowEnd := p.Config.ConsiderationWindow.Shift(search.DepartureTime)
	firstLayerEnd := p.Config.FirstLayerWindow.Shift(search.DepartureTime)
	if firstLayerEnd.After(windowEnd) {
		firstLayerEnd = windowEnd
	}

	firstLayer := filter.apply(snapshot.DepartingFrom(airportindex.IATACodes(nearFrom), flightcatalog.TimeWindow{
		Start: search.DepartureTime,
		End:   firstLayerEnd,
	}))

	frontier := make([]searchNode, len(firstLayer))
	for n, flight := range firstLayer {
		frontier[n] = searchNode{flight: flight, previous: noPrevious}
	}

	var arena []searchNode
	layer := 0

	for len(frontier) > 0 && !reachesDestination(frontier, destinations) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Debug().Int("layer", layer).Int("frontier", len(frontier)).Int("arena", len(arena)).Msg("Expanding search layer")

		next := p.expand(snapshot, frontier, len(arena), windowEnd, filter)

		arena = append(arena, frontier...)
		frontier = next
		layer++
	}

	if len(frontier) == 0 {
		log.Debug().Int("layers", layer).Msg("No route found")
		return &ctdf.RoutePlan{Found: false}, nil
	}

	flights, layover := cheapestChain(frontier, arena, destinations)

	return p.buildPlan(flights, layover), nil
}

func reachesDestination(frontier []searchNode, destinations map[string]bool) bool {
	for _, node := range frontier {
		if destinations[node.flight.DestinationIATA] {
			return true
		}
	}

	return false
}

// expand finds every connection out of the frontier. Nodes are expanded concurrently but the result keeps
// frontier order, so arena positions only depend on the order layers are appended in.
// base is the arena position the first frontier node will be stored at.
func (p *Planner) expand(snapshot *flightcatalog.Snapshot, frontier []searchNode, base int, windowEnd time.Time, filter *flightFilter) []searchNode {
	connections := make([][]searchNode, len(frontier))

	workers := pool.New().WithMaxGoroutines(max(p.Config.MaxExpansionWorkers, 1))

	for n, node := range frontier {
		n, node := n, node
		workers.Go(func() {
			earliest := p.Config.MinimumConnection.Shift(node.flight.Arrival)
			latest := p.Config.MaximumConnection.Shift(node.flight.Arrival)
			if latest.After(windowEnd) {
				latest = windowEnd
			}
			if !earliest.Before(latest) {
				return
			}

			for _, flight := range snapshot.DepartingAfter(node.flight.DestinationIATA, earliest, latest.Sub(earliest)) {
				if filter.accepts(flight) {
					connections[n] = append(connections[n], searchNode{flight: flight, previous: base + n})
				}
			}
		})
	}

	workers.Wait()

	var next []searchNode
	for _, nodeConnections := range connections {
		next = append(next, nodeConnections...)
	}

	return next
}

// cheapestChain walks back from every frontier node landing at a destination airport and keeps the chain
// with the smallest sum of layovers. The first one found wins a tie. Flights come back in travel order.
func cheapestChain(frontier []searchNode, arena []searchNode, destinations map[string]bool) ([]ctdf.Flight, time.Duration) {
	var best []ctdf.Flight
	var bestLayover time.Duration

	for _, node := range frontier {
		if !destinations[node.flight.DestinationIATA] {
			continue
		}

		chain := []ctdf.Flight{node.flight}
		var layover time.Duration

		current := node
		for current.previous != noPrevious {
			previous := arena[current.previous]
			layover += current.flight.Departure.Sub(previous.flight.Arrival)

			chain = append(chain, previous.flight)
			current = previous
		}

		if best == nil || layover < bestLayover {
			best = chain
			bestLayover = layover
		}
	}

	slices.Reverse(best)

	return best, bestLayover
}
