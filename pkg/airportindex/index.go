// Package airportindex resolves coordinates to the closest airports with a known IATA code.
package airportindex

import (
	"cmp"
	"errors"
	"strings"

	"github.com/travigo/airroute/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const DefaultNearestCount = 5

var ErrEmptyIndex = errors.New("airport index has no airports with an IATA code")

// Index is built once and is read only afterwards so it can be shared between searches.
type Index struct {
	airports []*ctdf.Airport
	byIATA   map[string]*ctdf.Airport
}

func New(airports []*ctdf.Airport) (*Index, error) {
	index := &Index{
		byIATA: map[string]*ctdf.Airport{},
	}

	for _, airport := range airports {
		if airport == nil || strings.TrimSpace(airport.IATACode) == "" {
			continue
		}

		index.airports = append(index.airports, airport)

		// First loaded record wins when codes are duplicated
		if _, exists := index.byIATA[airport.IATACode]; !exists {
			index.byIATA[airport.IATACode] = airport
		}
	}

	if len(index.airports) == 0 {
		return nil, ErrEmptyIndex
	}

	return index, nil
}

func (i *Index) Len() int {
	return len(i.airports)
}

func (i *Index) Lookup(iata string) (*ctdf.Airport, bool) {
	airport, exists := i.byIATA[iata]
	return airport, exists
}

// Nearest returns the k airports closest to coordinates sorted by distance. Airports at the same
// distance keep the order they were loaded in. k <= 0 uses DefaultNearestCount.
func (i *Index) Nearest(coordinates ctdf.Coordinates, k int) ([]*ctdf.Airport, error) {
	if err := coordinates.Validate(); err != nil {
		return nil, err
	}

	if k <= 0 {
		k = DefaultNearestCount
	}
	if k > len(i.airports) {
		k = len(i.airports)
	}

	type candidate struct {
		airport  *ctdf.Airport
		distance float64
	}

	candidates := make([]candidate, len(i.airports))
	for n, airport := range i.airports {
		candidates[n] = candidate{
			airport:  airport,
			distance: coordinates.DistanceTo(airport.Location),
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Compare(a.distance, b.distance)
	})

	nearest := make([]*ctdf.Airport, k)
	for n := 0; n < k; n++ {
		nearest[n] = candidates[n].airport
	}

	return nearest, nil
}

// IATACodes is a small helper for turning a Nearest result into the candidate code list.
func IATACodes(airports []*ctdf.Airport) []string {
	codes := make([]string, len(airports))
	for n, airport := range airports {
		codes[n] = airport.IATACode
	}

	return codes
}
