package formats

import (
	"context"
	"io"

	"github.com/travigo/airroute/pkg/ctdf"
)

type Format interface {
	ParseFile(io.Reader) error
	Import(context.Context, Destination) error
}

// Destination receives parsed records, either a database or a queue feeding running planners
type Destination interface {
	ImportAirports(context.Context, []*ctdf.Airport) error
	ImportFlights(context.Context, []ctdf.Flight) error
}
