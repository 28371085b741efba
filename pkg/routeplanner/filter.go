package routeplanner

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
)

var ErrInvalidFilter = errors.New("invalid flight filter")

// flightFilter decides if a flight may be used in an itinerary. A nil filter accepts everything.
type flightFilter struct {
	program *vm.Program
}

func compileFilter(code string) (*flightFilter, error) {
	if code == "" {
		return nil, nil
	}

	program, err := expr.Compile(code, expr.Env(ctdf.Flight{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	return &flightFilter{program: program}, nil
}

func (f *flightFilter) accepts(flight ctdf.Flight) bool {
	if f == nil {
		return true
	}

	result, err := expr.Run(f.program, flight)
	if err != nil {
		log.Debug().Err(err).Str("origin", flight.OriginIATA).Msg("Flight filter failed to run")
		return false
	}

	accepted, _ := result.(bool)
	return accepted
}

func (f *flightFilter) apply(flights []ctdf.Flight) []ctdf.Flight {
	if f == nil {
		return flights
	}

	var accepted []ctdf.Flight
	for _, flight := range flights {
		if f.accepts(flight) {
			accepted = append(accepted, flight)
		}
	}

	return accepted
}
