package flightschedule

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/dataimporter/formats"
	"github.com/travigo/airroute/pkg/util"
)

var ErrInvalidDate = errors.New("invalid flight date")

type Schedule struct {
	Flights []ctdf.Flight
}

// ParseFile reads a flight schedule CSV. The whole file is rejected if any row can't be turned into a flight.
func (s *Schedule) ParseFile(reader io.Reader) error {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var records []Record
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return &ctdf.IngestionError{Err: err}
	}

	flights := make([]ctdf.Flight, 0, len(records))
	for n, record := range records {
		flight, err := record.toFlight()
		if err != nil {
			var ingestionError *ctdf.IngestionError
			if errors.As(err, &ingestionError) {
				ingestionError.Row = n + 1
				return ingestionError
			}

			return &ctdf.IngestionError{Row: n + 1, Err: err}
		}

		flights = append(flights, flight)
	}

	log.Info().Int("flights", len(flights)).Msg("Parsed flight schedule")

	s.Flights = flights

	return nil
}

func (s *Schedule) Import(ctx context.Context, destination formats.Destination) error {
	return destination.ImportFlights(ctx, s.Flights)
}

func (r Record) toFlight() (ctdf.Flight, error) {
	origin := strings.TrimSpace(r.Origin)
	destination := strings.TrimSpace(r.Dest)

	if origin == "" {
		return ctdf.Flight{}, &ctdf.IngestionError{Field: "Origin", Err: errors.New("missing origin")}
	}
	if destination == "" {
		return ctdf.Flight{}, &ctdf.IngestionError{Field: "Dest", Err: errors.New("missing destination")}
	}

	if r.Month < 1 || r.Month > 12 || r.DayOfMonth < 1 || r.Year < 1 {
		return ctdf.Flight{}, &ctdf.IngestionError{Field: "Year/Month/DayofMonth", Err: fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, r.Year, r.Month, r.DayOfMonth)}
	}

	date := time.Date(r.Year, time.Month(r.Month), r.DayOfMonth, 0, 0, 0, 0, time.UTC)
	if date.Day() != r.DayOfMonth {
		return ctdf.Flight{}, &ctdf.IngestionError{Field: "DayofMonth", Err: fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, r.Year, r.Month, r.DayOfMonth)}
	}

	departure, err := util.ClockTimeToDate(date, r.CRSDepTime)
	if err != nil {
		return ctdf.Flight{}, &ctdf.IngestionError{Field: "CRSDepTime", Err: err}
	}
	arrival, err := util.ClockTimeToDate(date, r.CRSArrTime)
	if err != nil {
		return ctdf.Flight{}, &ctdf.IngestionError{Field: "CRSArrTime", Err: err}
	}

	// Arrival clock time before departure means the flight lands the next day
	if arrival.Before(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}

	return ctdf.Flight{
		OriginIATA:      origin,
		DestinationIATA: destination,
		Departure:       departure,
		Arrival:         arrival,
	}, nil
}
