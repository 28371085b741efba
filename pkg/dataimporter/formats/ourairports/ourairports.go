package ourairports

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/dataimporter/formats"
)

type Dataset struct {
	Airports []*ctdf.Airport
}

// ParseFile reads an OurAirports CSV. Airports without an IATA code are dropped, a bad coordinate on
// any remaining airport rejects the whole file.
func (d *Dataset) ParseFile(reader io.Reader) error {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	var records []Airport
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return &ctdf.IngestionError{Err: err}
	}

	var airports []*ctdf.Airport
	dropped := 0

	for n, record := range records {
		record.IATACode = strings.TrimSpace(record.IATACode)
		if record.IATACode == "" {
			dropped++
			continue
		}

		airport := &ctdf.Airport{}
		if err := copier.Copy(airport, &record); err != nil {
			return &ctdf.IngestionError{Row: n + 1, Err: err}
		}

		airport.Location = ctdf.Coordinates{
			Latitude:  record.Latitude,
			Longitude: record.Longitude,
		}
		if err := airport.Location.Validate(); err != nil {
			return &ctdf.IngestionError{Row: n + 1, Field: "latitude_deg/longitude_deg", Err: err}
		}

		airports = append(airports, airport)
	}

	log.Info().Int("airports", len(airports)).Int("dropped", dropped).Msg("Parsed airports")

	d.Airports = airports

	return nil
}

func (d *Dataset) Import(ctx context.Context, destination formats.Destination) error {
	return destination.ImportAirports(ctx, d.Airports)
}
