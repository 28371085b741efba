package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/dataimporter/datasets"
	"github.com/travigo/airroute/pkg/dataimporter/formats"
	"github.com/travigo/airroute/pkg/dataimporter/formats/flightschedule"
	"github.com/travigo/airroute/pkg/dataimporter/formats/ourairports"
)

var ErrDatasetNotFound = errors.New("dataset could not be found")

func FindDataset(registered []datasets.DataSet, identifier string) (datasets.DataSet, error) {
	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, identifier)
}

func NewFormat(format datasets.DataSetFormat) (formats.Format, error) {
	switch format {
	case datasets.DataSetFormatOurAirports:
		return &ourairports.Dataset{}, nil
	case datasets.DataSetFormatFlightSchedule:
		return &flightschedule.Schedule{}, nil
	default:
		return nil, fmt.Errorf("unrecognised format %s", format)
	}
}

// ImportDataset fetches, parses and hands the dataset to destination. Nothing reaches the destination
// unless the whole source parsed.
func ImportDataset(ctx context.Context, dataset datasets.DataSet, destination formats.Destination) error {
	log.Info().Str("dataset", dataset.Identifier).Str("format", string(dataset.Format)).Msg("Importing dataset")

	format, err := NewFormat(dataset.Format)
	if err != nil {
		return err
	}

	source, err := openSource(ctx, dataset.Source)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := format.ParseFile(source); err != nil {
		return fmt.Errorf("parse %s: %w", dataset.Identifier, err)
	}

	if err := format.Import(ctx, destination); err != nil {
		return fmt.Errorf("import %s: %w", dataset.Identifier, err)
	}

	log.Info().Str("dataset", dataset.Identifier).Msg("Imported dataset")

	return nil
}

func openSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if !isValidUrl(source) {
		return os.Open(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "airroute-data-importer")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download %s: unexpected status %d", source, resp.StatusCode)
	}

	return resp.Body, nil
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
