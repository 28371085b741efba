package geocode

import (
	"context"
	"errors"

	"github.com/travigo/airroute/pkg/ctdf"
)

var (
	ErrNoResults     = errors.New("address could not be geocoded")
	ErrNotConfigured = errors.New("geocoding is not configured")
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (ctdf.Coordinates, error)
}

// Unconfigured rejects every address. Used when no geocoding API key is set.
type Unconfigured struct{}

func (Unconfigured) Geocode(context.Context, string) (ctdf.Coordinates, error) {
	return ctdf.Coordinates{}, ErrNotConfigured
}
