package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
)

const DefaultOpenRouteServiceURL = "https://api.openrouteservice.org"

const maxAttempts = 4

type OpenRouteService struct {
	BaseURL string
	APIKey  string

	HTTPClient *http.Client
}

func NewOpenRouteService(apiKey string) *OpenRouteService {
	return &OpenRouteService{
		BaseURL:    DefaultOpenRouteServiceURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Geocode returns the best match for address. Network errors, 429 and 5xx responses are retried.
func (o *OpenRouteService) Geocode(ctx context.Context, address string) (ctdf.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return ctdf.Coordinates{}, ErrNoResults
	}

	retryBackoff := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(backoff.WithInitialInterval(200*time.Millisecond)), maxAttempts-1),
		ctx,
	)

	var decoded geocodeResponse
	err := backoff.RetryNotify(func() error {
		return o.search(ctx, address, &decoded)
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("address", address).Dur("wait", wait).Msg("Retrying geocode request")
	})
	if err != nil {
		return ctdf.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	if len(decoded.Features) == 0 {
		return ctdf.Coordinates{}, fmt.Errorf("%w: %q", ErrNoResults, address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return ctdf.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return ctdf.Coordinates{
		Latitude:  coords[1],
		Longitude: coords[0],
	}, nil
}

func (o *OpenRouteService) search(ctx context.Context, address string, decoded *geocodeResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"/geocode/search", nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Authorization", o.APIKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("text", address)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return err
		}
		return backoff.Permanent(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		statusError := &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}

		switch resp.StatusCode {
		case 429, 500, 502, 503, 504:
			return statusError
		default:
			return backoff.Permanent(statusError)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(decoded); err != nil {
		return backoff.Permanent(fmt.Errorf("decode geocode response: %w", err))
	}

	return nil
}
