package routeplanner

import (
	"fmt"
	"strconv"

	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/airroute/pkg/airportindex"
	"github.com/travigo/airroute/pkg/util"
)

type Config struct {
	// How many airports around the origin and destination coordinates are considered
	NearestAirports int

	// First leg must depart within this long of the requested departure time
	FirstLayerWindow iso8601.Duration

	// Every leg of every itinerary must depart within this long of the requested departure time.
	// This is a fixed cap for the whole search, it is not extended per hop.
	ConsiderationWindow iso8601.Duration

	// Connections must leave at least MinimumConnection and less than MaximumConnection after the arrival
	MinimumConnection iso8601.Duration
	MaximumConnection iso8601.Duration

	// Upper bound on goroutines used to expand a single layer
	MaxExpansionWorkers int
}

func DefaultConfig() Config {
	return Config{
		NearestAirports:     airportindex.DefaultNearestCount,
		FirstLayerWindow:    mustParseDuration("P1D"),
		ConsiderationWindow: mustParseDuration("P2D"),
		MinimumConnection:   mustParseDuration("PT1H"),
		MaximumConnection:   mustParseDuration("P1D"),
		MaxExpansionWorkers: 16,
	}
}

// ConfigFromEnvironment starts from DefaultConfig and overrides values from AIRROUTE_* variables
func ConfigFromEnvironment() (Config, error) {
	config := DefaultConfig()
	env := util.GetEnvironmentVariables()

	if value := env["AIRROUTE_NEAREST_AIRPORTS"]; value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return config, fmt.Errorf("AIRROUTE_NEAREST_AIRPORTS must be a positive integer, got %q", value)
		}
		config.NearestAirports = n
	}

	if value := env["AIRROUTE_EXPANSION_WORKERS"]; value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return config, fmt.Errorf("AIRROUTE_EXPANSION_WORKERS must be a positive integer, got %q", value)
		}
		config.MaxExpansionWorkers = n
	}

	durations := map[string]*iso8601.Duration{
		"AIRROUTE_FIRST_LAYER_WINDOW":   &config.FirstLayerWindow,
		"AIRROUTE_CONSIDERATION_WINDOW": &config.ConsiderationWindow,
		"AIRROUTE_MINIMUM_CONNECTION":   &config.MinimumConnection,
		"AIRROUTE_MAXIMUM_CONNECTION":   &config.MaximumConnection,
	}

	for name, destination := range durations {
		value := env[name]
		if value == "" {
			continue
		}

		parsed, err := iso8601.ParseISO8601(value)
		if err != nil {
			return config, fmt.Errorf("%s: %w", name, err)
		}
		*destination = parsed
	}

	return config, nil
}

func mustParseDuration(value string) iso8601.Duration {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		panic(err)
	}

	return parsed
}
