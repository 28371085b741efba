package routes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/geocode"
	"github.com/travigo/airroute/pkg/routeplanner"
)

const (
	missingPointsMessage = "Parameters are required for the origin and destination points:" +
		"latitude_from and longitude_from or address_from; latitude_to and longitude_to or address_to"
	missingDateMessage = "Parameters are required for the date of departure: year, month, day"
)

type RouteSearcher interface {
	SearchRoute(ctx context.Context, search ctdf.RouteSearch) (*ctdf.RoutePlan, error)
}

func RouteRouter(router fiber.Router, searcher RouteSearcher, geocoder geocode.Geocoder) {
	router.Get("/route", func(c *fiber.Ctx) error {
		return getRoute(c, searcher, geocoder)
	})
}

func getRoute(c *fiber.Ctx, searcher RouteSearcher, geocoder geocode.Geocoder) error {
	origin, originOK, err := resolvePoint(c, geocoder, "latitude_from", "longitude_from", "address_from")
	if err != nil {
		return geocodeError(c, err)
	}
	destination, destinationOK, err := resolvePoint(c, geocoder, "latitude_to", "longitude_to", "address_to")
	if err != nil {
		return geocodeError(c, err)
	}

	if !originOK || !destinationOK {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": missingPointsMessage,
		})
	}

	year, yearOK := queryInt(c, "year", 0)
	month, monthOK := queryInt(c, "month", 0)
	day, dayOK := queryInt(c, "day", 0)
	if !yearOK || !monthOK || !dayOK {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": missingDateMessage,
		})
	}

	hour, hourErr := optionalQueryInt(c, "hour")
	minute, minuteErr := optionalQueryInt(c, "minute")
	if err := errors.Join(hourErr, minuteErr); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error":    "InvalidDate",
			"detailed": err.Error(),
		})
	}

	departureTime, err := departureDate(year, month, day, hour, minute)
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error":    "InvalidDate",
			"detailed": err.Error(),
		})
	}

	plan, err := searcher.SearchRoute(c.UserContext(), ctdf.RouteSearch{
		Origin:        origin,
		Destination:   destination,
		DepartureTime: departureTime,
		Filter:        c.Query("filter"),
	})
	switch {
	case errors.Is(err, ctdf.ErrInvalidCoordinate), errors.Is(err, routeplanner.ErrInvalidFilter):
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	case err != nil:
		log.Error().Err(err).Msg("Route search failed")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Route search failed",
		})
	}

	if !plan.Found {
		return c.JSON(fiber.Map{
			"route": "Not found",
		})
	}

	groups := []string{"basic", "detailed"}
	if c.Query("detail") == "basic" {
		groups = []string{"basic"}
	}

	reducedPlan, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, plan)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce route plan",
		})
	}

	return c.JSON(reducedPlan)
}

// resolvePoint prefers the address over raw coordinates. ok is false when neither was given.
func resolvePoint(c *fiber.Ctx, geocoder geocode.Geocoder, latitudeKey, longitudeKey, addressKey string) (ctdf.Coordinates, bool, error) {
	if address := c.Query(addressKey); address != "" {
		coordinates, err := geocoder.Geocode(c.UserContext(), address)
		if err != nil {
			return ctdf.Coordinates{}, false, err
		}

		return coordinates, true, nil
	}

	latitude, latitudeOK := queryFloat(c, latitudeKey)
	longitude, longitudeOK := queryFloat(c, longitudeKey)

	return ctdf.Coordinates{Latitude: latitude, Longitude: longitude}, latitudeOK && longitudeOK, nil
}

func geocodeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, geocode.ErrNoResults):
		c.Status(fiber.StatusBadRequest)
	case errors.Is(err, geocode.ErrNotConfigured):
		c.Status(fiber.StatusServiceUnavailable)
	default:
		log.Error().Err(err).Msg("Geocoding failed")
		c.Status(fiber.StatusBadGateway)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func departureDate(year, month, day, hour, minute int) (time.Time, error) {
	departureTime := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)

	if departureTime.Year() != year || int(departureTime.Month()) != month || departureTime.Day() != day ||
		departureTime.Hour() != hour || departureTime.Minute() != minute {
		return time.Time{}, errors.New("date of departure is out of range")
	}

	return departureTime, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, bool) {
	value := c.Query(key)
	if value == "" {
		return fallback, false
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, false
	}

	return n, true
}

// optionalQueryInt is 0 when key is absent, and an error when it is present but not a number
func optionalQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := c.Query(key)
	if value == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", key, value)
	}

	return n, nil
}

func queryFloat(c *fiber.Ctx, key string) (float64, bool) {
	value := c.Query(key)
	if value == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}
