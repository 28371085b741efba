package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/dataimporter/formats/flightschedule"
)

type FlightDataAdder interface {
	AddFlightData(ctx context.Context, flights []ctdf.Flight) error
}

func FlightDataRouter(router fiber.Router, adder FlightDataAdder) {
	router.Post("/flight_data", func(c *fiber.Ctx) error {
		return postFlightData(c, adder)
	})
}

func postFlightData(c *fiber.Ctx, adder FlightDataAdder) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Multipart parameter file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer file.Close()

	schedule := &flightschedule.Schedule{}
	err = schedule.ParseFile(file)
	if err == nil {
		err = adder.AddFlightData(c.UserContext(), schedule.Flights)
	}

	var ingestionError *ctdf.IngestionError
	switch {
	case errors.As(err, &ingestionError):
		c.Status(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"error": ingestionError.Error(),
			"row":   ingestionError.Row,
			"field": ingestionError.Field,
		})
	case err != nil:
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("Failed to add flight data")

		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Flight data could not be stored",
		})
	}

	log.Info().Str("file", fileHeader.Filename).Int("flights", len(schedule.Flights)).Msg("Added flight data")

	return c.JSON(fiber.Map{
		"result": "OK",
	})
}
