package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthCheck func(ctx context.Context) error

func HealthRouter(router fiber.Router, checks map[string]HealthCheck) {
	router.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		results := fiber.Map{}
		healthy := true

		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				healthy = false
			} else {
				results[name] = "OK"
			}
		}

		if !healthy {
			c.Status(fiber.StatusServiceUnavailable)
		}

		return c.JSON(fiber.Map{
			"healthy": healthy,
			"checks":  results,
		})
	})
}
