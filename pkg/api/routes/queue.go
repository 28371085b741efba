package routes

import (
	"github.com/adjust/rmq/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/airroute/pkg/consumer"
)

func QueueStatsRouter(router fiber.Router, connection rmq.Connection) {
	router.Get("/queue/stats", func(c *fiber.Ctx) error {
		html, err := consumer.StatsHTML(connection, c.Query("layout"), c.Query("refresh"))
		if err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Type("html")
		return c.SendString(html)
	})
}
