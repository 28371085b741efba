package api

import (
	"github.com/adjust/rmq/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/airroute/pkg/api/routes"
	"github.com/travigo/airroute/pkg/geocode"
	"github.com/travigo/airroute/pkg/routeservice"
)

type Server struct {
	Service  *routeservice.Service
	Geocoder geocode.Geocoder

	HealthChecks map[string]routes.HealthCheck

	// Optional, exposes the rmq queue overview when set
	QueueConnection rmq.Connection
}

func (s *Server) App() *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	geocoder := s.Geocoder
	if geocoder == nil {
		geocoder = geocode.Unconfigured{}
	}

	webApp.Get("/version", routes.APIVersion)

	routes.RouteRouter(webApp, s.Service, geocoder)
	routes.FlightDataRouter(webApp, s.Service)
	routes.HealthRouter(webApp, s.HealthChecks)

	if s.QueueConnection != nil {
		routes.QueueStatsRouter(webApp, s.QueueConnection)
	}

	return webApp
}
