package api

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/api/routes"
	"github.com/travigo/airroute/pkg/consumer"
	"github.com/travigo/airroute/pkg/database"
	"github.com/travigo/airroute/pkg/elastic_client"
	"github.com/travigo/airroute/pkg/geocode"
	"github.com/travigo/airroute/pkg/redis_client"
	"github.com/travigo/airroute/pkg/routeplanner"
	"github.com/travigo/airroute/pkg/routeservice"
	"github.com/travigo/airroute/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the route search web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "airports",
						Usage: "OurAirports CSV path or URL, serves from memory instead of MongoDB",
					},
					&cli.StringFlag{
						Name:  "flights",
						Usage: "Flight schedule CSV path or URL loaded at startup (requires --airports)",
					},
				},
				Action: func(c *cli.Context) error {
					ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					config, err := routeplanner.ConfigFromEnvironment()
					if err != nil {
						return err
					}

					server := &Server{
						HealthChecks: map[string]routes.HealthCheck{},
					}

					if c.String("airports") != "" {
						server.Service, err = routeservice.LoadFromSources(ctx, c.String("airports"), c.String("flights"), config)
					} else {
						server.Service, err = routeservice.LoadFromDatabase(ctx, config)
						server.HealthChecks["mongodb"] = func(ctx context.Context) error {
							return database.MongoGlobalInstance.Client.Ping(ctx, nil)
						}
					}
					if err != nil {
						return err
					}

					if err := elastic_client.Connect(); err != nil {
						return err
					}

					var geocoder geocode.Geocoder = geocode.Unconfigured{}
					if apiKey := util.GetEnvironmentVariable("AIRROUTE_ORS_API_KEY", ""); apiKey != "" {
						geocoder = geocode.NewOpenRouteService(apiKey)
					}

					var flightConsumer *consumer.RedisConsumer
					if redis_client.Configured() {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						geocoder = geocode.NewRedisCached(geocoder, redis_client.Client)

						flightConsumer = &consumer.RedisConsumer{
							QueueName:       consumer.FlightScheduleQueue,
							RetryQueueName:  consumer.FlightScheduleRetryQueue,
							NumberConsumers: 1,
							BatchSize:       10,
							Timeout:         2 * time.Second,
							Consumer: &consumer.FlightScheduleConsumer{
								Adder:   server.Service,
								Timeout: 5 * time.Minute,
							},
						}
						if err := flightConsumer.Setup(redis_client.QueueConnection); err != nil {
							return err
						}

						server.QueueConnection = redis_client.QueueConnection
						server.HealthChecks["redis"] = func(ctx context.Context) error {
							return redis_client.Client.Ping(ctx).Err()
						}
					}

					server.Geocoder = geocoder

					app := server.App()

					go func() {
						<-ctx.Done()
						log.Info().Msg("Shutting down web api")

						if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
							log.Error().Err(err).Msg("Failed to shutdown web api")
						}
					}()

					log.Info().Str("listen", c.String("listen")).Msg("Starting web api")
					err = app.Listen(c.String("listen"))

					if flightConsumer != nil {
						flightConsumer.Stop()
					}
					elastic_client.WaitUntilQueueEmpty()
					if dbErr := database.Disconnect(context.Background()); dbErr != nil {
						log.Error().Err(dbErr).Msg("Failed to disconnect from MongoDB")
					}

					return err
				},
			},
		},
	}
}
