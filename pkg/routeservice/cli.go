package routeservice

import (
	"fmt"
	"time"

	"github.com/kr/pretty"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/routeplanner"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search for the route with the least layover between two points",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "latitude-from", Required: true},
			&cli.Float64Flag{Name: "longitude-from", Required: true},
			&cli.Float64Flag{Name: "latitude-to", Required: true},
			&cli.Float64Flag{Name: "longitude-to", Required: true},
			&cli.TimestampFlag{
				Name:     "departure",
				Usage:    "Earliest departure (eg. 2024-01-01T08:00)",
				Layout:   "2006-01-02T15:04",
				Timezone: time.UTC,
				Required: true,
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "Expression every used flight must satisfy (eg. OriginIATA != \"ORD\")",
			},
			&cli.StringFlag{
				Name:  "airports",
				Usage: "OurAirports CSV path or URL, searches in memory instead of MongoDB",
			},
			&cli.StringFlag{
				Name:  "flights",
				Usage: "Flight schedule CSV path or URL (requires --airports)",
			},
		},
		Action: func(c *cli.Context) error {
			config, err := routeplanner.ConfigFromEnvironment()
			if err != nil {
				return err
			}

			var service *Service
			if c.String("airports") != "" {
				service, err = LoadFromSources(c.Context, c.String("airports"), c.String("flights"), config)
			} else {
				service, err = LoadFromDatabase(c.Context, config)
			}
			if err != nil {
				return err
			}

			plan, err := service.Planner.SearchRoute(c.Context, ctdf.RouteSearch{
				Origin: ctdf.Coordinates{
					Latitude:  c.Float64("latitude-from"),
					Longitude: c.Float64("longitude-from"),
				},
				Destination: ctdf.Coordinates{
					Latitude:  c.Float64("latitude-to"),
					Longitude: c.Float64("longitude-to"),
				},
				DepartureTime: *c.Timestamp("departure"),
				Filter:        c.String("filter"),
			})
			if err != nil {
				return err
			}

			if !plan.Found {
				fmt.Fprintln(c.App.Writer, "Not found")
				return nil
			}

			pretty.Fprintf(c.App.Writer, "%# v\n", plan)

			return nil
		},
	}
}
