package dataimporter

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/consumer"
	"github.com/travigo/airroute/pkg/database"
	"github.com/travigo/airroute/pkg/dataimporter/datasets"
	"github.com/travigo/airroute/pkg/dataimporter/formats"
	"github.com/travigo/airroute/pkg/dataimporter/formats/flightschedule"
	"github.com/travigo/airroute/pkg/dataimporter/manager"
	"github.com/travigo/airroute/pkg/redis_client"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & convert airport and flight schedule datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Import a registered dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "datasources",
						Usage: "Directory holding the datasource definitions",
						Value: manager.DefaultDataSourcesDirectory,
					},
					&cli.DurationFlag{
						Name:  "repeat-every",
						Usage: "Repeat this import every interval (eg. 6h)",
					},
				},
				Action: func(c *cli.Context) error {
					registered, err := manager.LoadDataSets(c.String("datasources"))
					if err != nil {
						return err
					}

					dataset, err := manager.FindDataset(registered, c.String("id"))
					if err != nil {
						return err
					}

					destination, err := openDestination(dataset.ImportDestination)
					if err != nil {
						return err
					}

					repeatDuration := c.Duration("repeat-every")

					for {
						startTime := time.Now()

						if err := manager.ImportDataset(c.Context, dataset, destination); err != nil {
							return err
						}
						if repeatDuration <= 0 {
							break
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						waitTime := repeatDuration - executionDuration

						if waitTime.Seconds() > 0 {
							select {
							case <-c.Context.Done():
								return nil
							case <-time.After(waitTime):
							}
						}
					}

					return nil
				},
			},
			{
				Name:  "flights",
				Usage: "Publish a flight schedule CSV to the flight schedule queue",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the flight schedule CSV",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					file, err := os.Open(c.String("file"))
					if err != nil {
						return err
					}
					defer file.Close()

					schedule := &flightschedule.Schedule{}
					if err := schedule.ParseFile(file); err != nil {
						return err
					}

					destination, err := openDestination(datasets.ImportDestinationQueue)
					if err != nil {
						return err
					}

					return schedule.Import(c.Context, destination)
				},
			},
			{
				Name:  "list",
				Usage: "List registered datasets",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "datasources",
						Usage: "Directory holding the datasource definitions",
						Value: manager.DefaultDataSourcesDirectory,
					},
				},
				Action: func(c *cli.Context) error {
					registered, err := manager.LoadDataSets(c.String("datasources"))
					if err != nil {
						return err
					}

					for _, dataset := range registered {
						fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\t%s\n", dataset.Identifier, dataset.Format, dataset.ImportDestination, dataset.Source)
					}

					return nil
				},
			},
		},
	}
}

func openDestination(destination datasets.ImportDestination) (formats.Destination, error) {
	switch destination {
	case datasets.ImportDestinationDatabase:
		if err := database.Connect(); err != nil {
			return nil, err
		}

		return database.GlobalFlightStore()
	case datasets.ImportDestinationQueue:
		if err := redis_client.Connect(); err != nil {
			return nil, err
		}

		return consumer.NewFlightSchedulePublisher(redis_client.QueueConnection)
	default:
		return nil, fmt.Errorf("unknown import destination %s", destination)
	}
}

var _ formats.Destination = (*database.FlightStore)(nil)
var _ formats.Destination = (*consumer.FlightSchedulePublisher)(nil)
