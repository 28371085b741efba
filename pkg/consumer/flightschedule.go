package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
)

const (
	FlightScheduleQueue      = "flight-schedule"
	FlightScheduleRetryQueue = "flight-schedule-retry"
)

var ErrAirportsNotQueueable = errors.New("airports can't be imported through the flight schedule queue")

type FlightDataAdder interface {
	AddFlightData(ctx context.Context, flights []ctdf.Flight) error
}

// FlightScheduleConsumer applies each delivery as one flight batch. Invalid batches are rejected,
// batches that failed for any other reason are pushed to the queue's push queue to be tried again.
type FlightScheduleConsumer struct {
	Adder   FlightDataAdder
	Timeout time.Duration
}

func (c *FlightScheduleConsumer) Consume(batch rmq.Deliveries) {
	for _, delivery := range batch {
		if err := c.apply(delivery.Payload()); err != nil {
			var ingestionError *ctdf.IngestionError
			if errors.As(err, &ingestionError) {
				log.Error().Err(err).Msg("Rejecting invalid flight schedule batch")

				if err := delivery.Reject(); err != nil {
					log.Error().Err(err).Msg("Failed to reject flight schedule batch")
				}
				continue
			}

			log.Warn().Err(err).Msg("Failed to apply flight schedule batch, pushing for retry")

			if err := delivery.Push(); err != nil {
				log.Error().Err(err).Msg("Failed to push flight schedule batch")
			}
			continue
		}

		if err := delivery.Ack(); err != nil {
			log.Error().Err(err).Msg("Failed to ack flight schedule batch")
		}
	}
}

func (c *FlightScheduleConsumer) apply(payload string) error {
	var flights []ctdf.Flight
	if err := json.Unmarshal([]byte(payload), &flights); err != nil {
		return &ctdf.IngestionError{Err: err}
	}

	ctx := context.Background()
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if err := c.Adder.AddFlightData(ctx, flights); err != nil {
		return err
	}

	log.Info().Int("flights", len(flights)).Msg("Applied flight schedule batch")

	return nil
}

// FlightSchedulePublisher is the "queue" import destination. Each import becomes a single delivery.
type FlightSchedulePublisher struct {
	queue rmq.Queue
}

func NewFlightSchedulePublisher(connection rmq.Connection) (*FlightSchedulePublisher, error) {
	queue, err := connection.OpenQueue(FlightScheduleQueue)
	if err != nil {
		return nil, err
	}

	return &FlightSchedulePublisher{queue: queue}, nil
}

func (p *FlightSchedulePublisher) ImportFlights(_ context.Context, flights []ctdf.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	if err := p.queue.PublishBytes(payload); err != nil {
		return err
	}

	log.Info().Int("flights", len(flights)).Str("queue", FlightScheduleQueue).Msg("Published flight schedule batch")

	return nil
}

func (p *FlightSchedulePublisher) ImportAirports(context.Context, []*ctdf.Airport) error {
	return ErrAirportsNotQueueable
}
