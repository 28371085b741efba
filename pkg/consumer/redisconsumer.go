package consumer

import (
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

type RedisConsumer struct {
	QueueName string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer

	// Optional. Pushed deliveries are moved here and consumed again by Consumer.
	// Deliveries pushed a second time are rejected.
	RetryQueueName string

	queues []rmq.Queue
}

func (c *RedisConsumer) Setup(connection rmq.Connection) error {
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := c.startQueue(connection, c.QueueName)
	if err != nil {
		return err
	}

	if c.RetryQueueName != "" {
		retryQueue, err := c.startQueue(connection, c.RetryQueueName)
		if err != nil {
			return err
		}

		queue.SetPushQueue(retryQueue)
	}

	return nil
}

func (c *RedisConsumer) startQueue(connection rmq.Connection, name string) (rmq.Queue, error) {
	queue, err := connection.OpenQueue(name)
	if err != nil {
		return nil, err
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), 1*time.Second); err != nil {
		return nil, err
	}
	c.queues = append(c.queues, queue)

	for i := 0; i < c.NumberConsumers; i++ {
		tag := fmt.Sprintf("%s-%d", name, i)
		if _, err := queue.AddBatchConsumer(tag, int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return nil, err
		}

		log.Debug().Str("consumer", tag).Msg("Started consumer")
	}

	return queue, nil
}

// Stop waits for in-flight batches to finish.
func (c *RedisConsumer) Stop() {
	for _, queue := range c.queues {
		<-queue.StopConsuming()
	}
}
