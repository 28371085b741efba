package redis_client

import (
	"context"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultDatabase = 0

const queueConnectionTag = "airroute"

func Connect() error {
	env := util.GetEnvironmentVariables()

	address := defaultConnectionAddress
	database := defaultDatabase

	if env["AIRROUTE_REDIS_ADDRESS"] != "" {
		address = env["AIRROUTE_REDIS_ADDRESS"]
	}

	if env["AIRROUTE_REDIS_DATABASE"] != "" {
		n, err := strconv.Atoi(env["AIRROUTE_REDIS_DATABASE"])
		if err != nil {
			return err
		}
		database = n
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: env["AIRROUTE_REDIS_PASSWORD"],
		DB:       database,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	var err error
	QueueConnection, err = rmq.OpenConnectionWithRedisClient(queueConnectionTag, Client, nil)
	if err != nil {
		return err
	}

	log.Info().Str("address", address).Int("database", database).Msg("Connected to Redis")

	return nil
}

func Configured() bool {
	return util.GetEnvironmentVariable("AIRROUTE_REDIS_ADDRESS", "") != ""
}
