package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

var ErrNotConnected = errors.New("mongodb is not connected")

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "airroute"

func Connect() error {
	env := util.GetEnvironmentVariables()

	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	if env["AIRROUTE_MONGODB_CONNECTION"] != "" {
		connectionString = env["AIRROUTE_MONGODB_CONNECTION"]
	}

	if env["AIRROUTE_MONGODB_DATABASE"] != "" {
		dbName = env["AIRROUTE_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes(ctx, MongoGlobalInstance.Database)

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	return nil
}

func Disconnect(ctx context.Context) error {
	if MongoGlobalInstance == nil {
		return nil
	}

	return MongoGlobalInstance.Client.Disconnect(ctx)
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

// GlobalFlightStore returns a store over the connected database.
func GlobalFlightStore() (*FlightStore, error) {
	if MongoGlobalInstance == nil {
		return nil, ErrNotConnected
	}

	return NewFlightStore(MongoGlobalInstance.Database), nil
}
