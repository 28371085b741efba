package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	AirportsCollection = "airports"
	FlightsCollection  = "flights"
)

func createIndexes(ctx context.Context, database *mongo.Database) {
	createAirportsIndexes(ctx, database)
	createFlightsIndexes(ctx, database)
}

func createAirportsIndexes(ctx context.Context, database *mongo.Database) {
	airportsCollection := database.Collection(AirportsCollection)
	_, err := airportsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "iatacode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", AirportsCollection).Msg("Creating Index")
	}
}

func createFlightsIndexes(ctx context.Context, database *mongo.Database) {
	flightsCollection := database.Collection(FlightsCollection)
	originDepartureIndexName := "OriginDeparture"
	_, err := flightsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Options: &options.IndexOptions{
				Name: &originDepartureIndexName,
			},
			Keys: bson.D{
				{Key: "originiata", Value: 1},
				{Key: "departure", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "destinationiata", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "batch", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", FlightsCollection).Msg("Creating Index")
	}
}
