package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/flightcatalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FlightStore persists airports and flights. It is also the "database" import destination.
type FlightStore struct {
	airports *mongo.Collection
	flights  *mongo.Collection
}

func NewFlightStore(database *mongo.Database) *FlightStore {
	return &FlightStore{
		airports: database.Collection(AirportsCollection),
		flights:  database.Collection(FlightsCollection),
	}
}

// flightDocument is a stored flight. Batch ties it to the InsertFlights call that wrote it.
type flightDocument struct {
	ctdf.Flight `bson:",inline"`

	Batch primitive.ObjectID `bson:"batch"`
}

// InsertFlights validates the batch before writing anything. If the write fails part way
// the documents already written for this batch are removed again.
func (s *FlightStore) InsertFlights(ctx context.Context, flights []ctdf.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	if err := flightcatalog.Validate(flights); err != nil {
		return err
	}

	batch := primitive.NewObjectID()

	documents := make([]interface{}, len(flights))
	for i, flight := range flights {
		documents[i] = flightDocument{Flight: flight, Batch: batch}
	}

	result, err := s.flights.InsertMany(ctx, documents, options.InsertMany().SetOrdered(true))
	if err != nil {
		if cleanupErr := s.removeBatch(ctx, batch); cleanupErr != nil {
			log.Error().Err(cleanupErr).Str("batch", batch.Hex()).Msg("Failed to remove partially stored flights")
			return fmt.Errorf("insert flights: %w", errors.Join(err, cleanupErr))
		}

		return fmt.Errorf("insert flights: %w", err)
	}

	log.Info().Int("inserted", len(result.InsertedIDs)).Str("batch", batch.Hex()).Msg("Stored flights")

	return nil
}

func (s *FlightStore) removeBatch(ctx context.Context, batch primitive.ObjectID) error {
	// The insert may have failed because ctx ended
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	result, err := s.flights.DeleteMany(ctx, bson.M{"batch": batch})
	if err != nil {
		return err
	}

	log.Warn().Int64("removed", result.DeletedCount).Str("batch", batch.Hex()).Msg("Removed partially stored flights")

	return nil
}

func (s *FlightStore) LoadFlights(ctx context.Context) ([]ctdf.Flight, error) {
	cursor, err := s.flights.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "departure", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find flights: %w", err)
	}

	var flights []ctdf.Flight
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, fmt.Errorf("decode flights: %w", err)
	}

	return flights, nil
}

// ReplaceAirports upserts each airport by IATA code.
func (s *FlightStore) ReplaceAirports(ctx context.Context, airports []*ctdf.Airport) error {
	if len(airports) == 0 {
		return nil
	}

	var operations []mongo.WriteModel
	for _, airport := range airports {
		operations = append(operations, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"iatacode": airport.IATACode}).
			SetReplacement(airport).
			SetUpsert(true))
	}

	result, err := s.airports.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("replace airports: %w", err)
	}

	log.Info().
		Int64("upserted", result.UpsertedCount).
		Int64("modified", result.ModifiedCount).
		Msg("Stored airports")

	return nil
}

func (s *FlightStore) LoadAirports(ctx context.Context) ([]*ctdf.Airport, error) {
	cursor, err := s.airports.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find airports: %w", err)
	}

	var airports []*ctdf.Airport
	if err := cursor.All(ctx, &airports); err != nil {
		return nil, fmt.Errorf("decode airports: %w", err)
	}

	return airports, nil
}

func (s *FlightStore) ImportAirports(ctx context.Context, airports []*ctdf.Airport) error {
	return s.ReplaceAirports(ctx, airports)
}

func (s *FlightStore) ImportFlights(ctx context.Context, flights []ctdf.Flight) error {
	return s.InsertFlights(ctx, flights)
}
