package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/airroute/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFlightStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	departure := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	arrival := time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC)

	mt.Run("insert flights", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := store.InsertFlights(context.Background(), []ctdf.Flight{
			{OriginIATA: "LAX", DestinationIATA: "JFK", Departure: departure, Arrival: arrival},
		})
		require.NoError(mt, err)
	})

	mt.Run("failed insert removes the partial batch", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 1, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := store.InsertFlights(context.Background(), []ctdf.Flight{
			{OriginIATA: "LAX", DestinationIATA: "ORD", Departure: departure, Arrival: arrival},
			{OriginIATA: "ORD", DestinationIATA: "JFK", Departure: departure, Arrival: arrival},
		})
		require.Error(mt, err)

		insert := mt.GetStartedEvent()
		require.NotNil(mt, insert)
		assert.Equal(mt, "insert", insert.CommandName)
		batch := insert.Command.Lookup("documents", "0", "batch").ObjectID()
		assert.Equal(mt, batch, insert.Command.Lookup("documents", "1", "batch").ObjectID())

		remove := mt.GetStartedEvent()
		require.NotNil(mt, remove)
		assert.Equal(mt, "delete", remove.CommandName)
		assert.Equal(mt, batch, remove.Command.Lookup("deletes", "0", "q", "batch").ObjectID())
	})

	mt.Run("failed cleanup is reported", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "cannot delete batch"}),
		)

		err := store.InsertFlights(context.Background(), []ctdf.Flight{
			{OriginIATA: "LAX", DestinationIATA: "JFK", Departure: departure, Arrival: arrival},
		})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "cannot delete batch")
	})

	mt.Run("insert invalid flights writes nothing", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)

		err := store.InsertFlights(context.Background(), []ctdf.Flight{
			{OriginIATA: "LAX", DestinationIATA: "JFK", Departure: arrival, Arrival: departure},
		})

		var ingestionError *ctdf.IngestionError
		require.ErrorAs(mt, err, &ingestionError)
		assert.Equal(mt, 1, ingestionError.Row)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("insert empty batch", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)

		require.NoError(mt, store.InsertFlights(context.Background(), nil))
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("load flights", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)
		namespace := mt.DB.Name() + "." + FlightsCollection

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, namespace, mtest.FirstBatch, bson.D{
				{Key: "originiata", Value: "LAX"},
				{Key: "destinationiata", Value: "JFK"},
				{Key: "departure", Value: primitive.NewDateTimeFromTime(departure)},
				{Key: "arrival", Value: primitive.NewDateTimeFromTime(arrival)},
			}),
			mtest.CreateCursorResponse(0, namespace, mtest.NextBatch),
		)

		flights, err := store.LoadFlights(context.Background())
		require.NoError(mt, err)
		require.Len(mt, flights, 1)
		assert.Equal(mt, "LAX", flights[0].OriginIATA)
		assert.Equal(mt, "JFK", flights[0].DestinationIATA)
		assert.True(mt, departure.Equal(flights[0].Departure))
		assert.True(mt, arrival.Equal(flights[0].Arrival))
	})

	mt.Run("replace airports", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		err := store.ReplaceAirports(context.Background(), []*ctdf.Airport{
			{IATACode: "LAX", Name: "Los Angeles International Airport"},
			{IATACode: "JFK", Name: "John F Kennedy International Airport"},
		})
		require.NoError(mt, err)
	})

	mt.Run("load airports", func(mt *mtest.T) {
		store := NewFlightStore(mt.DB)
		namespace := mt.DB.Name() + "." + AirportsCollection

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, namespace, mtest.FirstBatch, bson.D{
				{Key: "iatacode", Value: "LAX"},
				{Key: "name", Value: "Los Angeles International Airport"},
				{Key: "location", Value: bson.D{
					{Key: "latitude", Value: 33.942501},
					{Key: "longitude", Value: -118.407997},
				}},
			}),
			mtest.CreateCursorResponse(0, namespace, mtest.NextBatch),
		)

		airports, err := store.LoadAirports(context.Background())
		require.NoError(mt, err)
		require.Len(mt, airports, 1)
		assert.Equal(mt, "LAX", airports[0].IATACode)
		assert.InDelta(mt, 33.942501, airports[0].Location.Latitude, 1e-9)
	})
}
