package flightschedule

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/airroute/pkg/ctdf"
)

const scheduleCSV = `Year,Month,DayofMonth,DayOfWeek,DepTime,CRSDepTime,ArrTime,CRSArrTime,UniqueCarrier,FlightNum,Origin,Dest
2024,1,1,1,812,800,1602,1600,AA,1,LAX,JFK
2024,1,1,1,2310,2300,605,600,AA,2,LAX,JFK
2024,1,31,3,,2345,,2400,DL,3,ORD,ATL
`

func TestParseFile(t *testing.T) {
	schedule := &Schedule{}
	require.NoError(t, schedule.ParseFile(strings.NewReader(scheduleCSV)))

	require.Len(t, schedule.Flights, 3)

	assert.Equal(t, ctdf.Flight{
		OriginIATA:      "LAX",
		DestinationIATA: "JFK",
		Departure:       time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
		Arrival:         time.Date(2024, time.January, 1, 16, 0, 0, 0, time.UTC),
	}, schedule.Flights[0])

	// Overnight flight arrives the next day
	assert.Equal(t, time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC), schedule.Flights[1].Departure)
	assert.Equal(t, time.Date(2024, time.January, 2, 6, 0, 0, 0, time.UTC), schedule.Flights[1].Arrival)

	// 2400 is midnight at the end of the day
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), schedule.Flights[2].Arrival)

	for _, flight := range schedule.Flights {
		assert.False(t, flight.Arrival.Before(flight.Departure))
	}
}

func TestParseFileRejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		row   int
		field string
	}{
		{
			name: "bad clock time",
			input: `Year,Month,DayofMonth,CRSDepTime,CRSArrTime,Origin,Dest
2024,1,1,800,1600,LAX,JFK
2024,1,1,875,1600,LAX,JFK
`,
			row:   2,
			field: "CRSDepTime",
		},
		{
			name: "missing destination",
			input: `Year,Month,DayofMonth,CRSDepTime,CRSArrTime,Origin,Dest
2024,1,1,800,1600,LAX,
`,
			row:   1,
			field: "Dest",
		},
		{
			name: "invalid day",
			input: `Year,Month,DayofMonth,CRSDepTime,CRSArrTime,Origin,Dest
2024,2,30,800,1600,LAX,JFK
`,
			row:   1,
			field: "DayofMonth",
		},
		{
			name: "missing date columns",
			input: `CRSDepTime,CRSArrTime,Origin,Dest
800,1600,LAX,JFK
`,
			row:   1,
			field: "Year/Month/DayofMonth",
		},
		{
			name: "not a number",
			input: `Year,Month,DayofMonth,CRSDepTime,CRSArrTime,Origin,Dest
2024,1,1,eight,1600,LAX,JFK
`,
			row: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := &Schedule{}
			err := schedule.ParseFile(strings.NewReader(tt.input))

			var ingestionError *ctdf.IngestionError
			require.ErrorAs(t, err, &ingestionError)
			assert.Equal(t, tt.row, ingestionError.Row)
			assert.Equal(t, tt.field, ingestionError.Field)
			assert.Empty(t, schedule.Flights)
		})
	}
}

func TestParseFileEmpty(t *testing.T) {
	schedule := &Schedule{}
	require.NoError(t, schedule.ParseFile(strings.NewReader("Year,Month,DayofMonth,CRSDepTime,CRSArrTime,Origin,Dest\n")))

	assert.Empty(t, schedule.Flights)
}

type flightsDestination struct {
	flights []ctdf.Flight
}

func (d *flightsDestination) ImportAirports(context.Context, []*ctdf.Airport) error {
	return nil
}

func (d *flightsDestination) ImportFlights(_ context.Context, flights []ctdf.Flight) error {
	d.flights = append(d.flights, flights...)
	return nil
}

func TestImport(t *testing.T) {
	schedule := &Schedule{}
	require.NoError(t, schedule.ParseFile(strings.NewReader(scheduleCSV)))

	destination := &flightsDestination{}
	require.NoError(t, schedule.Import(context.Background(), destination))

	assert.Equal(t, schedule.Flights, destination.flights)
}
