package ctdf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutePlanJSON(t *testing.T) {
	plan := RoutePlan{
		Found:         true,
		DepartureTime: RouteTime{Time: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
		ArrivalTime:   RouteTime{Time: time.Date(2024, 1, 2, 1, 5, 30, 0, time.UTC)},
		TotalLayover:  Layover{Duration: 105 * time.Minute},
	}

	encoded, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "2024-01-01 08:00", decoded["departure_date"])
	assert.Equal(t, "2024-01-02 01:05", decoded["arrive_date"])
	assert.Equal(t, 105.0, decoded["total_layover_minutes"])
	assert.NotContains(t, decoded, "Found")

	var back RoutePlan
	require.NoError(t, json.Unmarshal(encoded, &back))
	assert.True(t, plan.DepartureTime.Equal(back.DepartureTime.Time))
	assert.Equal(t, plan.TotalLayover, back.TotalLayover)
}

func TestRouteTimeUnmarshalRejectsRFC3339(t *testing.T) {
	var routeTime RouteTime
	assert.Error(t, json.Unmarshal([]byte(`"2024-01-01T08:00:00Z"`), &routeTime))
}

func TestRoutePlanLayovers(t *testing.T) {
	at := func(hour, minute int) RouteTime {
		return RouteTime{Time: time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)}
	}

	plan := RoutePlan{
		Legs: []RouteLeg{
			{DepartureTime: at(8, 0), ArrivalTime: at(10, 0)},
			{DepartureTime: at(11, 30), ArrivalTime: at(14, 0)},
		},
	}

	assert.Equal(t, 2*time.Hour, plan.Legs[0].Duration())
	assert.Equal(t, []time.Duration{90 * time.Minute}, plan.Layovers())
}
