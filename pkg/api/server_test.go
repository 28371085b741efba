package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/airroute/pkg/api/routes"
	"github.com/travigo/airroute/pkg/ctdf"
	"github.com/travigo/airroute/pkg/geocode"
	"github.com/travigo/airroute/pkg/routeplanner"
	"github.com/travigo/airroute/pkg/routeservice"
)

const losAngelesToNewYork = "/route?latitude_from=34.05&longitude_from=-118.25&latitude_to=40.71&longitude_to=-74.0&year=2024&month=1&day=1"

type fixedGeocoder map[string]ctdf.Coordinates

func (f fixedGeocoder) Geocode(_ context.Context, address string) (ctdf.Coordinates, error) {
	coordinates, ok := f[address]
	if !ok {
		return ctdf.Coordinates{}, geocode.ErrNoResults
	}

	return coordinates, nil
}

func newTestApp(t *testing.T, flights ...ctdf.Flight) (*fiber.App, *routeservice.Service) {
	t.Helper()

	config := routeplanner.DefaultConfig()
	config.NearestAirports = 1

	service, err := routeservice.New([]*ctdf.Airport{
		{IATACode: "LAX", Name: "Los Angeles International Airport", Location: ctdf.Coordinates{Latitude: 33.9425, Longitude: -118.408}},
		{IATACode: "ORD", Name: "Chicago O'Hare International Airport", Location: ctdf.Coordinates{Latitude: 41.9786, Longitude: -87.9048}},
		{IATACode: "JFK", Name: "John F Kennedy International Airport", Location: ctdf.Coordinates{Latitude: 40.6398, Longitude: -73.7789}},
	}, nil, config)
	require.NoError(t, err)
	require.NoError(t, service.AddFlightData(context.Background(), flights))

	server := &Server{
		Service: service,
		Geocoder: fixedGeocoder{
			"Hollywood":    {Latitude: 34.0928, Longitude: -118.3287},
			"Times Square": {Latitude: 40.7580, Longitude: -73.9855},
		},
		HealthChecks: map[string]routes.HealthCheck{
			"memory": func(context.Context) error { return nil },
		},
	}

	return server.App(), service
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded), string(body))

	return resp.StatusCode, decoded
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()

	return doRequest(t, app, httptest.NewRequest(http.MethodGet, target, nil))
}

func directFlight() ctdf.Flight {
	return ctdf.Flight{
		OriginIATA:      "LAX",
		DestinationIATA: "JFK",
		Departure:       time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Arrival:         time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC),
	}
}

func TestVersion(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/version")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, routes.Version, body["version"])
}

func TestRouteFound(t *testing.T) {
	app, _ := newTestApp(t, directFlight())

	status, body := get(t, app, losAngelesToNewYork)
	require.Equal(t, http.StatusOK, status)

	legs, ok := body["route"].([]any)
	require.True(t, ok)
	require.Len(t, legs, 1)

	leg := legs[0].(map[string]any)
	assert.Equal(t, "LAX", leg["departure_iata_code"])
	assert.Equal(t, "JFK", leg["arrive_iata_code"])
	assert.Equal(t, "Los Angeles International Airport", leg["departure_airport"])
	assert.Equal(t, "2024-01-01 08:00", leg["departure_date"])
	assert.Equal(t, "2024-01-01 16:30", leg["arrive_date"])

	assert.Equal(t, "2024-01-01 08:00", body["departure_date"])
	assert.Equal(t, "2024-01-01 16:30", body["arrive_date"])
	assert.Equal(t, 0.0, body["total_layover_minutes"])
}

func TestRouteBasicDetail(t *testing.T) {
	app, _ := newTestApp(t, directFlight())

	status, body := get(t, app, losAngelesToNewYork+"&detail=basic")
	require.Equal(t, http.StatusOK, status)

	leg := body["route"].([]any)[0].(map[string]any)
	assert.Equal(t, "LAX", leg["departure_iata_code"])
	assert.NotContains(t, leg, "departure_airport")
	assert.NotContains(t, leg, "departure_latitude")
}

func TestRouteNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, losAngelesToNewYork)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Not found", body["route"])
}

func TestRouteByAddress(t *testing.T) {
	app, _ := newTestApp(t, directFlight())

	status, body := get(t, app, "/route?address_from=Hollywood&address_to=Times%20Square&year=2024&month=1&day=1&hour=6")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["route"], 1)

	status, body = get(t, app, "/route?address_from=Atlantis&address_to=Times%20Square&year=2024&month=1&day=1")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "could not be geocoded")
}

func TestRouteBadRequests(t *testing.T) {
	app, _ := newTestApp(t, directFlight())

	tests := []struct {
		name   string
		target string
		error  string
	}{
		{
			name:   "missing destination",
			target: "/route?latitude_from=34.05&longitude_from=-118.25&year=2024&month=1&day=1",
			error:  "Parameters are required for the origin and destination points:latitude_from and longitude_from or address_from; latitude_to and longitude_to or address_to",
		},
		{
			name:   "unparsable latitude",
			target: "/route?latitude_from=north&longitude_from=-118.25&latitude_to=40.71&longitude_to=-74.0&year=2024&month=1&day=1",
			error:  "Parameters are required for the origin and destination points:latitude_from and longitude_from or address_from; latitude_to and longitude_to or address_to",
		},
		{
			name:   "missing day",
			target: "/route?latitude_from=34.05&longitude_from=-118.25&latitude_to=40.71&longitude_to=-74.0&year=2024&month=1",
			error:  "Parameters are required for the date of departure: year, month, day",
		},
		{
			name:   "invalid month",
			target: "/route?latitude_from=34.05&longitude_from=-118.25&latitude_to=40.71&longitude_to=-74.0&year=2024&month=13&day=1",
			error:  "InvalidDate",
		},
		{
			name:   "invalid hour",
			target: losAngelesToNewYork + "&hour=25",
			error:  "InvalidDate",
		},
		{
			name:   "non-numeric hour",
			target: losAngelesToNewYork + "&hour=abc",
			error:  "InvalidDate",
		},
		{
			name:   "non-numeric minute",
			target: losAngelesToNewYork + "&hour=6&minute=half",
			error:  "InvalidDate",
		},
		{
			name:   "latitude out of range",
			target: "/route?latitude_from=134.05&longitude_from=-118.25&latitude_to=40.71&longitude_to=-74.0&year=2024&month=1&day=1",
			error:  "invalid coordinate: latitude 134.05",
		},
		{
			name:   "invalid filter",
			target: losAngelesToNewYork + "&filter=OriginIATA%20%2B",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, body := get(t, app, test.target)
			assert.Equal(t, http.StatusBadRequest, status)
			if test.error != "" {
				assert.Equal(t, test.error, body["error"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestRouteFilter(t *testing.T) {
	app, _ := newTestApp(t, directFlight())

	status, body := get(t, app, losAngelesToNewYork+"&filter=DestinationIATA%20!%3D%20%22JFK%22")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Not found", body["route"])
}

func multipartUpload(t *testing.T, field string, contents string) *http.Request {
	t.Helper()

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	part, err := writer.CreateFormFile(field, "flights.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/flight_data", &buffer)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestFlightData(t *testing.T) {
	app, service := newTestApp(t)

	status, body := doRequest(t, app, multipartUpload(t, "file", `Year,Month,DayofMonth,CRSDepTime,CRSArrTime,Origin,Dest
2024,1,1,800,1400,LAX,ORD
2024,1,1,1600,1900,ORD,JFK
`))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["result"])
	assert.Equal(t, 2, service.Catalog.Len())

	status, body = get(t, app, losAngelesToNewYork)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["route"], 2)
	assert.Equal(t, 120.0, body["total_layover_minutes"])
}

func TestFlightDataRejectsBadRows(t *testing.T) {
	app, service := newTestApp(t)

	status, body := doRequest(t, app, multipartUpload(t, "file", `Year,Month,DayofMonth,CRSDepTime,CRSArrTime,Origin,Dest
2024,1,1,800,1400,LAX,ORD
2024,2,30,1600,1900,ORD,JFK
`))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, float64(2), body["row"])
	assert.Equal(t, 0, service.Catalog.Len())
}

func TestFlightDataMissingFile(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doRequest(t, app, multipartUpload(t, "upload", "Year\n"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Multipart parameter file is required", body["error"])
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["healthy"])

	server := &Server{
		HealthChecks: map[string]routes.HealthCheck{
			"mongodb": func(context.Context) error { return errors.New("server selection timeout") },
		},
	}

	status, body = get(t, server.App(), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["healthy"])
	assert.Equal(t, "server selection timeout", body["checks"].(map[string]any)["mongodb"])
}
