package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/upstream"
)

type stubSource struct {
	lookupErr error
	nowErr    error
}

func (s *stubSource) LookupCity(_ context.Context, location string) (models.CityRecord, error) {
	if s.lookupErr != nil {
		return models.CityRecord{}, s.lookupErr
	}
	return models.CityRecord{ID: "101010100", Name: location}, nil
}

func (s *stubSource) SearchCities(_ context.Context, keyword string) ([]models.CityRecord, error) {
	return []models.CityRecord{{ID: "101010100", Name: keyword, Adm1: "北京市", Adm2: "北京", Lat: "39.90499", Lon: "116.40529"}}, nil
}

func (s *stubSource) CityByCoords(context.Context, float64, float64) (models.CityRecord, error) {
	return models.CityRecord{ID: "101010100", Name: "北京"}, nil
}

func (s *stubSource) Now(context.Context, string) (models.CurrentConditions, string, error) {
	if s.nowErr != nil {
		return models.CurrentConditions{}, "", s.nowErr
	}
	return models.CurrentConditions{Temp: "20", Text: "晴", Icon: "100"}, "2024-01-01T08:00+08:00", nil
}

func (s *stubSource) Daily(_ context.Context, _ string, days int) (models.ForecastPayload, error) {
	daily := make([]models.DailyEntry, days)
	for i := range daily {
		daily[i] = models.DailyEntry{FxDate: "2024-01-01"}
	}
	return models.ForecastPayload{Daily: daily, UpdateTime: "2024-01-01T08:00+08:00"}, nil
}

func (s *stubSource) Hourly24h(context.Context, string) (models.HourlyPayload, error) {
	return models.HourlyPayload{
		Hourly:     []models.HourlyEntry{{FxTime: "2024-01-01T14:00+08:00", Temp: "20"}},
		UpdateTime: "2024-01-01T08:00+08:00",
	}, nil
}

func newTestApp(source WeatherSource) *fiber.App {
	app := fiber.New()

	ttl := config.TTLPolicy{
		Current:  30 * time.Minute,
		Forecast: 2 * time.Hour,
		Hourly:   time.Hour,
		Search:   24 * time.Hour,
		Locate:   24 * time.Hour,
		Cities:   7 * 24 * time.Hour,
	}

	handler := NewHandler(source, ttl, zap.NewNop())
	app.Get("/api/weather", handler.GetWeather)
	app.Get("/api/cities", handler.GetCities)
	app.Get("/api/health", handler.GetHealth)
	return app
}

func decodeError(t *testing.T, resp *http.Response) (string, string) {
	t.Helper()

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Status, body.Message
}

func TestGetWeatherMissingCityReturns400(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/weather?endpoint=current", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	status, message := decodeError(t, resp)
	assert.Equal(t, "error", status)
	assert.Contains(t, message, "city")
}

func TestGetWeatherUnknownEndpointReturns400(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/weather?endpoint=bogus&city=北京", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetWeatherDaysOutOfRangeReturns400(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/weather?endpoint=forecast&city=北京&days=9", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetWeatherUnknownCityReturns404(t *testing.T) {
	app := newTestApp(&stubSource{lookupErr: upstream.ErrCityNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/weather?city=不存在的城市", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	status, _ := decodeError(t, resp)
	assert.Equal(t, "error", status)
}

func TestGetWeatherUpstreamFailureReturns500(t *testing.T) {
	app := newTestApp(&stubSource{nowErr: errors.New("qweather error: code 500")})

	req := httptest.NewRequest(http.MethodGet, "/api/weather?endpoint=current&city=北京", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetWeatherCurrentSetsCacheControl(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/weather?endpoint=current&city=北京", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "s-maxage=1800, stale-while-revalidate", resp.Header.Get(fiber.HeaderCacheControl))

	var now models.CurrentConditions
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&now))
	assert.Equal(t, "20", now.Temp)
}

func TestGetWeatherForecastReturnsDailyPayload(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/weather?endpoint=forecast&city=北京&days=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "s-maxage=7200, stale-while-revalidate", resp.Header.Get(fiber.HeaderCacheControl))

	var payload models.ForecastPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload.Daily, 3)
	assert.NotEmpty(t, payload.UpdateTime)
}

func TestGetCitiesSearchMissingKeywordReturns400(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/cities?endpoint=search", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCitiesSearchReturnsRecords(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/cities?endpoint=search&keyword="+"%E5%8C%97%E4%BA%AC", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "s-maxage=86400, stale-while-revalidate", resp.Header.Get(fiber.HeaderCacheControl))

	var cities []models.CityRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cities))
	require.Len(t, cities, 1)
	assert.Equal(t, "北京", cities[0].Name)
}

func TestGetCitiesLocateMissingCoordinatesReturns400(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/cities?endpoint=locate&lat=39.9", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetCitiesLocateReturnsSingleRecord(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/cities?endpoint=locate&lat=39.9042&lon=116.4074", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var record models.CityRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	assert.Equal(t, "101010100", record.ID)
}

func TestGetCitiesHotReturnsStaticList(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/cities?endpoint=hot", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cities []models.CityRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cities))
	assert.Equal(t, len(hotCities), len(cities))
}

func TestGetCitiesUnknownEndpointReturns400(t *testing.T) {
	app := newTestApp(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/cities?endpoint=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
