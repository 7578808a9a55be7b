// Package upstream talks to the QWeather APIs on behalf of the proxy.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/client"
)

// ErrCityNotFound marks a lookup that matched no city.
var ErrCityNotFound = errors.New("upstream: city not found")

type QWeatherClient struct {
	base    *client.BaseClient
	apiBase string
	geoBase string
	key     string
	logger  *zap.Logger
}

type Config struct {
	APIKey  string
	APIBase string
	GeoBase string
	Client  client.BaseClientConfig
}

func NewQWeatherClient(cfg Config, logger *zap.Logger) *QWeatherClient {
	return &QWeatherClient{
		base:    client.NewBaseClient("qweather", cfg.Client, logger),
		apiBase: cfg.APIBase,
		geoBase: cfg.GeoBase,
		key:     cfg.APIKey,
		logger:  logger,
	}
}

type geoResponse struct {
	Code     string              `json:"code"`
	Location []models.CityRecord `json:"location"`
}

type nowResponse struct {
	Code       string                   `json:"code"`
	UpdateTime string                   `json:"updateTime"`
	Now        models.CurrentConditions `json:"now"`
}

type dailyResponse struct {
	Code       string              `json:"code"`
	UpdateTime string              `json:"updateTime"`
	Daily      []models.DailyEntry `json:"daily"`
}

type hourlyResponse struct {
	Code       string               `json:"code"`
	UpdateTime string               `json:"updateTime"`
	Hourly     []models.HourlyEntry `json:"hourly"`
}

// LookupCity resolves a city name or QWeather location string to its
// first matching record.
func (q *QWeatherClient) LookupCity(ctx context.Context, location string) (models.CityRecord, error) {
	cities, err := q.geoLookup(ctx, location, false)
	if err != nil {
		return models.CityRecord{}, err
	}
	return cities[0], nil
}

// SearchCities returns all matches for a free-text keyword, limited to
// Chinese cities the way the dashboard expects.
func (q *QWeatherClient) SearchCities(ctx context.Context, keyword string) ([]models.CityRecord, error) {
	return q.geoLookup(ctx, keyword, true)
}

// CityByCoords resolves coordinates to the containing city. QWeather
// takes "lon,lat" order.
func (q *QWeatherClient) CityByCoords(ctx context.Context, lat, lon float64) (models.CityRecord, error) {
	location := fmt.Sprintf("%s,%s",
		strconv.FormatFloat(lon, 'f', 2, 64),
		strconv.FormatFloat(lat, 'f', 2, 64))
	return q.LookupCity(ctx, location)
}

func (q *QWeatherClient) geoLookup(ctx context.Context, location string, cnOnly bool) ([]models.CityRecord, error) {
	params := url.Values{
		"location": {location},
		"key":      {q.key},
	}
	if cnOnly {
		params.Set("range", "cn")
	}

	var resp geoResponse
	if err := q.getJSON(ctx, q.geoBase+"/city/lookup?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	if resp.Code == "404" || (resp.Code == "200" && len(resp.Location) == 0) {
		return nil, ErrCityNotFound
	}
	if resp.Code != "200" {
		return nil, fmt.Errorf("qweather geo error: code %s", resp.Code)
	}
	return resp.Location, nil
}

// Now returns current conditions plus the upstream update time for a
// QWeather location ID.
func (q *QWeatherClient) Now(ctx context.Context, locationID string) (models.CurrentConditions, string, error) {
	var resp nowResponse
	if err := q.getJSON(ctx, q.weatherURL("weather/now", locationID), &resp); err != nil {
		return models.CurrentConditions{}, "", err
	}
	if resp.Code != "200" {
		return models.CurrentConditions{}, "", fmt.Errorf("qweather error: code %s", resp.Code)
	}
	return resp.Now, resp.UpdateTime, nil
}

// Daily returns the multi-day forecast. QWeather exposes fixed 3d and 7d
// windows; the response is truncated to the requested day count.
func (q *QWeatherClient) Daily(ctx context.Context, locationID string, days int) (models.ForecastPayload, error) {
	window := "weather/3d"
	if days > 3 {
		window = "weather/7d"
	}

	var resp dailyResponse
	if err := q.getJSON(ctx, q.weatherURL(window, locationID), &resp); err != nil {
		return models.ForecastPayload{}, err
	}
	if resp.Code != "200" {
		return models.ForecastPayload{}, fmt.Errorf("qweather error: code %s", resp.Code)
	}

	daily := resp.Daily
	if days > 0 && len(daily) > days {
		daily = daily[:days]
	}
	return models.ForecastPayload{Daily: daily, UpdateTime: resp.UpdateTime}, nil
}

// Hourly24h returns the fixed 24-hour forecast.
func (q *QWeatherClient) Hourly24h(ctx context.Context, locationID string) (models.HourlyPayload, error) {
	var resp hourlyResponse
	if err := q.getJSON(ctx, q.weatherURL("weather/24h", locationID), &resp); err != nil {
		return models.HourlyPayload{}, err
	}
	if resp.Code != "200" {
		return models.HourlyPayload{}, fmt.Errorf("qweather error: code %s", resp.Code)
	}
	return models.HourlyPayload{Hourly: resp.Hourly, UpdateTime: resp.UpdateTime}, nil
}

func (q *QWeatherClient) weatherURL(path, locationID string) string {
	params := url.Values{
		"location": {locationID},
		"key":      {q.key},
	}
	return q.apiBase + "/" + path + "?" + params.Encode()
}

func (q *QWeatherClient) getJSON(ctx context.Context, rawURL string, dest any) error {
	body, err := q.base.GetWithRetry(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decoding qweather response: %w", err)
	}
	return nil
}
