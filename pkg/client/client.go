// Package client is the dashboard-side API client: typed queries against
// the weather proxy, each bound to a deterministic cache key and a TTL
// policy through the generic fetch-with-cache orchestrator.
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"weather-dashboard/internal/cache"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/normalize"
)

// DefaultForecastDays is the forecast window requested when callers don't
// ask for a specific one.
const DefaultForecastDays = 3

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *cache.Store
	ttl        config.TTLPolicy
	normalizer *normalize.Normalizer
	logger     *zap.Logger
}

// New creates a dashboard client talking to the proxy at baseURL, caching
// responses in store per the given TTL policy.
func New(baseURL string, store *cache.Store, ttl config.TTLPolicy, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		ttl:        ttl,
		normalizer: normalize.New(logger),
		logger:     logger,
	}
}

// CurrentWeather returns current conditions for city.
func (c *Client) CurrentWeather(ctx context.Context, city string) (models.CurrentConditions, error) {
	return cache.FetchWithCache(ctx, c.store, currentKey(city), c.ttl.Current,
		func(ctx context.Context) (models.CurrentConditions, error) {
			var out models.CurrentConditions
			err := c.getJSON(ctx, "current weather", c.weatherURL("current", city, 0), &out)
			return out, err
		})
}

// Forecast returns the days-day forecast for city.
func (c *Client) Forecast(ctx context.Context, city string, days int) (models.ForecastPayload, error) {
	if days <= 0 {
		days = DefaultForecastDays
	}
	return cache.FetchWithCache(ctx, c.store, forecastKey(city, days), c.ttl.Forecast,
		func(ctx context.Context) (models.ForecastPayload, error) {
			var out models.ForecastPayload
			err := c.getJSON(ctx, "forecast", c.weatherURL("forecast", city, days), &out)
			return out, err
		})
}

// Hourly returns the 24-hour forecast for city.
func (c *Client) Hourly(ctx context.Context, city string) (models.HourlyPayload, error) {
	return cache.FetchWithCache(ctx, c.store, hourlyKey(city), c.ttl.Hourly,
		func(ctx context.Context) (models.HourlyPayload, error) {
			var out models.HourlyPayload
			err := c.getJSON(ctx, "hourly forecast", c.weatherURL("hourly", city, 0), &out)
			return out, err
		})
}

// CityList returns the full selectable city list.
func (c *Client) CityList(ctx context.Context) ([]models.CityRecord, error) {
	return cache.FetchWithCache(ctx, c.store, cityListKey, c.ttl.Cities,
		func(ctx context.Context) ([]models.CityRecord, error) {
			var out []models.CityRecord
			err := c.getJSON(ctx, "city list", c.citiesURL("all", nil), &out)
			return out, err
		})
}

// HotCities returns the curated hot-city list.
func (c *Client) HotCities(ctx context.Context) ([]models.CityRecord, error) {
	return cache.FetchWithCache(ctx, c.store, hotCitiesKey, c.ttl.Cities,
		func(ctx context.Context) ([]models.CityRecord, error) {
			var out []models.CityRecord
			err := c.getJSON(ctx, "hot cities", c.citiesURL("hot", nil), &out)
			return out, err
		})
}

// SearchCities looks up cities matching a free-text keyword.
func (c *Client) SearchCities(ctx context.Context, keyword string) ([]models.CityRecord, error) {
	return cache.FetchWithCache(ctx, c.store, searchKey(keyword), c.ttl.Search,
		func(ctx context.Context) ([]models.CityRecord, error) {
			var out []models.CityRecord
			err := c.getJSON(ctx, "city search", c.citiesURL("search", url.Values{"keyword": {keyword}}), &out)
			return out, err
		})
}

// CityByLocation resolves the city containing the given coordinates.
func (c *Client) CityByLocation(ctx context.Context, lat, lon float64) (models.CityRecord, error) {
	params := url.Values{
		"lat": {formatCoord(lat)},
		"lon": {formatCoord(lon)},
	}
	return cache.FetchWithCache(ctx, c.store, locateKey(lat, lon), c.ttl.Locate,
		func(ctx context.Context) (models.CityRecord, error) {
			var out models.CityRecord
			err := c.getJSON(ctx, "city lookup", c.citiesURL("locate", params), &out)
			return out, err
		})
}

func (c *Client) weatherURL(endpoint, city string, days int) string {
	params := url.Values{
		"endpoint": {endpoint},
		"city":     {city},
	}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}
	return c.baseURL + "/api/weather?" + params.Encode()
}

func (c *Client) citiesURL(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("endpoint", endpoint)
	return c.baseURL + "/api/cities?" + params.Encode()
}

// getJSON performs one GET and decodes the JSON body. A non-2xx status
// yields a RemoteRequestError, an undecodable body a
// MalformedResponseError.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Warn("API request failed",
			zap.String("op", op),
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		return &RemoteRequestError{
			Status:     resp.StatusCode,
			StatusText: resp.Status,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &MalformedResponseError{Op: op, Err: err}
	}
	return nil
}
