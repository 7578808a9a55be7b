package client

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"weather-dashboard/internal/models"
)

// LoadWeather fetches current, forecast and hourly data for city in
// parallel and merges them into one normalized bundle. The join is
// all-or-nothing: the first sub-fetch failure fails the whole load and
// sibling results are discarded.
func (c *Client) LoadWeather(ctx context.Context, city string, days int) (models.WeatherBundle, error) {
	if days <= 0 {
		days = DefaultForecastDays
	}

	var (
		current  models.CurrentConditions
		forecast models.ForecastPayload
		hourly   models.HourlyPayload
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = c.CurrentWeather(ctx, city)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = c.Forecast(ctx, city, days)
		return err
	})
	g.Go(func() error {
		var err error
		hourly, err = c.Hourly(ctx, city)
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.Error("Weather load failed",
			zap.String("city", city),
			zap.Error(err))
		return models.WeatherBundle{}, err
	}

	return models.WeatherBundle{
		Current:    c.normalizer.Current(current),
		Forecast:   c.normalizer.Forecast(forecast),
		Hourly:     c.normalizer.Hourly(hourly),
		UpdateTime: time.Now(),
	}, nil
}

// Refresh invalidates the three weather caches for city and re-issues all
// three fetches, returning the merged result with a fresh update time.
func (c *Client) Refresh(ctx context.Context, city string, days int) (models.WeatherBundle, error) {
	if days <= 0 {
		days = DefaultForecastDays
	}

	c.store.Remove(ctx, currentKey(city))
	c.store.Remove(ctx, forecastKey(city, days))
	c.store.Remove(ctx, hourlyKey(city))

	return c.LoadWeather(ctx, city, days)
}
