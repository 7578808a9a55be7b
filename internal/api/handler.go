package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/upstream"
)

// WeatherSource is the upstream surface the handlers need; satisfied by
// the QWeather client.
type WeatherSource interface {
	LookupCity(ctx context.Context, location string) (models.CityRecord, error)
	SearchCities(ctx context.Context, keyword string) ([]models.CityRecord, error)
	CityByCoords(ctx context.Context, lat, lon float64) (models.CityRecord, error)
	Now(ctx context.Context, locationID string) (models.CurrentConditions, string, error)
	Daily(ctx context.Context, locationID string, days int) (models.ForecastPayload, error)
	Hourly24h(ctx context.Context, locationID string) (models.HourlyPayload, error)
}

type Handler struct {
	source WeatherSource
	ttl    config.TTLPolicy
	logger *zap.Logger
}

func NewHandler(source WeatherSource, ttl config.TTLPolicy, logger *zap.Logger) *Handler {
	return &Handler{
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// GetWeather handles GET /api/weather?endpoint={current|forecast|hourly}&city={name}&days={n}
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	endpoint := c.Query("endpoint", "current")
	city := c.Query("city")
	if city == "" {
		return errorJSON(c, fiber.StatusBadRequest, "missing city parameter")
	}

	days := c.QueryInt("days", 3)
	if days < 1 || days > 7 {
		return errorJSON(c, fiber.StatusBadRequest, "days must be between 1 and 7")
	}

	switch endpoint {
	case "current", "forecast", "hourly":
	default:
		return errorJSON(c, fiber.StatusBadRequest, "unsupported weather endpoint")
	}

	record, err := h.source.LookupCity(c.Context(), city)
	if err != nil {
		if errors.Is(err, upstream.ErrCityNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "city not found")
		}
		h.logger.Error("City lookup failed",
			zap.String("city", city),
			zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "failed to fetch weather data")
	}

	switch endpoint {
	case "current":
		now, _, err := h.source.Now(c.Context(), record.ID)
		if err != nil {
			h.logger.Error("Current weather fetch failed",
				zap.String("city", city),
				zap.Error(err))
			return errorJSON(c, fiber.StatusInternalServerError, "failed to fetch weather data")
		}
		setCacheControl(c, h.ttl.Current)
		return c.JSON(now)

	case "forecast":
		payload, err := h.source.Daily(c.Context(), record.ID, days)
		if err != nil {
			h.logger.Error("Forecast fetch failed",
				zap.String("city", city),
				zap.Int("days", days),
				zap.Error(err))
			return errorJSON(c, fiber.StatusInternalServerError, "failed to fetch forecast data")
		}
		setCacheControl(c, h.ttl.Forecast)
		return c.JSON(payload)

	default: // hourly
		payload, err := h.source.Hourly24h(c.Context(), record.ID)
		if err != nil {
			h.logger.Error("Hourly fetch failed",
				zap.String("city", city),
				zap.Error(err))
			return errorJSON(c, fiber.StatusInternalServerError, "failed to fetch hourly data")
		}
		setCacheControl(c, h.ttl.Hourly)
		return c.JSON(payload)
	}
}

// GetCities handles GET /api/cities?endpoint={search|locate|hot|all}&keyword=|lat=&lon=
func (h *Handler) GetCities(c *fiber.Ctx) error {
	endpoint := c.Query("endpoint", "search")

	switch endpoint {
	case "search":
		keyword := c.Query("keyword")
		if keyword == "" {
			return errorJSON(c, fiber.StatusBadRequest, "missing search keyword")
		}

		cities, err := h.source.SearchCities(c.Context(), keyword)
		if err != nil {
			if errors.Is(err, upstream.ErrCityNotFound) {
				return errorJSON(c, fiber.StatusNotFound, "city not found")
			}
			h.logger.Error("City search failed",
				zap.String("keyword", keyword),
				zap.Error(err))
			return errorJSON(c, fiber.StatusInternalServerError, "city search failed")
		}
		setCacheControl(c, h.ttl.Search)
		return c.JSON(cities)

	case "locate":
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
		if errLat != nil || errLon != nil {
			return errorJSON(c, fiber.StatusBadRequest, "missing or invalid lat/lon parameters")
		}

		record, err := h.source.CityByCoords(c.Context(), lat, lon)
		if err != nil {
			if errors.Is(err, upstream.ErrCityNotFound) {
				return errorJSON(c, fiber.StatusNotFound, "city not found")
			}
			h.logger.Error("Coordinate lookup failed",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(err))
			return errorJSON(c, fiber.StatusInternalServerError, "city lookup failed")
		}
		setCacheControl(c, h.ttl.Locate)
		return c.JSON(record)

	case "hot":
		setCacheControl(c, h.ttl.Cities)
		return c.JSON(hotCities)

	case "all":
		setCacheControl(c, h.ttl.Cities)
		return c.JSON(allCities)

	default:
		return errorJSON(c, fiber.StatusBadRequest, "unsupported cities endpoint")
	}
}

// GetHealth handles GET /api/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
	})
}

var startTime = time.Now()

func errorJSON(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

func setCacheControl(c *fiber.Ctx, ttl time.Duration) {
	c.Set(fiber.HeaderCacheControl,
		fmt.Sprintf("s-maxage=%d, stale-while-revalidate", int(ttl.Seconds())))
}
