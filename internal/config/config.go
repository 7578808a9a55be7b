package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// TTLPolicy is the single source of truth for cache lifetimes. The client
// cache and the proxy's Cache-Control headers are both derived from it, so
// the two sides can never drift apart.
type TTLPolicy struct {
	Current  time.Duration `validate:"gt=0"`
	Forecast time.Duration `validate:"gt=0"`
	Hourly   time.Duration `validate:"gt=0"`
	Search   time.Duration `validate:"gt=0"`
	Locate   time.Duration `validate:"gt=0"`
	Cities   time.Duration `validate:"gt=0"`
}

type Config struct {
	Server struct {
		Port         string `validate:"required"`
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
	}

	QWeather struct {
		APIKey  string
		APIBase string `validate:"required,url"`
		GeoBase string `validate:"required,url"`
	}

	TTL TTLPolicy

	Cache struct {
		MaxEntries    int `validate:"gt=0"`
		Retention     time.Duration
		SweepInterval time.Duration
		RedisAddr     string
	}

	Client struct {
		BaseURL string `validate:"required,url"`
		Timeout time.Duration
	}

	Location struct {
		DefaultCity     string `validate:"required"`
		PositionTimeout time.Duration
		MaxPositionAge  time.Duration
		LastKnownTTL    time.Duration
	}

	Scheduler struct {
		Enabled      bool
		Interval     time.Duration
		Cities       []string
		ForecastDays int `validate:"gte=1,lte=7"`
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}

	CircuitBreaker struct {
		Timeout time.Duration
	}
}

var validate = validator.New()

func LoadConfig(logger *zap.Logger) (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	l := loader{logger: logger}
	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "3000")
	cfg.Server.ReadTimeout = l.parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = l.parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	// Upstream QWeather configuration
	cfg.QWeather.APIKey = getEnv("QWEATHER_API_KEY", "")
	cfg.QWeather.APIBase = getEnv("QWEATHER_API_BASE", "https://devapi.qweather.com/v7")
	cfg.QWeather.GeoBase = getEnv("QWEATHER_GEO_BASE", "https://geoapi.qweather.com/v2")

	// Cache lifetimes per endpoint class
	cfg.TTL.Current = l.parseDuration(getEnv("CACHE_TTL_CURRENT", "30m"))
	cfg.TTL.Forecast = l.parseDuration(getEnv("CACHE_TTL_FORECAST", "2h"))
	cfg.TTL.Hourly = l.parseDuration(getEnv("CACHE_TTL_HOURLY", "1h"))
	cfg.TTL.Search = l.parseDuration(getEnv("CACHE_TTL_SEARCH", "24h"))
	cfg.TTL.Locate = l.parseDuration(getEnv("CACHE_TTL_LOCATE", "24h"))
	cfg.TTL.Cities = l.parseDuration(getEnv("CACHE_TTL_CITIES", "168h"))

	// Cache substrate configuration
	cfg.Cache.MaxEntries = l.parseInt(getEnv("CACHE_MAX_ENTRIES", "1000"))
	cfg.Cache.Retention = l.parseDuration(getEnv("CACHE_RETENTION", "168h"))
	cfg.Cache.SweepInterval = l.parseDuration(getEnv("CACHE_SWEEP_INTERVAL", "1m"))
	cfg.Cache.RedisAddr = getEnv("REDIS_ADDR", "")

	// Dashboard client configuration
	cfg.Client.BaseURL = getEnv("CLIENT_BASE_URL", "http://localhost:3000")
	cfg.Client.Timeout = l.parseDuration(getEnv("CLIENT_TIMEOUT", "10s"))

	// Location resolution configuration
	cfg.Location.DefaultCity = getEnv("DEFAULT_CITY", "北京")
	cfg.Location.PositionTimeout = l.parseDuration(getEnv("GEO_POSITION_TIMEOUT", "15s"))
	cfg.Location.MaxPositionAge = l.parseDuration(getEnv("GEO_MAX_POSITION_AGE", "2m"))
	cfg.Location.LastKnownTTL = l.parseDuration(getEnv("GEO_LAST_KNOWN_TTL", "24h"))

	// Background refresh configuration
	cfg.Scheduler.Enabled = l.parseBool(getEnv("REFRESH_ENABLED", "true"))
	cfg.Scheduler.Interval = l.parseDuration(getEnv("REFRESH_INTERVAL", "30m"))
	cities := getEnv("REFRESH_CITIES", "北京,上海,广州")
	cfg.Scheduler.Cities = strings.Split(cities, ",")
	cfg.Scheduler.ForecastDays = l.parseInt(getEnv("FORECAST_DAYS", "3"))

	// Upstream retry configuration
	cfg.Retry.MaxRetries = l.parseInt(getEnv("MAX_RETRIES", "3"))
	cfg.Retry.Delay = l.parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = l.parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Timeout = l.parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loader carries the logger through the typed parse helpers. A parse
// failure falls back to the zero value, which the validation pass then
// rejects for any field with a positivity rule.
type loader struct {
	logger *zap.Logger
}

func (l loader) parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		l.logger.Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func (l loader) parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		l.logger.Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func (l loader) parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		l.logger.Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}

func (l loader) parseBool(value string) bool {
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		l.logger.Warn("Failed to parse bool", zap.String("value", value), zap.Error(err))
		return false
	}
	return boolValue
}
