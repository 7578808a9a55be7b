package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)

	assert.Equal(t, 30*time.Minute, cfg.TTL.Current)
	assert.Equal(t, 2*time.Hour, cfg.TTL.Forecast)
	assert.Equal(t, time.Hour, cfg.TTL.Hourly)
	assert.Equal(t, 24*time.Hour, cfg.TTL.Search)
	assert.Equal(t, 24*time.Hour, cfg.TTL.Locate)
	assert.Equal(t, 7*24*time.Hour, cfg.TTL.Cities)

	assert.Equal(t, 1000, cfg.Cache.MaxEntries)
	assert.Equal(t, "北京", cfg.Location.DefaultCity)
	assert.Equal(t, 15*time.Second, cfg.Location.PositionTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Location.MaxPositionAge)
	assert.Equal(t, 24*time.Hour, cfg.Location.LastKnownTTL)

	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, []string{"北京", "上海", "广州"}, cfg.Scheduler.Cities)
	assert.Equal(t, 3, cfg.Scheduler.ForecastDays)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CACHE_TTL_CURRENT", "5m")
	t.Setenv("DEFAULT_CITY", "上海")
	t.Setenv("REFRESH_CITIES", "杭州,南京")

	cfg, err := LoadConfig(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.TTL.Current)
	assert.Equal(t, "上海", cfg.Location.DefaultCity)
	assert.Equal(t, []string{"杭州", "南京"}, cfg.Scheduler.Cities)
}

func TestLoadConfigRejectsUnparseableTTL(t *testing.T) {
	// A garbage duration parses to zero, which the gt=0 rule rejects.
	t.Setenv("CACHE_TTL_FORECAST", "soon")

	_, err := LoadConfig(zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfigRejectsBadForecastDays(t *testing.T) {
	t.Setenv("FORECAST_DAYS", "9")

	_, err := LoadConfig(zap.NewNop())
	require.Error(t, err)
}

func TestLoadConfigRejectsBadBaseURL(t *testing.T) {
	t.Setenv("CLIENT_BASE_URL", "not-a-url")

	_, err := LoadConfig(zap.NewNop())
	require.Error(t, err)
}
