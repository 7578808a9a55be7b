package prefs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"weather-dashboard/internal/cache"
)

func newTestPreferences(t *testing.T) *Preferences {
	t.Helper()

	memory := cache.NewMemory(0, 0, time.Minute, zap.NewNop())
	t.Cleanup(memory.Stop)

	return New(memory, zap.NewNop())
}

func TestSelectedCityRoundTrip(t *testing.T) {
	p := newTestPreferences(t)
	ctx := context.Background()

	assert.Equal(t, "", p.SelectedCity(ctx))

	p.SetSelectedCity(ctx, "上海")
	assert.Equal(t, "上海", p.SelectedCity(ctx))

	p.ClearSelectedCity(ctx)
	assert.Equal(t, "", p.SelectedCity(ctx))
}

func TestClearSelectedCityIsIdempotent(t *testing.T) {
	p := newTestPreferences(t)
	ctx := context.Background()

	p.ClearSelectedCity(ctx)
	p.ClearSelectedCity(ctx)
	assert.Equal(t, "", p.SelectedCity(ctx))
}

func TestSelectedCitySurvivesRetentionSweep(t *testing.T) {
	memory := cache.NewMemory(0, 50*time.Millisecond, 10*time.Millisecond, zap.NewNop())
	t.Cleanup(memory.Stop)

	p := New(memory, zap.NewNop())
	ctx := context.Background()

	p.SetSelectedCity(ctx, "上海")

	// Several sweep intervals beyond the retention window.
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, "上海", p.SelectedCity(ctx))
}

func TestThemeRoundTrip(t *testing.T) {
	p := newTestPreferences(t)
	ctx := context.Background()

	assert.Equal(t, "", p.Theme(ctx))

	p.SetTheme(ctx, "dark")
	assert.Equal(t, "dark", p.Theme(ctx))

	p.SetTheme(ctx, "light")
	assert.Equal(t, "light", p.Theme(ctx))
}
