// Package prefs keeps the dashboard's plain, non-expiring settings: the
// manually selected city and the UI theme. They live on the same
// substrate as the cache but without the value+expiry envelope, and are
// written as persistent entries so the substrate's retention never drops
// them.
package prefs

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"weather-dashboard/internal/cache"
)

const (
	selectedCityKey = "selectedCity"
	themeKey        = "theme"
)

type Preferences struct {
	substrate cache.Substrate
	logger    *zap.Logger
}

func New(substrate cache.Substrate, logger *zap.Logger) *Preferences {
	return &Preferences{substrate: substrate, logger: logger}
}

// SelectedCity returns the manually selected city, or "" when none is set.
func (p *Preferences) SelectedCity(ctx context.Context) string {
	return p.get(ctx, selectedCityKey)
}

func (p *Preferences) SetSelectedCity(ctx context.Context, city string) {
	p.set(ctx, selectedCityKey, city)
}

// ClearSelectedCity drops the manual selection so location resolution
// falls back to geolocation.
func (p *Preferences) ClearSelectedCity(ctx context.Context) {
	if err := p.substrate.Delete(ctx, selectedCityKey); err != nil && !errors.Is(err, cache.ErrNotFound) {
		p.logger.Warn("Failed to clear selected city", zap.Error(err))
	}
}

// Theme returns the stored UI theme, or "" when the system default applies.
func (p *Preferences) Theme(ctx context.Context) string {
	return p.get(ctx, themeKey)
}

func (p *Preferences) SetTheme(ctx context.Context, theme string) {
	p.set(ctx, themeKey, theme)
}

func (p *Preferences) get(ctx context.Context, key string) string {
	data, err := p.substrate.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			p.logger.Warn("Failed to read preference",
				zap.String("key", key),
				zap.Error(err))
		}
		return ""
	}
	return string(data)
}

func (p *Preferences) set(ctx context.Context, key, value string) {
	if err := p.substrate.SetPersistent(ctx, key, []byte(value)); err != nil {
		p.logger.Warn("Failed to store preference",
			zap.String("key", key),
			zap.Error(err))
	}
}
