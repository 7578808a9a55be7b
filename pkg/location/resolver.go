// Package location resolves "the current city" for the dashboard through
// a fallback chain: explicit user selection, device geolocation, the last
// known good location, and finally a hard-coded default. Resolution never
// fails; every path ends in a usable city name.
package location

import (
	"context"
	"time"

	"go.uber.org/zap"

	"weather-dashboard/internal/cache"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/prefs"
)

const lastDetectedCityKey = "last_detected_city"

// CityLookup resolves coordinates to a city record; satisfied by the
// dashboard API client.
type CityLookup interface {
	CityByLocation(ctx context.Context, lat, lon float64) (models.CityRecord, error)
}

// Options tune the resolution flow. Zero values fall back to the
// original dashboard's behavior.
type Options struct {
	DefaultCity     string
	PositionTimeout time.Duration
	MaxPositionAge  time.Duration
	LastKnownTTL    time.Duration
}

type Resolver struct {
	geo    Geolocator
	lookup CityLookup
	prefs  *prefs.Preferences
	store  *cache.Store
	opts   Options
	logger *zap.Logger
}

func NewResolver(geo Geolocator, lookup CityLookup, preferences *prefs.Preferences, store *cache.Store, opts Options, logger *zap.Logger) *Resolver {
	if opts.DefaultCity == "" {
		opts.DefaultCity = "北京"
	}
	if opts.PositionTimeout <= 0 {
		opts.PositionTimeout = 15 * time.Second
	}
	if opts.MaxPositionAge <= 0 {
		opts.MaxPositionAge = 2 * time.Minute
	}
	if opts.LastKnownTTL <= 0 {
		opts.LastKnownTTL = 24 * time.Hour
	}

	return &Resolver{
		geo:    geo,
		lookup: lookup,
		prefs:  preferences,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Resolve determines the current city. A manual selection wins outright;
// otherwise device geolocation is attempted, falling back to the last
// known good city and finally the default. Resolve never returns an
// error.
func (r *Resolver) Resolve(ctx context.Context) models.ResolvedCity {
	if city := r.prefs.SelectedCity(ctx); city != "" {
		return models.ResolvedCity{
			CityRecord: models.CityRecord{Name: city},
			Source:     models.CitySourceManual,
		}
	}

	state, err := r.geo.Permission(ctx)
	if err != nil {
		r.logger.Warn("Geolocation permission check failed", zap.Error(err))
		state = PermissionUnknown
	}

	// A denied permission skips straight to the default; no geolocation
	// call, no cached fallback.
	if state == PermissionDenied {
		return r.defaultCity()
	}

	resolved, err := r.locate(ctx)
	if err == nil {
		return resolved
	}
	r.logger.Warn("Automatic city detection failed", zap.Error(err))

	var lastKnown models.CityRecord
	if r.store.Get(ctx, lastDetectedCityKey, &lastKnown) {
		return models.ResolvedCity{
			CityRecord: lastKnown,
			Source:     models.CitySourceCached,
		}
	}

	return r.defaultCity()
}

func (r *Resolver) locate(ctx context.Context) (models.ResolvedCity, error) {
	posCtx, cancel := context.WithTimeout(ctx, r.opts.PositionTimeout)
	defer cancel()

	pos, err := r.geo.Position(posCtx, PositionRequest{
		Timeout:    r.opts.PositionTimeout,
		MaximumAge: r.opts.MaxPositionAge,
	})
	if err != nil {
		return models.ResolvedCity{}, &GeolocationError{Reason: "position unavailable", Err: err}
	}

	record, err := r.lookup.CityByLocation(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		return models.ResolvedCity{}, &GeolocationError{Reason: "coordinate lookup failed", Err: err}
	}

	r.store.Put(ctx, lastDetectedCityKey, record, r.opts.LastKnownTTL)

	return models.ResolvedCity{
		CityRecord: record,
		Source:     models.CitySourceGeolocated,
	}, nil
}

func (r *Resolver) defaultCity() models.ResolvedCity {
	return models.ResolvedCity{
		CityRecord: models.CityRecord{Name: r.opts.DefaultCity},
		Source:     models.CitySourceDefault,
	}
}
