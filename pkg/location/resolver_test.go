package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"weather-dashboard/internal/cache"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/prefs"
)

type fakeGeolocator struct {
	state          PermissionState
	position       Coordinates
	positionErr    error
	positionCalled bool
}

func (f *fakeGeolocator) Permission(context.Context) (PermissionState, error) {
	return f.state, nil
}

func (f *fakeGeolocator) Position(_ context.Context, _ PositionRequest) (Coordinates, error) {
	f.positionCalled = true
	if f.positionErr != nil {
		return Coordinates{}, f.positionErr
	}
	return f.position, nil
}

type fakeLookup struct {
	record models.CityRecord
	err    error
	called bool
}

func (f *fakeLookup) CityByLocation(context.Context, float64, float64) (models.CityRecord, error) {
	f.called = true
	return f.record, f.err
}

type resolverFixture struct {
	resolver *Resolver
	geo      *fakeGeolocator
	lookup   *fakeLookup
	prefs    *prefs.Preferences
	store    *cache.Store
}

func newResolverFixture(t *testing.T, geo *fakeGeolocator, lookup *fakeLookup) *resolverFixture {
	t.Helper()

	memory := cache.NewMemory(0, 0, time.Minute, zap.NewNop())
	t.Cleanup(memory.Stop)

	store := cache.NewStore(memory, zap.NewNop())
	preferences := prefs.New(memory, zap.NewNop())

	return &resolverFixture{
		resolver: NewResolver(geo, lookup, preferences, store, Options{DefaultCity: "北京"}, zap.NewNop()),
		geo:      geo,
		lookup:   lookup,
		prefs:    preferences,
		store:    store,
	}
}

func TestResolveManualSelectionWins(t *testing.T) {
	geo := &fakeGeolocator{state: PermissionGranted, position: Coordinates{30.25, 120.21}}
	lookup := &fakeLookup{record: models.CityRecord{Name: "杭州"}}
	f := newResolverFixture(t, geo, lookup)
	ctx := context.Background()

	f.prefs.SetSelectedCity(ctx, "上海")

	resolved := f.resolver.Resolve(ctx)
	assert.Equal(t, "上海", resolved.Name)
	assert.Equal(t, models.CitySourceManual, resolved.Source)

	// Geolocation is bypassed entirely.
	assert.False(t, geo.positionCalled)
	assert.False(t, lookup.called)
}

func TestResolveDeniedPermissionFallsBackToDefault(t *testing.T) {
	geo := &fakeGeolocator{state: PermissionDenied}
	f := newResolverFixture(t, geo, &fakeLookup{})

	resolved := f.resolver.Resolve(context.Background())
	assert.Equal(t, "北京", resolved.Name)
	assert.Equal(t, models.CitySourceDefault, resolved.Source)

	// Denied permission means no geolocation call is attempted.
	assert.False(t, geo.positionCalled)
}

func TestResolveGeolocationSuccessBecomesLastKnownGood(t *testing.T) {
	geo := &fakeGeolocator{state: PermissionGranted, position: Coordinates{30.25, 120.21}}
	lookup := &fakeLookup{record: models.CityRecord{ID: "101210101", Name: "杭州", Adm1: "浙江省"}}
	f := newResolverFixture(t, geo, lookup)
	ctx := context.Background()

	resolved := f.resolver.Resolve(ctx)
	assert.Equal(t, "杭州", resolved.Name)
	assert.Equal(t, models.CitySourceGeolocated, resolved.Source)

	var lastKnown models.CityRecord
	require.True(t, f.store.Get(ctx, lastDetectedCityKey, &lastKnown))
	assert.Equal(t, "杭州", lastKnown.Name)
}

func TestResolvePositionFailureUsesLastKnownGood(t *testing.T) {
	geo := &fakeGeolocator{state: PermissionGranted, positionErr: errors.New("timeout")}
	f := newResolverFixture(t, geo, &fakeLookup{})
	ctx := context.Background()

	f.store.Put(ctx, lastDetectedCityKey, models.CityRecord{Name: "杭州"}, time.Hour)

	resolved := f.resolver.Resolve(ctx)
	assert.Equal(t, "杭州", resolved.Name)
	assert.Equal(t, models.CitySourceCached, resolved.Source)
}

func TestResolveLookupFailureUsesLastKnownGood(t *testing.T) {
	geo := &fakeGeolocator{state: PermissionGranted, position: Coordinates{30.25, 120.21}}
	lookup := &fakeLookup{err: errors.New("upstream down")}
	f := newResolverFixture(t, geo, lookup)
	ctx := context.Background()

	f.store.Put(ctx, lastDetectedCityKey, models.CityRecord{Name: "杭州"}, time.Hour)

	resolved := f.resolver.Resolve(ctx)
	assert.Equal(t, "杭州", resolved.Name)
	assert.Equal(t, models.CitySourceCached, resolved.Source)
}

func TestResolveEveryFallbackExhaustedYieldsDefault(t *testing.T) {
	geo := &fakeGeolocator{state: PermissionGranted, positionErr: errors.New("unavailable")}
	f := newResolverFixture(t, geo, &fakeLookup{})

	resolved := f.resolver.Resolve(context.Background())
	assert.Equal(t, "北京", resolved.Name)
	assert.Equal(t, models.CitySourceDefault, resolved.Source)
}

func TestResolvePromptPermissionStillAttemptsGeolocation(t *testing.T) {
	geo := &fakeGeolocator{state: PermissionPrompt, position: Coordinates{30.25, 120.21}}
	lookup := &fakeLookup{record: models.CityRecord{Name: "杭州"}}
	f := newResolverFixture(t, geo, lookup)

	resolved := f.resolver.Resolve(context.Background())
	assert.Equal(t, "杭州", resolved.Name)
	assert.True(t, geo.positionCalled)
}
