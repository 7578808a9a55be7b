package location

import (
	"context"
	"fmt"
	"time"
)

// PermissionState mirrors the device permission model for geolocation.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
	PermissionUnknown PermissionState = "unknown"
)

// Coordinates is a device position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// PositionRequest bounds a position acquisition. MaximumAge allows a
// recently cached device position instead of a fresh fix.
type PositionRequest struct {
	Timeout      time.Duration
	MaximumAge   time.Duration
	HighAccuracy bool
}

// Geolocator abstracts the device geolocation service so the resolution
// flow can be driven in tests.
type Geolocator interface {
	Permission(ctx context.Context) (PermissionState, error)
	Position(ctx context.Context, req PositionRequest) (Coordinates, error)
}

// GeolocationError classifies a failed acquisition. It never escapes the
// resolver; every failure ends in a fallback city.
type GeolocationError struct {
	Reason string
	Err    error
}

func (e *GeolocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation: %s: %v", e.Reason, e.Err)
	}
	return "geolocation: " + e.Reason
}

func (e *GeolocationError) Unwrap() error {
	return e.Err
}
