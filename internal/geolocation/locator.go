package geolocation

import (
	"context"
	"errors"

	"github.com/Levipasha/retrend/internal/models"
)

// ErrUnavailable means the device has no way to report its position.
var ErrUnavailable = errors.New("geolocation unavailable")

// ErrDenied means a position source exists but refused the request.
var ErrDenied = errors.New("geolocation denied")

// Locator is a one-shot device position source.
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// StaticLocator reports a fixed, configured position.
type StaticLocator struct {
	Coords models.Coordinates
}

// Locate returns the configured position.
func (s StaticLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	return s.Coords, nil
}

// Unavailable is the Locator used when no position source is configured.
type Unavailable struct{}

// Locate always fails with ErrUnavailable.
func (Unavailable) Locate(context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, ErrUnavailable
}

// FromConfig returns a StaticLocator when both coordinates are set, and
// Unavailable otherwise.
func FromConfig(lat, lng *float64) Locator {
	if lat == nil || lng == nil {
		return Unavailable{}
	}
	return StaticLocator{Coords: models.Coordinates{Lat: *lat, Lng: *lng}}
}
