package ports

import (
	"context"
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
)

var (
	ErrGeocodingFailed = errors.New("geocoding failed")

	// ErrAddressNotFound means the provider answered but knows no such address.
	ErrAddressNotFound = fmt.Errorf("%w: address not found", ErrGeocodingFailed)

	// ErrGeocoderUnavailable covers timeouts, transport errors and non-2xx answers.
	ErrGeocoderUnavailable = fmt.Errorf("%w: geocoder unavailable", ErrGeocodingFailed)
)

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (kernel.Coordinates, error)
}
