package services

import (
	"errors"
	"fmt"
	"math"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// DefaultGeofenceRadiusMeters is the radius applied when none is configured.
const DefaultGeofenceRadiusMeters = 200.0

var ErrOutsideGeofence = errors.New("hiding spot is outside the geofence")

// GeofenceViolationError carries the measured distance so callers can show it
// to the driver.
type GeofenceViolationError struct {
	Distance float64
	Radius   float64
}

func (e *GeofenceViolationError) Error() string {
	return fmt.Sprintf("%s: %.0fm away, maximum is %gm", ErrOutsideGeofence, e.Distance, e.Radius)
}

func (e *GeofenceViolationError) Unwrap() error {
	return ErrOutsideGeofence
}

// Geofence validates hiding-spot coordinates against a delivery address.
type Geofence struct {
	radiusMeters float64
}

func NewGeofence(radiusMeters float64) (Geofence, error) {
	if math.IsNaN(radiusMeters) || radiusMeters <= 0 {
		return Geofence{}, errs.NewValueIsOutOfRangeError("radiusMeters", radiusMeters, 0, math.MaxFloat64)
	}
	return Geofence{radiusMeters: radiusMeters}, nil
}

func (g Geofence) RadiusMeters() float64 {
	if g.radiusMeters == 0 {
		return DefaultGeofenceRadiusMeters
	}
	return g.radiusMeters
}

// Check returns the distance between address and spot in whole metres. The
// comparison against the radius uses the exact distance. A violation returns
// the distance rounded up, so it always reads as beyond the radius, together
// with a *GeofenceViolationError.
func (g Geofence) Check(address, spot kernel.Coordinates) (float64, error) {
	distance, err := address.DistanceTo(spot)
	if err != nil {
		return 0, err
	}

	if distance > g.RadiusMeters() {
		reported := math.Ceil(distance)
		return reported, &GeofenceViolationError{Distance: reported, Radius: g.RadiusMeters()}
	}

	return math.Round(distance), nil
}
