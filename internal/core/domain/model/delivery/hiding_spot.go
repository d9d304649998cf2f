package delivery

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrHidingSpotIsNotConstructed = errors.New("HidingSpot must be created via NewHidingSpot constructor")

// HidingSpot is the photo-documented, GPS-tagged place where a driver left
// the package. A delivery owns at most one.
type HidingSpot struct {
	id                  kernel.UUID
	photoURL            string
	location            kernel.Coordinates
	description         string
	distanceFromAddress float64
	createdAt           time.Time
	guard               guard.ConstructorGuard
}

// NewHidingSpot creates a hiding spot. distanceFromAddress is the measured
// distance in meters between location and the geocoded delivery address.
func NewHidingSpot(
	id kernel.UUID,
	photoURL string,
	location kernel.Coordinates,
	description string,
	distanceFromAddress float64,
	createdAt time.Time,
) (*HidingSpot, error) {
	spot := &HidingSpot{
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		spot.setID(id),
		spot.setPhotoURL(photoURL),
		spot.setLocation(location),
		spot.setDistance(distanceFromAddress),
		spot.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	return spot, nil
}

// RestoreHidingSpot rebuilds a persisted hiding spot.
func RestoreHidingSpot(
	id kernel.UUID,
	photoURL string,
	location kernel.Coordinates,
	description string,
	distanceFromAddress float64,
	createdAt time.Time,
) (*HidingSpot, error) {
	return NewHidingSpot(id, photoURL, location, description, distanceFromAddress, createdAt)
}

func (h *HidingSpot) Validate() error {
	if h == nil {
		return ErrHidingSpotIsNotConstructed
	}
	return h.guard.Validate(ErrHidingSpotIsNotConstructed)
}

func (h *HidingSpot) ID() kernel.UUID              { return h.id }
func (h *HidingSpot) PhotoURL() string             { return h.photoURL }
func (h *HidingSpot) Location() kernel.Coordinates { return h.location }
func (h *HidingSpot) Description() string          { return h.description }
func (h *HidingSpot) CreatedAt() time.Time         { return h.createdAt }

// DistanceFromAddress is in meters.
func (h *HidingSpot) DistanceFromAddress() float64 { return h.distanceFromAddress }

func (h *HidingSpot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *HidingSpot) setPhotoURL(photoURL string) error {
	if strings.TrimSpace(photoURL) == "" {
		return errs.NewValueIsRequiredError("photoUrl")
	}
	h.photoURL = photoURL
	return nil
}

func (h *HidingSpot) setLocation(location kernel.Coordinates) error {
	if err := location.Validate(); err != nil {
		return err
	}
	h.location = location
	return nil
}

func (h *HidingSpot) setDistance(distance float64) error {
	if distance < 0 || math.IsNaN(distance) {
		return errs.NewValueIsInvalidErrorWithCause(
			"distanceFromAddress", fmt.Errorf("%v is not a non-negative number of meters", distance))
	}
	h.distanceFromAddress = distance
	return nil
}

func (h *HidingSpot) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	h.createdAt = createdAt
	return nil
}
