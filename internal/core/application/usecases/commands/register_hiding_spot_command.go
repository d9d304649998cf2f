package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrRegisterHidingSpotCommandIsNotConstructed = errors.New(
	"RegisterHidingSpotCommand must be created via NewRegisterHidingSpotCommand constructor",
)

// RegisterHidingSpotCommand is the driver's proof of delivery: a photo of the
// spot, the GPS fix where it was taken and an optional description.
type RegisterHidingSpotCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	photo       ports.Photo
	location    kernel.Coordinates
	description string

	guard guard.ConstructorGuard
}

func NewRegisterHidingSpotCommand(
	deliveryID kernel.UUID,
	photo ports.Photo,
	location kernel.Coordinates,
	description string,
) (RegisterHidingSpotCommand, error) {
	cmd := RegisterHidingSpotCommand{
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setPhoto(photo),
		cmd.setLocation(location),
	); err != nil {
		return RegisterHidingSpotCommand{}, err
	}

	return cmd, nil
}

func (c RegisterHidingSpotCommand) Validate() error {
	return c.guard.Validate(ErrRegisterHidingSpotCommandIsNotConstructed)
}

func (c RegisterHidingSpotCommand) DeliveryID() kernel.UUID      { return c.deliveryID }
func (c RegisterHidingSpotCommand) Photo() ports.Photo           { return c.photo }
func (c RegisterHidingSpotCommand) Location() kernel.Coordinates { return c.location }
func (c RegisterHidingSpotCommand) Description() string          { return c.description }

func (c *RegisterHidingSpotCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *RegisterHidingSpotCommand) setPhoto(photo ports.Photo) error {
	if len(photo.Data) == 0 {
		return errs.NewValueIsRequiredError("photo")
	}
	c.photo = photo
	return nil
}

func (c *RegisterHidingSpotCommand) setLocation(location kernel.Coordinates) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("coordinates", err)
	}
	c.location = location
	return nil
}
