package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand attaches a driver to a delivery. ConfirmReassign must
// be set to swap the driver of a delivery that is already on the road.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	driverID        kernel.UUID
	confirmReassign bool

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(deliveryID, driverID kernel.UUID, confirmReassign bool) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		confirmReassign: confirmReassign,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(deliveryID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	cmd.deliveryID = deliveryID
	cmd.driverID = driverID

	return cmd, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AssignDriverCommand) DriverID() kernel.UUID   { return c.driverID }
func (c AssignDriverCommand) ConfirmReassign() bool   { return c.confirmReassign }
