package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID     kernel.UUID
	name         string
	phone        string
	vehicle      string
	licensePlate string

	guard guard.ConstructorGuard
}

func NewCreateDriverCommand(driverID kernel.UUID, name, phone, vehicle, licensePlate string) (CreateDriverCommand, error) {
	var required []error
	if name == "" {
		required = append(required, errs.NewValueIsRequiredError("name"))
	}
	if phone == "" {
		required = append(required, errs.NewValueIsRequiredError("phone"))
	}
	if err := errors.Join(append(required, driverID.Validate())...); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		driverID:     driverID,
		name:         name,
		phone:        phone,
		vehicle:      vehicle,
		licensePlate: licensePlate,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID { return c.driverID }
func (c CreateDriverCommand) Name() string          { return c.name }
func (c CreateDriverCommand) Phone() string         { return c.phone }
func (c CreateDriverCommand) Vehicle() string       { return c.vehicle }
func (c CreateDriverCommand) LicensePlate() string  { return c.licensePlate }
