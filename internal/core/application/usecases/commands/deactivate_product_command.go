package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrDeactivateProductCommandIsNotConstructed = errors.New(
	"DeactivateProductCommand must be created via NewDeactivateProductCommand constructor",
)

type DeactivateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeactivateProductCommand(productID kernel.UUID) (DeactivateProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return DeactivateProductCommand{}, err
	}

	return DeactivateProductCommand{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeactivateProductCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateProductCommandIsNotConstructed)
}

func (c DeactivateProductCommand) ProductID() kernel.UUID { return c.productID }
