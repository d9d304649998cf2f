package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	name        string
	description string
	category    string
	unit        string

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID kernel.UUID,
	name, description, category, unit string,
) (CreateProductCommand, error) {
	if name == "" {
		return CreateProductCommand{}, errs.NewValueIsRequiredError("name")
	}
	if err := productID.Validate(); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		productID:   productID,
		name:        name,
		description: description,
		category:    category,
		unit:        unit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID { return c.productID }
func (c CreateProductCommand) Name() string           { return c.name }
func (c CreateProductCommand) Description() string    { return c.description }
func (c CreateProductCommand) Category() string       { return c.category }
func (c CreateProductCommand) Unit() string           { return c.unit }
