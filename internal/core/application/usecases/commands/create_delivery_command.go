package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand registers a new delivery, optionally pre-assigned to
// a driver whose inventory is checked at creation time.
//
// Example:
//
//	details, _ := delivery.NewDetails("Jane", "+33600000000", "1 rue de Rivoli, Paris")
//	item, _ := delivery.NewItem(productID, 2)
//	cmd, err := NewCreateDeliveryCommand(kernel.NewUUID(), details, []delivery.Item{item}, &driverID)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	details    delivery.Details
	items      []delivery.Item
	driverID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	details delivery.Details,
	items []delivery.Item,
	driverID *kernel.UUID,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDetails(details),
		cmd.setItems(items),
		cmd.setDriverID(driverID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) DeliveryID() kernel.UUID   { return c.deliveryID }
func (c CreateDeliveryCommand) Details() delivery.Details { return c.details }
func (c CreateDeliveryCommand) DriverID() *kernel.UUID    { return c.driverID }

func (c CreateDeliveryCommand) Items() []delivery.Item {
	return append([]delivery.Item(nil), c.items...)
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setDetails(details delivery.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}

func (c *CreateDeliveryCommand) setItems(items []delivery.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = append([]delivery.Item(nil), items...)
	return nil
}

func (c *CreateDeliveryCommand) setDriverID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverId", err)
	}
	driverID := *id
	c.driverID = &driverID
	return nil
}
