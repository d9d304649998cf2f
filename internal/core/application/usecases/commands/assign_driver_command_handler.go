package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
)

type AssignDriverCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewAssignDriverCommandHandler(uowFactory DeliveryUoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the driver and returns the updated delivery. Both the
// delivery and the driver must exist.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveries := uow.DeliveryRepository()

	d, err := deliveries.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if _, err = uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
		return nil, err
	}

	if err = d.Assign(cmd.DriverID(), cmd.ConfirmReassign(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
