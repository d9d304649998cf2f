package commands

import (
	"context"
)

type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewSetDriverAvailabilityCommandHandler(uowFactory DriverUoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drivers := uow.DriverRepository()

	d, err := drivers.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	d.SetAvailability(cmd.IsAvailable())

	if err = drivers.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
