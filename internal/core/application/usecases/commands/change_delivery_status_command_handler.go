package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"
)

type ChangeDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *slog.Logger
}

func NewChangeDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	logger *slog.Logger,
) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "ChangeDeliveryStatusCommandHandler"),
	}
}

// Handle applies the transition and returns the delivery. Writing the current
// status again changes nothing. Entering DELIVERED increments the driver's
// completed-delivery counter in the same transaction.
func (h ChangeDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeDeliveryStatusCommand,
) (*delivery.Delivery, error) {
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

	changed, err := d.ChangeStatus(cmd.Status(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return d, nil
	}

	if d.Status() == delivery.Delivered && d.DriverID() != nil {
		if err = h.recordCompletion(ctx, uow, d); err != nil {
			return nil, err
		}
	}

	if err = deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

func (h ChangeDeliveryStatusCommandHandler) recordCompletion(
	ctx context.Context,
	uow DeliveryUoW,
	d *delivery.Delivery,
) error {
	drivers := uow.DriverRepository()

	drv, err := drivers.GetForUpdate(ctx, *d.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "driver of delivered delivery not found, counter not updated",
			"delivery_id", d.ID().String(),
			"driver_id", d.DriverID().String())
		return nil
	}
	if err != nil {
		return err
	}

	drv.RecordCompletedDelivery()
	return drivers.Update(ctx, drv)
}
