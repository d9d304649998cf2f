package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/client"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// DispatchResult counts the messages handled by one dispatch run.
type DispatchResult struct {
	Sent   int
	Failed int
}

// DispatchNotificationsCommandHandler fans pending outbox messages out to
// every configured notifier. A message is marked processed only when all
// notifiers accepted it; otherwise its attempt counter is bumped and the
// whole message is retried on the next run, so delivery is at-least-once.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifiers  []ports.Notifier
	logger     *slog.Logger
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	notifiers []ports.Notifier,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifiers:  notifiers,
		logger:     logger.With("component", "DispatchNotificationsCommandHandler"),
	}
}

func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	var result DispatchResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	outbox := uow.OutboxRepository()

	messages, err := outbox.GetPending(ctx, cmd.BatchSize(), cmd.MaxAttempts())
	if err != nil {
		return result, err
	}

	for _, msg := range messages {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		if sendErr := h.send(ctx, uow, msg); sendErr != nil {
			result.Failed++
			h.logger.WarnContext(ctx, "failed to dispatch delivery event",
				"event_id", msg.Event.ID.String(),
				"delivery_id", msg.Event.DeliveryID.String(),
				"event_type", string(msg.Event.Type),
				"attempt", msg.Attempts+1,
				"error", sendErr)

			if err = outbox.MarkFailed(ctx, msg, sendErr); err != nil {
				return result, err
			}
			continue
		}

		if err = outbox.MarkProcessed(ctx, msg, time.Now().UTC()); err != nil {
			return result, err
		}
		result.Sent++
	}

	return result, nil
}

func (h DispatchNotificationsCommandHandler) send(ctx context.Context, uow OutboxUoW, msg ports.OutboxMessage) error {
	notice, err := h.buildNotice(ctx, uow, msg)
	if err != nil {
		return err
	}

	var notifyErrs []error
	for _, n := range h.notifiers {
		if err = n.Notify(ctx, notice); err != nil {
			notifyErrs = append(notifyErrs, err)
		}
	}
	return errors.Join(notifyErrs...)
}

func (h DispatchNotificationsCommandHandler) buildNotice(
	ctx context.Context,
	uow OutboxUoW,
	msg ports.OutboxMessage,
) (ports.DeliveryNotice, error) {
	notice := ports.DeliveryNotice{Event: msg.Event}

	d, err := uow.DeliveryRepository().Get(ctx, msg.Event.DeliveryID)
	if err != nil {
		return notice, fmt.Errorf("load delivery: %w", err)
	}
	notice.Delivery = d

	if clientID := d.Details().ClientID(); clientID != nil {
		var c *client.Client
		c, err = uow.ClientRepository().Get(ctx, *clientID)
		switch {
		case err == nil:
			notice.Client = c
		case !errors.Is(err, errs.ErrObjectNotFound):
			return notice, fmt.Errorf("load client: %w", err)
		}
	}

	if driverID := d.DriverID(); driverID != nil {
		drv, drvErr := uow.DriverRepository().Get(ctx, *driverID)
		switch {
		case drvErr == nil:
			notice.DriverName = drv.Name()
		case !errors.Is(drvErr, errs.ErrObjectNotFound):
			return notice, fmt.Errorf("load driver: %w", drvErr)
		}
	}

	items := d.Items()
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID())
	}

	products, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return notice, fmt.Errorf("load products: %w", err)
	}
	notice.Products = make(map[kernel.UUID]*product.Product, len(products))
	for _, p := range products {
		notice.Products[p.ID()] = p
	}

	return notice, nil
}
