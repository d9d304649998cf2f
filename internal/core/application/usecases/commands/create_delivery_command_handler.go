package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"
)

// CreateDeliveryCommandHandler validates references, checks the pre-assigned
// driver's stock and persists the delivery. Stock is not reserved: the check
// is a snapshot and inventory only moves when the hiding spot is registered.
type CreateDeliveryCommandHandler struct {
	uowFactory  DeliveryUoWFactory
	window      delivery.TimeWindow
	reservation services.InventoryReservation
}

func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	window delivery.TimeWindow,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory:  uowFactory,
		window:      window,
		reservation: services.NewInventoryReservation(),
	}
}

// Handle returns the created delivery. Missing products, client or driver
// yield errs.ObjectNotFoundError; an inactive product is a validation error;
// a stock shortfall is a *driver.InsufficientStockError carrying the product
// name.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
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

	products, err := h.loadProducts(ctx, uow, cmd.Items())
	if err != nil {
		return nil, err
	}

	if clientID := cmd.Details().ClientID(); clientID != nil {
		if _, err = uow.ClientRepository().Get(ctx, *clientID); err != nil {
			return nil, err
		}
	}

	if driverID := cmd.DriverID(); driverID != nil {
		drv, getErr := uow.DriverRepository().Get(ctx, *driverID)
		if getErr != nil {
			return nil, getErr
		}

		if err = h.reservation.Check(drv, cmd.Items()); err != nil {
			return nil, withProductName(err, products)
		}
	}

	created, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.Details(),
		cmd.Items(),
		cmd.DriverID(),
		time.Now().UTC(),
		h.window,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (h CreateDeliveryCommandHandler) loadProducts(
	ctx context.Context,
	uow DeliveryUoW,
	items []delivery.Item,
) (map[kernel.UUID]*product.Product, error) {
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID())
	}

	found, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*product.Product, len(found))
	for _, p := range found {
		byID[p.ID()] = p
	}

	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		if !p.IsActive() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"productId", fmt.Errorf("product %q is no longer available", p.Name()))
		}
	}

	return byID, nil
}

func withProductName(err error, products map[kernel.UUID]*product.Product) error {
	var stockErr *driver.InsufficientStockError
	if !errors.As(err, &stockErr) {
		return err
	}

	id, idErr := kernel.UUIDFromString(stockErr.ProductID)
	if idErr != nil {
		return err
	}
	if p, ok := products[id]; ok {
		stockErr.ProductName = p.Name()
	}
	return stockErr
}
