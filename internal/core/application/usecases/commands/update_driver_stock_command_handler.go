package commands

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
)

type UpdateDriverStockCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewUpdateDriverStockCommandHandler(uowFactory DriverUoWFactory) UpdateDriverStockCommandHandler {
	return UpdateDriverStockCommandHandler{uowFactory: uowFactory}
}

// Handle restocks or sets a product in the driver's inventory under a row
// lock and returns the driver. The product must exist.
func (h UpdateDriverStockCommandHandler) Handle(ctx context.Context, cmd UpdateDriverStockCommand) (*driver.Driver, error) {
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

	if _, err := uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
		return nil, err
	}

	drivers := uow.DriverRepository()

	d, err := drivers.GetForUpdate(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	switch cmd.Mode() {
	case StockSet:
		err = d.SetStock(cmd.ProductID(), cmd.Quantity())
	default:
		err = d.Restock(cmd.ProductID(), cmd.Quantity())
	}
	if err != nil {
		return nil, err
	}

	if err = drivers.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
