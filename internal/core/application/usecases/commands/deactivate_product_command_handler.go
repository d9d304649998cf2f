package commands

import (
	"context"
)

type DeactivateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeactivateProductCommandHandler(uowFactory CatalogUoWFactory) DeactivateProductCommandHandler {
	return DeactivateProductCommandHandler{uowFactory: uowFactory}
}

// Handle hides a product from new deliveries. Existing deliveries and driver
// stock keep referencing it.
func (h DeactivateProductCommandHandler) Handle(ctx context.Context, cmd DeactivateProductCommand) error {
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

	products := uow.ProductRepository()

	p, err := products.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if !p.IsActive() {
		return nil
	}

	p.Deactivate()

	if err = products.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
