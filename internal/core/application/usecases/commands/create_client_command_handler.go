package commands

import (
	"context"

	"lastmile/internal/core/domain/model/client"
)

type CreateClientCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateClientCommandHandler(uowFactory CatalogUoWFactory) CreateClientCommandHandler {
	return CreateClientCommandHandler{uowFactory: uowFactory}
}

func (h CreateClientCommandHandler) Handle(ctx context.Context, cmd CreateClientCommand) (*client.Client, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := client.NewClient(cmd.ClientID(), cmd.Name(), cmd.Phone(), cmd.Address(), cmd.TelegramChatID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ClientRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
