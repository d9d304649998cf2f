package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

type CreateClientCommand struct { //nolint:recvcheck //using for validation
	clientID       kernel.UUID
	name           string
	phone          string
	address        string
	telegramChatID string

	guard guard.ConstructorGuard
}

// NewCreateClientCommand leaves field validation to the client model so both
// paths report the same errors.
func NewCreateClientCommand(
	clientID kernel.UUID,
	name, phone, address, telegramChatID string,
) (CreateClientCommand, error) {
	if err := clientID.Validate(); err != nil {
		return CreateClientCommand{}, err
	}

	return CreateClientCommand{
		clientID:       clientID,
		name:           name,
		phone:          phone,
		address:        address,
		telegramChatID: telegramChatID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) ClientID() kernel.UUID  { return c.clientID }
func (c CreateClientCommand) Name() string           { return c.name }
func (c CreateClientCommand) Phone() string          { return c.phone }
func (c CreateClientCommand) Address() string        { return c.address }
func (c CreateClientCommand) TelegramChatID() string { return c.telegramChatID }
