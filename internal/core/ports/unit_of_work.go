package ports

import (
	"context"
)

// UnitOfWorkFactory hands every command handler invocation its own
// UnitOfWork; instances are never shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command.
// Repositories obtained after Begin share its transaction; before Begin they
// run on the plain connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit writes the pending domain events of every tracked delivery to
	// the outbox and commits the transaction.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	DeliveryRepository() DeliveryRepository
	DriverRepository() DriverRepository
	ProductRepository() ProductRepository
	ClientRepository() ClientRepository
	OutboxRepository() OutboxRepository
}
