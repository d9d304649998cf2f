// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// DeliveryUoW spans every aggregate a delivery command may touch.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		DriverRepoFactory
		ProductRepoFactory
		ClientRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// DriverUoW manages driver profiles and inventory; products are read to
	// validate restocked items.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
		ProductRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// CatalogUoW manages products and clients.
	CatalogUoW interface {
		TxManager
		ProductRepoFactory
		ClientRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// OutboxUoW reads the outbox and everything a notification refers to.
	// Messages are acknowledged one by one, without a surrounding transaction.
	OutboxUoW interface {
		OutboxRepoFactory
		DeliveryRepoFactory
		DriverRepoFactory
		ProductRepoFactory
		ClientRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
