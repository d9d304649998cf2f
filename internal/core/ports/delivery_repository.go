// Package ports defines the contracts between the delivery core and its
// infrastructure: repositories, the unit of work, and outbound gateways for
// geocoding, photo storage and notifications.
package ports

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
)

// DeliveryRepository persists delivery aggregates together with their items
// and hiding spot.
type DeliveryRepository interface {
	// Add persists a new delivery and its items.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update writes the mutable state: driver, status, completion time and a
	// newly registered hiding spot. Items and timestamps set at creation are
	// never rewritten.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get returns the hydrated delivery or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	// Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
}
