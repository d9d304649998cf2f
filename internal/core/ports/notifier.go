package ports

import (
	"context"

	"lastmile/internal/core/domain/model/client"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/product"
)

// DeliveryNotice is everything an outbound channel needs to tell the outside
// world about a delivery event.
type DeliveryNotice struct {
	Event    delivery.Event
	Delivery *delivery.Delivery

	// Client is nil when the delivery references no client record.
	Client *client.Client

	// DriverName is empty when no driver is assigned.
	DriverName string

	Products map[kernel.UUID]*product.Product
}

// Notifier delivers a notice over one channel (chat, message broker, ...).
type Notifier interface {
	Notify(ctx context.Context, notice DeliveryNotice) error
}
