package delivery

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventCreated        EventType = "delivery.created"
	EventDriverAssigned EventType = "delivery.driver_assigned"
	EventStatusChanged  EventType = "delivery.status_changed"
)

// Event is a domain event raised by the Delivery aggregate. The persistence
// layer drains events into the outbox in the same transaction that stores
// the aggregate.
type Event struct {
	ID             kernel.UUID
	DeliveryID     kernel.UUID
	Type           EventType
	Status         Status
	PreviousStatus Status
	DriverID       *kernel.UUID
	OccurredAt     time.Time
}
