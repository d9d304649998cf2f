package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetDeliveryReportQueryIsNotConstructed = errors.New(
	"GetDeliveryReportQuery must be created via NewGetDeliveryReportQuery constructor",
)

// GetDeliveryReportQuery builds the proof-of-delivery summary shown to the
// recipient.
type GetDeliveryReportQuery struct {
	deliveryID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetDeliveryReportQuery(deliveryID kernel.UUID) (GetDeliveryReportQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryReportQuery{}, err
	}
	return GetDeliveryReportQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryReportQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryReportQueryIsNotConstructed)
}

func (q GetDeliveryReportQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// DeliveryReport is read-only. HidingSpot is nil until the driver registered
// one.
type DeliveryReport struct {
	DeliveryID      kernel.UUID
	Status          delivery.Status
	ClientName      string
	DeliveryAddress string
	DriverName      string
	Items           []DeliveryItemView
	HidingSpot      *HidingSpotView
	CompletedAt     *time.Time
}
