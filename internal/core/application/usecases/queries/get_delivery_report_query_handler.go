package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetDeliveryReportQueryHandler struct {
	deliveries GetDeliveryQueryHandler
}

func NewGetDeliveryReportQueryHandler(db *gorm.DB) GetDeliveryReportQueryHandler {
	return GetDeliveryReportQueryHandler{deliveries: NewGetDeliveryQueryHandler(db)}
}

func (h GetDeliveryReportQueryHandler) Handle(ctx context.Context, query GetDeliveryReportQuery) (DeliveryReport, error) {
	if err := query.Validate(); err != nil {
		return DeliveryReport{}, err
	}

	deliveryQuery, err := NewGetDeliveryQuery(query.DeliveryID())
	if err != nil {
		return DeliveryReport{}, err
	}

	view, err := h.deliveries.Handle(ctx, deliveryQuery)
	if err != nil {
		return DeliveryReport{}, err
	}

	return DeliveryReport{
		DeliveryID:      view.ID,
		Status:          view.Status,
		ClientName:      view.ClientName,
		DeliveryAddress: view.DeliveryAddress,
		DriverName:      view.DriverName,
		Items:           view.Items,
		HidingSpot:      view.HidingSpot,
		CompletedAt:     view.CompletedAt,
	}, nil
}
