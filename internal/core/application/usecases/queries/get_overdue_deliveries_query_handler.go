package queries

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetOverdueDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetOverdueDeliveriesQueryHandler(db *gorm.DB) GetOverdueDeliveriesQueryHandler {
	return GetOverdueDeliveriesQueryHandler{db: db}
}

// Handle returns the most overdue deliveries first.
func (h GetOverdueDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueDeliveriesQuery,
) ([]OverdueDelivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var active []string
	for _, s := range delivery.AllStatuses() {
		if s.IsActive() {
			active = append(active, s.String())
		}
	}

	views, err := loadDeliveryViews(ctx, h.db,
		"WHERE d.status = ANY(?) AND d.max_delivery_time < ? ORDER BY d.max_delivery_time, d.id",
		pq.Array(active), query.Now())
	if err != nil {
		return nil, err
	}

	overdue := make([]OverdueDelivery, 0, len(views))
	for _, v := range views {
		overdue = append(overdue, OverdueDelivery{DeliveryView: v, OverdueBy: query.Now().Sub(v.MaxDeliveryTime)})
	}

	return overdue, nil
}
