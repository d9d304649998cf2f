package queries

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)

	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		conditions = append(conditions, "d.status = ANY(?)")
		args = append(args, pq.Array(names))
	}

	if driverID := query.DriverID(); driverID != nil {
		conditions = append(conditions, "d.driver_id = ?")
		args = append(args, driverID.Bytes())
	}

	var tail strings.Builder
	if len(conditions) > 0 {
		tail.WriteString("WHERE ")
		tail.WriteString(strings.Join(conditions, " AND "))
	}
	tail.WriteString(" ORDER BY d.created_at DESC, d.id")

	return loadDeliveryViews(ctx, h.db, tail.String(), args...)
}
