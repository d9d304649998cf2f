package queries

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListDriversQueryHandler struct {
	db *gorm.DB
}

func NewListDriversQueryHandler(db *gorm.DB) ListDriversQueryHandler {
	return ListDriversQueryHandler{db: db}
}

func (h ListDriversQueryHandler) Handle(ctx context.Context, query ListDriversQuery) ([]DriverView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]DriverView, 0)

	active := []string{delivery.Assigned.String(), delivery.PickingUp.String(), delivery.InTransit.String()}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			dr.id,
			dr.name,
			dr.phone,
			COALESCE(dr.vehicle, ''),
			COALESCE(dr.license_plate, ''),
			dr.is_available,
			dr.total_deliveries,
			COUNT(d.id) FILTER (WHERE d.status = ?),
			COUNT(d.id) FILTER (WHERE d.status = ?),
			COUNT(d.id) FILTER (WHERE d.status = ?)
		FROM drivers dr
		LEFT JOIN deliveries d ON d.driver_id = dr.id AND d.status = ANY(?)
		WHERE dr.is_available OR NOT ?
		GROUP BY dr.id
		ORDER BY dr.name, dr.id
	`, active[0], active[1], active[2], pq.Array(active), query.AvailableOnly()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v  DriverView
			id uuid.UUID
		)
		err = rows.Scan(&id, &v.Name, &v.Phone, &v.Vehicle, &v.LicensePlate, &v.IsAvailable, &v.TotalDeliveries,
			&v.Assigned, &v.PickingUp, &v.InTransit)
		if err != nil {
			return nil, err
		}

		v.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
