// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregates and read denormalized rows through raw SQL.
package queries

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryView is the read model of a delivery with its items, hiding spot
// and the name of the assigned driver.
type DeliveryView struct {
	ID                    kernel.UUID
	ClientID              *kernel.UUID
	ClientName            string
	ClientPhone           string
	DeliveryAddress       string
	PickupAddress         string
	Priority              delivery.Priority
	Instructions          string
	DriverID              *kernel.UUID
	DriverName            string
	Status                delivery.Status
	CreatedAt             time.Time
	EstimatedDeliveryTime time.Time
	MaxDeliveryTime       time.Time
	CompletedAt           *time.Time
	Items                 []DeliveryItemView
	HidingSpot            *HidingSpotView
}

// IsOverdue mirrors delivery.Delivery.IsOverdue for the read side.
func (v DeliveryView) IsOverdue(now time.Time) bool {
	return v.Status.IsActive() && now.After(v.MaxDeliveryTime)
}

// DeliveryItemView carries the catalogue name and unit next to the quantity.
// Name and unit are empty when the product row no longer exists.
type DeliveryItemView struct {
	ProductID   kernel.UUID
	ProductName string
	Unit        string
	Quantity    int
}

type HidingSpotView struct {
	ID                  kernel.UUID
	PhotoURL            string
	Latitude            float64
	Longitude           float64
	Description         string
	DistanceFromAddress float64
	CreatedAt           time.Time
}

type deliveryRow struct {
	ID                    uuid.UUID
	ClientID              *uuid.UUID
	ClientName            string
	ClientPhone           string
	DeliveryAddress       string
	PickupAddress         string
	Priority              string
	Instructions          string
	DriverID              *uuid.UUID
	DriverName            *string
	Status                string
	CreatedAt             time.Time
	EstimatedDeliveryTime time.Time
	MaxDeliveryTime       time.Time
	CompletedAt           *time.Time
}

type deliveryItemRow struct {
	DeliveryID  uuid.UUID
	ProductID   uuid.UUID
	ProductName *string
	Unit        *string
	Quantity    int
}

type hidingSpotRow struct {
	ID                  uuid.UUID
	DeliveryID          uuid.UUID
	PhotoURL            string
	Latitude            float64
	Longitude           float64
	Description         string
	DistanceFromAddress float64
	CreatedAt           time.Time
}

const selectDeliveries = `
	SELECT
		d.id,
		d.client_id,
		d.client_name,
		d.client_phone,
		d.delivery_address,
		d.pickup_address,
		d.priority,
		d.instructions,
		d.driver_id,
		dr.name AS driver_name,
		d.status,
		d.created_at,
		d.estimated_delivery_time,
		d.max_delivery_time,
		d.completed_at
	FROM deliveries d
	LEFT JOIN drivers dr ON dr.id = d.driver_id`

// loadDeliveryViews runs selectDeliveries with the given tail (WHERE and
// ORDER BY clauses) and attaches items and hiding spots in two more queries.
func loadDeliveryViews(ctx context.Context, db *gorm.DB, tail string, args ...any) ([]DeliveryView, error) {
	var rows []deliveryRow
	if err := db.WithContext(ctx).Raw(selectDeliveries+" "+tail, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]DeliveryView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	items, err := loadItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	spots, err := loadHidingSpots(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		view, convErr := row.toView()
		if convErr != nil {
			return nil, convErr
		}
		view.Items = items[row.ID]
		if view.Items == nil {
			view.Items = make([]DeliveryItemView, 0)
		}
		view.HidingSpot = spots[row.ID]
		views = append(views, view)
	}

	return views, nil
}

func loadItems(ctx context.Context, db *gorm.DB, deliveryIDs []uuid.UUID) (map[uuid.UUID][]DeliveryItemView, error) {
	var rows []deliveryItemRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			i.delivery_id,
			i.product_id,
			p.name AS product_name,
			p.unit,
			i.quantity
		FROM delivery_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.delivery_id IN ?
		ORDER BY p.name, i.product_id
	`, deliveryIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDelivery := make(map[uuid.UUID][]DeliveryItemView, len(deliveryIDs))
	for _, row := range rows {
		productID, idErr := kernel.UUIDFromBytes(row.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		byDelivery[row.DeliveryID] = append(byDelivery[row.DeliveryID], DeliveryItemView{
			ProductID:   productID,
			ProductName: deref(row.ProductName),
			Unit:        deref(row.Unit),
			Quantity:    row.Quantity,
		})
	}

	return byDelivery, nil
}

func loadHidingSpots(ctx context.Context, db *gorm.DB, deliveryIDs []uuid.UUID) (map[uuid.UUID]*HidingSpotView, error) {
	var rows []hidingSpotRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_id,
			photo_url,
			latitude,
			longitude,
			description,
			distance_from_address,
			created_at
		FROM hiding_spots
		WHERE delivery_id IN ?
	`, deliveryIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDelivery := make(map[uuid.UUID]*HidingSpotView, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		byDelivery[row.DeliveryID] = &HidingSpotView{
			ID:                  id,
			PhotoURL:            row.PhotoURL,
			Latitude:            row.Latitude,
			Longitude:           row.Longitude,
			Description:         row.Description,
			DistanceFromAddress: row.DistanceFromAddress,
			CreatedAt:           row.CreatedAt,
		}
	}

	return byDelivery, nil
}

func (r deliveryRow) toView() (DeliveryView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return DeliveryView{}, err
	}

	status, err := delivery.ParseStatus(r.Status)
	if err != nil {
		return DeliveryView{}, err
	}

	priority, err := delivery.ParsePriority(r.Priority)
	if err != nil {
		return DeliveryView{}, err
	}

	clientID, err := optionalUUID(r.ClientID)
	if err != nil {
		return DeliveryView{}, err
	}

	driverID, err := optionalUUID(r.DriverID)
	if err != nil {
		return DeliveryView{}, err
	}

	return DeliveryView{
		ID:                    id,
		ClientID:              clientID,
		ClientName:            r.ClientName,
		ClientPhone:           r.ClientPhone,
		DeliveryAddress:       r.DeliveryAddress,
		PickupAddress:         r.PickupAddress,
		Priority:              priority,
		Instructions:          r.Instructions,
		DriverID:              driverID,
		DriverName:            deref(r.DriverName),
		Status:                status,
		CreatedAt:             r.CreatedAt,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		MaxDeliveryTime:       r.MaxDeliveryTime,
		CompletedAt:           r.CompletedAt,
	}, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
