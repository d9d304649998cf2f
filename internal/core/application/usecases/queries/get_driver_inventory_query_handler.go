package queries

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetDriverInventoryQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverInventoryQueryHandler(db *gorm.DB) GetDriverInventoryQueryHandler {
	return GetDriverInventoryQueryHandler{db: db}
}

func (h GetDriverInventoryQueryHandler) Handle(
	ctx context.Context,
	query GetDriverInventoryQuery,
) (DriverInventory, error) {
	if err := query.Validate(); err != nil {
		return DriverInventory{}, err
	}

	var driverRows []struct {
		Name            string
		IsAvailable     bool
		TotalDeliveries int
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT name, is_available, total_deliveries
		FROM drivers
		WHERE id = ?
	`, query.DriverID().Bytes()).Scan(&driverRows).Error
	if err != nil {
		return DriverInventory{}, err
	}
	if len(driverRows) == 0 {
		return DriverInventory{}, errs.NewObjectNotFoundError("driver", query.DriverID().String())
	}

	inventory := DriverInventory{
		DriverID:        query.DriverID(),
		DriverName:      driverRows[0].Name,
		IsAvailable:     driverRows[0].IsAvailable,
		TotalDeliveries: driverRows[0].TotalDeliveries,
		Items:           make([]InventoryItemView, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.product_id,
			COALESCE(p.name, ''),
			COALESCE(p.unit, ''),
			i.quantity
		FROM driver_inventory i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.driver_id = ?
		ORDER BY p.name, i.product_id
	`, query.DriverID().Bytes()).Rows()
	if err != nil {
		return DriverInventory{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      InventoryItemView
			productID uuid.UUID
		)
		if err = rows.Scan(&productID, &item.ProductName, &item.Unit, &item.Quantity); err != nil {
			return DriverInventory{}, err
		}

		item.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return DriverInventory{}, err
		}
		inventory.Items = append(inventory.Items, item)
	}

	if err = rows.Err(); err != nil {
		return DriverInventory{}, err
	}

	return inventory, nil
}
