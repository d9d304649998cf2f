// Package driverrepo maps the driver aggregate onto the drivers and
// driver_inventory tables.
package driverrepo

import (
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DriverDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Phone           string         `gorm:"type:varchar(64);not null"`
	Vehicle         string         `gorm:"type:varchar(255)"`
	LicensePlate    string         `gorm:"type:varchar(32)"`
	IsAvailable     bool           `gorm:"not null"`
	TotalDeliveries int            `gorm:"type:int;not null"`
	Inventory       []StockItemDTO `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// StockItemDTO is one (driver, product) inventory row.
type StockItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_driver_inventory_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_driver_inventory_product"`
	Quantity  int       `gorm:"type:int;not null"`
}

func (StockItemDTO) TableName() string {
	return "driver_inventory"
}

func fromDomain(d *driver.Driver) DriverDTO {
	driverID := d.ID().Bytes()
	inventory := make([]StockItemDTO, 0, len(d.Inventory()))

	for _, item := range d.Inventory() {
		inventory = append(inventory, StockItemDTO{
			ID:        item.ID().Bytes(),
			DriverID:  driverID,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
		})
	}

	return DriverDTO{
		ID:              driverID,
		Name:            d.Name(),
		Phone:           d.Phone(),
		Vehicle:         d.Vehicle(),
		LicensePlate:    d.LicensePlate(),
		IsAvailable:     d.IsAvailable(),
		TotalDeliveries: d.TotalDeliveries(),
		Inventory:       inventory,
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	inventory := make([]*driver.StockItem, 0, len(dto.Inventory))
	for _, itemDTO := range dto.Inventory {
		item, itemErr := stockItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		inventory = append(inventory, item)
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		dto.Phone,
		dto.Vehicle,
		dto.LicensePlate,
		dto.IsAvailable,
		dto.TotalDeliveries,
		inventory,
	)
}

func stockItemToDomain(dto StockItemDTO) (*driver.StockItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreStockItem(id, productID, dto.Quantity)
}
