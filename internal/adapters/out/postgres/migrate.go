package postgres

import (
	"lastmile/internal/adapters/out/postgres/clientrepo"
	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/adapters/out/postgres/driverrepo"
	"lastmile/internal/adapters/out/postgres/outboxrepo"
	"lastmile/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&productrepo.ProductDTO{},
		&clientrepo.ClientDTO{},
		&driverrepo.DriverDTO{},
		&driverrepo.StockItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.ItemDTO{},
		&deliveryrepo.HidingSpotDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or updates the schema with GORM AutoMigrate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
