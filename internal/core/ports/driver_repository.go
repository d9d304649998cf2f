package ports

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
)

// DriverRepository persists driver profiles with their inventory.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update writes the profile and upserts every inventory row.
	Update(ctx context.Context, aggregate *driver.Driver) error

	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetForUpdate loads the driver and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}
