package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetDriverInventoryQueryIsNotConstructed = errors.New(
	"GetDriverInventoryQuery must be created via NewGetDriverInventoryQuery constructor",
)

type GetDriverInventoryQuery struct {
	driverID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetDriverInventoryQuery(driverID kernel.UUID) (GetDriverInventoryQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverInventoryQuery{}, err
	}
	return GetDriverInventoryQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverInventoryQueryIsNotConstructed)
}

func (q GetDriverInventoryQuery) DriverID() kernel.UUID {
	return q.driverID
}

type DriverInventory struct {
	DriverID        kernel.UUID
	DriverName      string
	IsAvailable     bool
	TotalDeliveries int
	Items           []InventoryItemView
}

// InventoryItemView includes rows with zero quantity; a driver who ran out
// of a product still carries it on the list.
type InventoryItemView struct {
	ProductID   kernel.UUID
	ProductName string
	Unit        string
	Quantity    int
}
