package services

import (
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
)

// Shortfall records an item the driver did not hold enough of when the
// delivery was dropped off. Stock is floored at zero, the difference is lost.
type Shortfall struct {
	ProductID kernel.UUID
	Requested int
	Available int
	Missing   int
}

// InventoryReservation applies delivery items to a driver's stock.
type InventoryReservation struct{}

func NewInventoryReservation() InventoryReservation {
	return InventoryReservation{}
}

// Check is a point-in-time availability check. It reserves nothing.
func (InventoryReservation) Check(d *driver.Driver, items []delivery.Item) error {
	if err := d.Validate(); err != nil {
		return err
	}

	requests := make([]driver.StockRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, driver.StockRequest{ProductID: item.ProductID(), Quantity: item.Quantity()})
	}

	return d.CheckAvailability(requests)
}

// Deduct withdraws every item from the driver's stock and reports the items
// that could not be fully covered.
func (InventoryReservation) Deduct(d *driver.Driver, items []delivery.Item) ([]Shortfall, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var shortfalls []Shortfall
	for _, item := range items {
		available := d.Stock(item.ProductID())

		missing, err := d.Withdraw(item.ProductID(), item.Quantity())
		if err != nil {
			return nil, err
		}

		if missing > 0 {
			shortfalls = append(shortfalls, Shortfall{
				ProductID: item.ProductID(),
				Requested: item.Quantity(),
				Available: available,
				Missing:   missing,
			})
		}
	}

	return shortfalls, nil
}
