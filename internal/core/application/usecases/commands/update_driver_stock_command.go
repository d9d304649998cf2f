package commands

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrUpdateDriverStockCommandIsNotConstructed = errors.New(
	"UpdateDriverStockCommand must be created via NewRestockDriverCommand or NewSetDriverStockCommand",
)

// StockUpdateMode selects how the quantity of an UpdateDriverStockCommand is
// applied.
type StockUpdateMode int

const (
	// StockRestock adds the quantity to the current stock.
	StockRestock StockUpdateMode = iota + 1
	// StockSet overwrites the current stock, typically after a physical count.
	StockSet
)

type UpdateDriverStockCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	productID kernel.UUID
	quantity  int
	mode      StockUpdateMode

	guard guard.ConstructorGuard
}

// NewRestockDriverCommand adds quantity (> 0) units of a product.
func NewRestockDriverCommand(driverID, productID kernel.UUID, quantity int) (UpdateDriverStockCommand, error) {
	if quantity <= 0 {
		return UpdateDriverStockCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return newUpdateDriverStockCommand(driverID, productID, quantity, StockRestock)
}

// NewSetDriverStockCommand overwrites the stock of a product; zero empties it.
func NewSetDriverStockCommand(driverID, productID kernel.UUID, quantity int) (UpdateDriverStockCommand, error) {
	if quantity < 0 {
		return UpdateDriverStockCommand{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	return newUpdateDriverStockCommand(driverID, productID, quantity, StockSet)
}

func newUpdateDriverStockCommand(
	driverID, productID kernel.UUID,
	quantity int,
	mode StockUpdateMode,
) (UpdateDriverStockCommand, error) {
	if err := errors.Join(driverID.Validate(), productID.Validate()); err != nil {
		return UpdateDriverStockCommand{}, err
	}

	return UpdateDriverStockCommand{
		driverID:  driverID,
		productID: productID,
		quantity:  quantity,
		mode:      mode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverStockCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverStockCommandIsNotConstructed)
}

func (c UpdateDriverStockCommand) DriverID() kernel.UUID  { return c.driverID }
func (c UpdateDriverStockCommand) ProductID() kernel.UUID { return c.productID }
func (c UpdateDriverStockCommand) Quantity() int          { return c.quantity }
func (c UpdateDriverStockCommand) Mode() StockUpdateMode  { return c.mode }
