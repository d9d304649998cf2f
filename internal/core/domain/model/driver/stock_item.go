package driver

import (
	"errors"
	"fmt"
	"math"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrStockItemIsNotConstructed = errors.New("StockItem must be created via NewStockItem constructor")

// MaxStockQuantity is the largest quantity an inventory row holds.
const MaxStockQuantity = math.MaxInt32

// StockItem is one inventory row of a driver: how many units of a product the
// driver currently carries. The quantity is never negative.
type StockItem struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	guard     guard.ConstructorGuard
}

func NewStockItem(id kernel.UUID, productID kernel.UUID, quantity int) (*StockItem, error) {
	item := &StockItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreStockItem rebuilds a persisted inventory row.
func RestoreStockItem(id kernel.UUID, productID kernel.UUID, quantity int) (*StockItem, error) {
	return NewStockItem(id, productID, quantity)
}

func (s *StockItem) Validate() error {
	if s == nil {
		return ErrStockItemIsNotConstructed
	}
	return s.guard.Validate(ErrStockItemIsNotConstructed)
}

func (s *StockItem) ID() kernel.UUID        { return s.id }
func (s *StockItem) ProductID() kernel.UUID { return s.productID }
func (s *StockItem) Quantity() int          { return s.quantity }

// add increases the quantity by a positive amount.
func (s *StockItem) add(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxStockQuantity-s.quantity {
		return errs.NewValueIsOutOfRangeError("quantity", s.quantity+quantity, 0, MaxStockQuantity)
	}
	s.quantity += quantity
	return nil
}

// take removes up to quantity units, clamping at zero, and returns the
// number of units that were requested but not available.
func (s *StockItem) take(quantity int) int {
	if quantity <= s.quantity {
		s.quantity -= quantity
		return 0
	}
	shortfall := quantity - s.quantity
	s.quantity = 0
	return shortfall
}

func (s *StockItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *StockItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	s.productID = productID
	return nil
}

func (s *StockItem) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	if quantity > MaxStockQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, MaxStockQuantity)
	}
	s.quantity = quantity
	return nil
}
