package driver

import (
	"errors"
	"fmt"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports the first product a driver cannot supply.
// ProductName is empty until a caller that knows the catalogue fills it in.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func NewInsufficientStockError(productID string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	product := e.ProductName
	if product == "" {
		product = e.ProductID
	}
	return fmt.Sprintf("%s for %s. Available: %d, Requested: %d", ErrInsufficientStock, product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
