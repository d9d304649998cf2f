package delivery

import (
	"errors"
	"fmt"
	"math"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// MaxItemQuantity is the largest quantity the items table column holds.
const MaxItemQuantity = math.MaxInt32

// Item is a requested (productID, quantity) line. Items are immutable once
// the delivery is created.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	guard     guard.ConstructorGuard
}

func NewItem(productID kernel.UUID, quantity int) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(item.setProductID(productID), item.setQuantity(quantity)); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID {
	return i.productID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.productID]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"items", fmt.Errorf("product %s is listed more than once", item.productID))
		}
		seen[item.productID] = struct{}{}
	}
	return nil
}
