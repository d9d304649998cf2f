package driver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired        = errs.NewValueIsRequiredError("phone")
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")
)

// StockRequest is a (productID, quantity) pair checked against or withdrawn
// from a driver's inventory.
type StockRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// Driver is the aggregate root for a driver profile and the stock the driver
// carries. Inventory rows are keyed by product; at most one row per product.
type Driver struct {
	id              kernel.UUID
	name            string
	phone           string
	vehicle         string
	licensePlate    string
	isAvailable     bool
	totalDeliveries int
	inventory       []*StockItem
	guard           guard.ConstructorGuard
}

// NewDriver creates an available driver with an empty inventory.
func NewDriver(id kernel.UUID, name, phone, vehicle, licensePlate string) (*Driver, error) {
	d := &Driver{
		vehicle:      strings.TrimSpace(vehicle),
		licensePlate: strings.TrimSpace(licensePlate),
		isAvailable:  true,
		inventory:    make([]*StockItem, 0),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(d.setID(id), d.setName(name), d.setPhone(phone)); err != nil {
		return nil, err
	}
	return d, nil
}

// RestoreDriver rebuilds a persisted driver with its inventory rows.
func RestoreDriver(
	id kernel.UUID,
	name, phone, vehicle, licensePlate string,
	isAvailable bool,
	totalDeliveries int,
	inventory []*StockItem,
) (*Driver, error) {
	d := &Driver{
		vehicle:      strings.TrimSpace(vehicle),
		licensePlate: strings.TrimSpace(licensePlate),
		isAvailable:  isAvailable,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
		d.setTotalDeliveries(totalDeliveries),
		d.setInventory(inventory),
	); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID      { return d.id }
func (d *Driver) Name() string         { return d.name }
func (d *Driver) Phone() string        { return d.phone }
func (d *Driver) Vehicle() string      { return d.vehicle }
func (d *Driver) LicensePlate() string { return d.licensePlate }
func (d *Driver) IsAvailable() bool    { return d.isAvailable }
func (d *Driver) TotalDeliveries() int { return d.totalDeliveries }

// Inventory returns the inventory rows. The slice is a copy, the rows are not.
func (d *Driver) Inventory() []*StockItem {
	return slices.Clone(d.inventory)
}

// Stock returns how many units of productID the driver carries.
func (d *Driver) Stock(productID kernel.UUID) int {
	if item := d.findStockItem(productID); item != nil {
		return item.Quantity()
	}
	return 0
}

// Restock adds quantity units of productID, creating the inventory row when
// the driver had none.
func (d *Driver) Restock(productID kernel.UUID, quantity int) error {
	if item := d.findStockItem(productID); item != nil {
		return item.add(quantity)
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	item, err := NewStockItem(kernel.NewUUID(), productID, quantity)
	if err != nil {
		return err
	}
	d.inventory = append(d.inventory, item)
	return nil
}

// SetStock overwrites the quantity of productID. Zero is allowed.
func (d *Driver) SetStock(productID kernel.UUID, quantity int) error {
	if item := d.findStockItem(productID); item != nil {
		return item.setQuantity(quantity)
	}

	item, err := NewStockItem(kernel.NewUUID(), productID, quantity)
	if err != nil {
		return err
	}
	d.inventory = append(d.inventory, item)
	return nil
}

// CheckAvailability verifies that every request can be served from current
// stock. It reserves nothing. The first shortfall is reported as an
// *InsufficientStockError.
func (d *Driver) CheckAvailability(requests []StockRequest) error {
	for _, r := range requests {
		if r.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", r.Quantity))
		}
		if available := d.Stock(r.ProductID); available < r.Quantity {
			return NewInsufficientStockError(r.ProductID.String(), available, r.Quantity)
		}
	}
	return nil
}

// Withdraw removes quantity units of productID, clamping at zero. It returns
// how many units could not be covered; a missing inventory row yields the
// whole quantity as shortfall.
func (d *Driver) Withdraw(productID kernel.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	item := d.findStockItem(productID)
	if item == nil {
		return quantity, nil
	}
	return item.take(quantity), nil
}

// RecordCompletedDelivery increments the delivered counter.
func (d *Driver) RecordCompletedDelivery() {
	d.totalDeliveries++
}

func (d *Driver) SetAvailability(isAvailable bool) {
	d.isAvailable = isAvailable
}

func (d *Driver) findStockItem(productID kernel.UUID) *StockItem {
	for _, item := range d.inventory {
		if item.ProductID().IsEqual(productID) {
			return item
		}
	}
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phone = phone
	return nil
}

func (d *Driver) setTotalDeliveries(total int) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalDeliveries", fmt.Errorf("%d is negative", total))
	}
	d.totalDeliveries = total
	return nil
}

func (d *Driver) setInventory(inventory []*StockItem) error {
	seen := make(map[kernel.UUID]struct{}, len(inventory))
	for _, item := range inventory {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.ProductID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"inventory", fmt.Errorf("product %s has more than one row", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}
	d.inventory = slices.Clone(inventory)
	if d.inventory == nil {
		d.inventory = make([]*StockItem, 0)
	}
	return nil
}
