package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrListDriversQueryIsNotConstructed = errors.New(
	"ListDriversQuery must be created via NewListDriversQuery constructor",
)

// ListDriversQuery lists driver profiles sorted by name.
type ListDriversQuery struct {
	availableOnly bool
	guard         guard.ConstructorGuard
}

func NewListDriversQuery(availableOnly bool) ListDriversQuery {
	return ListDriversQuery{availableOnly: availableOnly, guard: guard.NewConstructorGuard()}
}

func (q ListDriversQuery) Validate() error {
	return q.guard.Validate(ErrListDriversQueryIsNotConstructed)
}

func (q ListDriversQuery) AvailableOnly() bool {
	return q.availableOnly
}

// DriverView carries the driver's current workload: one counter per
// active delivery status.
type DriverView struct {
	ID              kernel.UUID
	Name            string
	Phone           string
	Vehicle         string
	LicensePlate    string
	IsAvailable     bool
	TotalDeliveries int
	Assigned        int
	PickingUp       int
	InTransit       int
}

func (v DriverView) ActiveDeliveries() int {
	return v.Assigned + v.PickingUp + v.InTransit
}
