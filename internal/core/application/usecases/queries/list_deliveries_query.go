package queries

import (
	"errors"
	"slices"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery lists deliveries, newest first. An empty status list
// and a nil driver mean no filtering on that field.
type ListDeliveriesQuery struct {
	statuses []delivery.Status
	driverID *kernel.UUID
	guard    guard.ConstructorGuard
}

func NewListDeliveriesQuery(statuses []delivery.Status, driverID *kernel.UUID) (ListDeliveriesQuery, error) {
	var validation []error
	for _, s := range statuses {
		validation = append(validation, s.Validate())
	}
	if driverID != nil {
		validation = append(validation, driverID.Validate())
	}
	if err := errors.Join(validation...); err != nil {
		return ListDeliveriesQuery{}, err
	}

	return ListDeliveriesQuery{
		statuses: slices.Clone(statuses),
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) Statuses() []delivery.Status { return slices.Clone(q.statuses) }
func (q ListDeliveriesQuery) DriverID() *kernel.UUID      { return q.driverID }
