package queries

import (
	"errors"
	"time"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrGetOverdueDeliveriesQueryIsNotConstructed = errors.New(
	"GetOverdueDeliveriesQuery must be created via NewGetOverdueDeliveriesQuery constructor",
)

// GetOverdueDeliveriesQuery finds active deliveries whose maxDeliveryTime
// lies before now.
type GetOverdueDeliveriesQuery struct {
	now   time.Time
	guard guard.ConstructorGuard
}

func NewGetOverdueDeliveriesQuery(now time.Time) (GetOverdueDeliveriesQuery, error) {
	if now.IsZero() {
		return GetOverdueDeliveriesQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetOverdueDeliveriesQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOverdueDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueDeliveriesQueryIsNotConstructed)
}

func (q GetOverdueDeliveriesQuery) Now() time.Time {
	return q.now
}

type OverdueDelivery struct {
	DeliveryView

	// OverdueBy is how long ago maxDeliveryTime passed.
	OverdueBy time.Duration
}
