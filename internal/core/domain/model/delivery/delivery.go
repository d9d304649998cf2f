package delivery

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// Delivery is the aggregate root of a last-mile delivery. It owns its items
// and at most one hiding spot and enforces the status transition table.
//
// Invariants:
//   - maxDeliveryTime is fixed at creation and never changes
//   - completedAt is set exactly once, when DELIVERED is entered
//   - ASSIGNED, PICKING_UP, IN_TRANSIT and HIDDEN always carry a driver
//   - a hiding spot exists if and only if HIDDEN was entered
type Delivery struct {
	id                    kernel.UUID
	details               Details
	items                 []Item
	driverID              *kernel.UUID
	status                Status
	createdAt             time.Time
	estimatedDeliveryTime time.Time
	maxDeliveryTime       time.Time
	completedAt           *time.Time
	hidingSpot            *HidingSpot

	events []Event
	guard  guard.ConstructorGuard
}

// NewDelivery creates a delivery. With a driver the delivery starts in
// ASSIGNED, otherwise in PENDING. ETA and maxDeliveryTime are derived from
// createdAt and window.
//
//	details, _ := delivery.NewDetails("Jane", "+33600000000", "1 rue de Rivoli, Paris")
//	item, _ := delivery.NewItem(productID, 2)
//	d, err := delivery.NewDelivery(kernel.NewUUID(), details, []delivery.Item{item},
//	    &driverID, time.Now(), delivery.DefaultTimeWindow())
func NewDelivery(
	id kernel.UUID,
	details Details,
	items []Item,
	driverID *kernel.UUID,
	createdAt time.Time,
	window TimeWindow,
) (*Delivery, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	status := Pending
	if driverID != nil {
		status = Assigned
	}

	d := &Delivery{
		status:                status,
		createdAt:             createdAt,
		estimatedDeliveryTime: createdAt.Add(window.ETAOffset),
		maxDeliveryTime:       createdAt.Add(window.MaxDuration),
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDetails(details),
		d.setItems(items),
		d.setDriverID(driverID),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	d.raise(Event{Type: EventCreated, Status: status, DriverID: driverID, OccurredAt: createdAt})
	return d, nil
}

// RestoreDelivery rebuilds a persisted delivery. It raises no events.
func RestoreDelivery(
	id kernel.UUID,
	details Details,
	items []Item,
	driverID *kernel.UUID,
	status Status,
	createdAt time.Time,
	estimatedDeliveryTime time.Time,
	maxDeliveryTime time.Time,
	completedAt *time.Time,
	hidingSpot *HidingSpot,
) (*Delivery, error) {
	d := &Delivery{
		estimatedDeliveryTime: estimatedDeliveryTime,
		maxDeliveryTime:       maxDeliveryTime,
		completedAt:           completedAt,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDetails(details),
		d.setItems(items),
		d.setDriverID(driverID),
		d.setCreatedAt(createdAt),
		d.setStatus(status),
		d.setHidingSpot(hidingSpot),
	); err != nil {
		return nil, err
	}

	if err := d.validateConsistency(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Delivery) ID() kernel.UUID                  { return d.id }
func (d *Delivery) Details() Details                 { return d.details }
func (d *Delivery) Status() Status                   { return d.status }
func (d *Delivery) DriverID() *kernel.UUID           { return d.driverID }
func (d *Delivery) CreatedAt() time.Time             { return d.createdAt }
func (d *Delivery) EstimatedDeliveryTime() time.Time { return d.estimatedDeliveryTime }
func (d *Delivery) MaxDeliveryTime() time.Time       { return d.maxDeliveryTime }
func (d *Delivery) CompletedAt() *time.Time          { return d.completedAt }
func (d *Delivery) HidingSpot() *HidingSpot          { return d.hidingSpot }

// Items returns a copy of the requested items.
func (d *Delivery) Items() []Item {
	return slices.Clone(d.items)
}

// Assign attaches driverID and moves the delivery to ASSIGNED. Swapping the
// driver of a delivery that is PICKING_UP or IN_TRANSIT requires
// confirmReassign; terminal and HIDDEN deliveries are rejected.
func (d *Delivery) Assign(driverID kernel.UUID, confirmReassign bool, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}

	newStatus, err := d.status.Assign(confirmReassign)
	if err != nil {
		return err
	}

	previous := d.status
	d.status = newStatus
	d.driverID = &driverID
	d.raise(Event{
		Type:           EventDriverAssigned,
		Status:         newStatus,
		PreviousStatus: previous,
		DriverID:       &driverID,
		OccurredAt:     now,
	})
	return nil
}

// ChangeStatus applies a plain status write following the transition table.
// Re-sending the current status is a no-op and reports changed=false, so
// repeated DELIVERED writes never re-run completion side effects.
// Entering DELIVERED sets completedAt to now.
func (d *Delivery) ChangeStatus(target Status, now time.Time) (bool, error) {
	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return false, err
	}
	if newStatus == d.status {
		return false, nil
	}
	if newStatus.RequiresDriver() && d.driverID == nil {
		return false, errs.NewInvalidStateErrorWithCause(
			"driverId", "unassigned", fmt.Errorf("%s requires an assigned driver", newStatus))
	}

	previous := d.status
	d.status = newStatus
	if newStatus == Delivered && d.completedAt == nil {
		completedAt := now
		d.completedAt = &completedAt
	}

	d.raise(Event{
		Type:           EventStatusChanged,
		Status:         newStatus,
		PreviousStatus: previous,
		DriverID:       d.driverID,
		OccurredAt:     now,
	})
	return true, nil
}

// CanRegisterHidingSpot reports, as an error, why a hiding spot cannot be
// registered right now. It performs no changes.
func (d *Delivery) CanRegisterHidingSpot() error {
	if d.hidingSpot != nil {
		return errs.NewInvalidStateErrorWithCause(
			"hidingSpot", d.hidingSpot.ID(), errors.New("a hiding spot is already registered"))
	}
	return d.status.ValidateHide()
}

// RegisterHidingSpot stores the hiding spot and moves the delivery to HIDDEN.
func (d *Delivery) RegisterHidingSpot(spot *HidingSpot, now time.Time) error {
	if err := spot.Validate(); err != nil {
		return err
	}
	if err := d.CanRegisterHidingSpot(); err != nil {
		return err
	}

	newStatus, err := d.status.Hide()
	if err != nil {
		return err
	}

	previous := d.status
	d.status = newStatus
	d.hidingSpot = spot
	d.raise(Event{
		Type:           EventStatusChanged,
		Status:         newStatus,
		PreviousStatus: previous,
		DriverID:       d.driverID,
		OccurredAt:     now,
	})
	return nil
}

// IsOverdue reports whether an active delivery has passed maxDeliveryTime.
func (d *Delivery) IsOverdue(now time.Time) bool {
	return d.status.IsActive() && now.After(d.maxDeliveryTime)
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (d *Delivery) DomainEvents() []Event {
	return slices.Clone(d.events)
}

func (d *Delivery) ClearDomainEvents() {
	d.events = nil
}

func (d *Delivery) raise(e Event) {
	e.ID = kernel.NewUUID()
	e.DeliveryID = d.id
	d.events = append(d.events, e)
}

func (d *Delivery) validateConsistency() error {
	if d.status.RequiresDriver() && d.driverID == nil {
		return errs.NewInvalidStateErrorWithCause(
			"status", d.status, errors.New("status requires an assigned driver"))
	}
	if d.status == Hidden && d.hidingSpot == nil {
		return errs.NewInvalidStateErrorWithCause("status", d.status, errors.New("hiding spot is missing"))
	}
	if d.status == Delivered && d.completedAt == nil {
		return errs.NewInvalidStateErrorWithCause("status", d.status, errors.New("completedAt is missing"))
	}
	if d.maxDeliveryTime.Before(d.createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxDeliveryTime", errors.New("maxDeliveryTime precedes createdAt"))
	}
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	d.details = details
	return nil
}

func (d *Delivery) setItems(items []Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	d.items = slices.Clone(items)
	return nil
}

func (d *Delivery) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		d.driverID = nil
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driverId", err)
	}
	id := *driverID
	d.driverID = &id
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setHidingSpot(spot *HidingSpot) error {
	if spot == nil {
		return nil
	}
	if err := spot.Validate(); err != nil {
		return err
	}
	d.hidingSpot = spot
	return nil
}
