package delivery

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lastmile/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
//	PENDING ──> ASSIGNED ──> PICKING_UP ──> IN_TRANSIT ──> HIDDEN ──> DELIVERED
//	                 │                            ▲            ▲
//	                 └────────────────────────────┴────────────┘
//
// CANCELLED and PROBLEM are reachable from every non-terminal state.
// DELIVERED and CANCELLED are terminal.
// PROBLEM can be resolved back to PENDING, ASSIGNED or IN_TRANSIT.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Assigned
	PickingUp
	InTransit
	Hidden
	Delivered
	Cancelled
	Problem
)

var (
	// ErrReassignmentNotConfirmed is the cause attached when a driver is
	// swapped on a delivery that is already on the road without
	// confirmReassign.
	ErrReassignmentNotConfirmed = errors.New("reassigning a delivery in progress requires confirmation")
	// ErrStatusRequiresDedicatedOperation is the cause attached when a plain
	// status write targets ASSIGNED or HIDDEN.
	ErrStatusRequiresDedicatedOperation = errors.New(
		"ASSIGNED is set by driver assignment and HIDDEN by hiding spot registration")
)

func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickingUp: "PICKING_UP",
		InTransit: "IN_TRANSIT",
		Hidden:    "HIDDEN",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
		Problem:   "PROBLEM",
	}
}

// explicitTransitions lists the targets reachable through a plain status
// write. ASSIGNED and HIDDEN are entered only via Assign and Hide.
func explicitTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown has no transitions
	return map[Status][]Status{
		Pending:   {Cancelled, Problem},
		Assigned:  {PickingUp, InTransit, Cancelled, Problem},
		PickingUp: {InTransit, Cancelled, Problem},
		InTransit: {Delivered, Cancelled, Problem},
		Hidden:    {Delivered, Cancelled, Problem},
		Problem:   {Pending, InTransit, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Assigned, PickingUp, InTransit, Hidden, Delivered, Cancelled, Problem}
}

// ParseStatus maps a wire name such as "IN_TRANSIT" to a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames() {
		if status != Unknown && n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a delivery status", s))
}

func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the delivery still waits for a drop-off.
func (s Status) IsActive() bool {
	switch s {
	case Pending, Assigned, PickingUp, InTransit, Problem:
		return true
	default:
		return false
	}
}

// RequiresDriver reports whether a delivery in this status must carry a driver.
func (s Status) RequiresDriver() bool {
	switch s {
	case Assigned, PickingUp, InTransit, Hidden:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a plain status write from s to target is
// allowed.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(explicitTransitions()[s], target)
}

// TransitionTo validates a plain status write and returns the new status.
// Writing the current status again is accepted and returns s unchanged, so
// callers can detect the no-op by comparing.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if target == s {
		return s, nil
	}
	if target == Assigned || target == Hidden {
		return Unknown, errs.NewInvalidStateErrorWithCause("status", s, ErrStatusRequiresDedicatedOperation)
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidStateErrorWithCause(
			"status", s, fmt.Errorf("%s -> %s is not allowed", s, target))
	}
	return target, nil
}

// Assign validates a driver assignment. PENDING, ASSIGNED and PROBLEM accept
// it directly. PICKING_UP and IN_TRANSIT accept it only with confirmReassign.
func (s Status) Assign(confirmReassign bool) (Status, error) {
	switch s {
	case Pending, Assigned, Problem:
		return Assigned, nil
	case PickingUp, InTransit:
		if !confirmReassign {
			return Unknown, errs.NewInvalidStateErrorWithCause("status", s, ErrReassignmentNotConfirmed)
		}
		return Assigned, nil
	default:
		return Unknown, errs.NewInvalidStateErrorWithCause(
			"status", s, fmt.Errorf("%s is not a valid status to assign a driver", s))
	}
}

// ValidateHide checks that a hiding spot may be registered in this status.
func (s Status) ValidateHide() error {
	if s != Assigned && s != InTransit {
		return errs.NewInvalidStateErrorWithCause(
			"status", s, fmt.Errorf("hiding spot can only be registered in %s or %s", Assigned, InTransit))
	}
	return nil
}

// Hide transitions ASSIGNED or IN_TRANSIT to HIDDEN.
func (s Status) Hide() (Status, error) {
	if err := s.ValidateHide(); err != nil {
		return Unknown, err
	}
	return Hidden, nil
}
