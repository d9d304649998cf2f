// Package delivery implements the Delivery aggregate: its status lifecycle,
// requested items and the hiding spot used as proof of delivery.
//
// Key business rules:
//   - a delivery created with a driver starts ASSIGNED, otherwise PENDING
//   - status writes follow an explicit transition table, illegal jumps fail
//     with errs.ErrInvalidState
//   - a hiding spot can only be registered from ASSIGNED or IN_TRANSIT and
//     moves the delivery to HIDDEN
//   - entering DELIVERED sets completedAt once; repeating it is a no-op
//   - reassigning a delivery that is already on the road needs confirmation
package delivery
