package commands

import (
	"errors"
	"fmt"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	DefaultDispatchBatchSize   = 50
	DefaultDispatchMaxAttempts = 5
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand drains at most batchSize outbox messages.
// Messages that already failed maxAttempts times are left alone.
func NewDispatchNotificationsCommand(batchSize, maxAttempts int) (DispatchNotificationsCommand, error) {
	if batchSize <= 0 {
		return DispatchNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batchSize", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	if maxAttempts <= 0 {
		return DispatchNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"maxAttempts", fmt.Errorf("%d is not greater than 0", maxAttempts))
	}

	return DispatchNotificationsCommand{
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int   { return c.batchSize }
func (c DispatchNotificationsCommand) MaxAttempts() int { return c.maxAttempts }
