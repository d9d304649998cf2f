package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
)

// OutboxMessage is a delivery event stored in the same transaction as the
// state change that raised it.
type OutboxMessage struct {
	Event    delivery.Event
	Attempts int
}

// OutboxRepository reads and acknowledges outbox messages. Messages are
// written by the unit of work on commit, not through this interface.
type OutboxRepository interface {
	// GetPending returns up to limit unprocessed messages with fewer than
	// maxAttempts failed attempts, oldest first.
	GetPending(ctx context.Context, limit, maxAttempts int) ([]OutboxMessage, error)
	MarkProcessed(ctx context.Context, msg OutboxMessage, at time.Time) error
	MarkFailed(ctx context.Context, msg OutboxMessage, cause error) error
}
