package jobs

import (
	"context"
	"log/slog"

	"lastmile/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// NotificationDispatchSchedule runs the dispatcher every five seconds.
const NotificationDispatchSchedule = "*/5 * * * * *"

type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchResult, error)
}

// NotificationDispatchJob drains the outbox on a schedule and hands every
// pending delivery event to the configured notifiers.
type NotificationDispatchJob struct {
	handler       DispatchHandler
	batchSize     int
	maxAttempts   int
	notifications *prometheus.CounterVec
	cron          *cron.Cron
	logger        *slog.Logger

	cancel context.CancelFunc
}

// NewNotificationDispatchJob creates the dispatcher. Overlapping ticks are
// skipped so a slow notifier never causes the same batch to be sent twice.
func NewNotificationDispatchJob(
	handler DispatchHandler,
	batchSize, maxAttempts int,
	notifications *prometheus.CounterVec,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler:       handler,
		batchSize:     batchSize,
		maxAttempts:   maxAttempts,
		notifications: notifications,
		cron:          cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:        logger.With("component", "notification_dispatch_job"),
	}
}

// Start validates the batch settings and schedules the dispatcher.
func (j *NotificationDispatchJob) Start() error {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize, j.maxAttempts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if _, err = j.cron.AddFunc(NotificationDispatchSchedule, func() { j.run(ctx, cmd) }); err != nil {
		cancel()
		return err
	}
	j.cancel = cancel

	j.cron.Start()
	j.logger.InfoContext(ctx, "Notification dispatch job started", "schedule", NotificationDispatchSchedule)
	return nil
}

// Stop cancels an in-flight dispatch and waits for it to return.
func (j *NotificationDispatchJob) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}

func (j *NotificationDispatchJob) run(ctx context.Context, cmd commands.DispatchNotificationsCommand) {
	result, err := j.handler.Handle(ctx, cmd)

	j.notifications.WithLabelValues("sent").Add(float64(result.Sent))
	j.notifications.WithLabelValues("failed").Add(float64(result.Failed))

	if err != nil && ctx.Err() == nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
		return
	}
	if result.Sent > 0 || result.Failed > 0 {
		j.logger.DebugContext(ctx, "Notifications dispatched", "sent", result.Sent, "failed", result.Failed)
	}
}
