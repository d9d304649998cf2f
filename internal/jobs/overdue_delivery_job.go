package jobs

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/application/usecases/queries"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// OverdueDeliverySchedule checks at the top of every minute.
const OverdueDeliverySchedule = "0 * * * * *"

type OverdueHandler interface {
	Handle(ctx context.Context, query queries.GetOverdueDeliveriesQuery) ([]queries.OverdueDelivery, error)
}

// OverdueDeliveryJob reports active deliveries whose max delivery time has
// passed. It only observes; no delivery changes state.
type OverdueDeliveryJob struct {
	handler OverdueHandler
	gauge   prometheus.Gauge
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger

	cancel context.CancelFunc
}

func NewOverdueDeliveryJob(handler OverdueHandler, gauge prometheus.Gauge, logger *slog.Logger) *OverdueDeliveryJob {
	return &OverdueDeliveryJob{
		handler: handler,
		gauge:   gauge,
		now:     func() time.Time { return time.Now().UTC() },
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "overdue_delivery_job"),
	}
}

// Start schedules the check.
func (j *OverdueDeliveryJob) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := j.cron.AddFunc(OverdueDeliverySchedule, func() { j.run(ctx) }); err != nil {
		cancel()
		return err
	}
	j.cancel = cancel

	j.cron.Start()
	j.logger.InfoContext(ctx, "Overdue delivery job started", "schedule", OverdueDeliverySchedule)
	return nil
}

// Stop stops the overdue delivery job.
func (j *OverdueDeliveryJob) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue delivery job stopped")
}

func (j *OverdueDeliveryJob) run(ctx context.Context) {
	query, err := queries.NewGetOverdueDeliveriesQuery(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue delivery job failed", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.ErrorContext(ctx, "Overdue delivery job failed", "error", err)
		}
		return
	}

	j.gauge.Set(float64(len(overdue)))
	for _, d := range overdue {
		attrs := []any{
			"delivery_id", d.ID.String(),
			"status", d.Status.String(),
			"client", d.ClientName,
			"max_delivery_time", d.MaxDeliveryTime,
			"overdue_by", d.OverdueBy.Round(time.Second).String(),
		}
		if d.DriverID != nil {
			attrs = append(attrs, "driver_id", d.DriverID.String(), "driver", d.DriverName)
		}
		j.logger.WarnContext(ctx, "Delivery is overdue", attrs...)
	}
}
