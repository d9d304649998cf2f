package jobs

import (
	"fmt"
	"log/slog"

	"lastmile/internal/metrics"
)

// Job is a scheduled task owned by the JobManager.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// DispatchSettings bounds a single notification dispatch run.
type DispatchSettings struct {
	BatchSize   int
	MaxAttempts int
}

// NewJobManager wires the notification dispatcher and the overdue monitor.
func NewJobManager(
	dispatchHandler DispatchHandler,
	overdueHandler OverdueHandler,
	settings DispatchSettings,
	registry *metrics.Registry,
	logger *slog.Logger,
) *JobManager {
	return newJobManager(
		namedJob{"notification dispatch", NewNotificationDispatchJob(
			dispatchHandler, settings.BatchSize, settings.MaxAttempts, registry.Notifications, logger)},
		namedJob{"overdue delivery", NewOverdueDeliveryJob(overdueHandler, registry.DeliveriesOverdue, logger)},
	)
}

func newJobManager(jobs ...namedJob) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts every job in order. If one fails, the jobs already started
// are stopped again before the error is returned.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}
