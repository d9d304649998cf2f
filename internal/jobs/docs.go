// Package jobs provides scheduled background tasks for the delivery service.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds precision.
//
// # Available Jobs
//
//  1. NotificationDispatchJob - every 5 seconds drains the outbox and hands
//     delivery events to the notifiers (Telegram, Kafka)
//  2. OverdueDeliveryJob - every minute logs active deliveries past their
//     max delivery time and exports the count as deliveries_overdue
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchHandler, overdueHandler,
//		jobs.DispatchSettings{BatchSize: 50, MaxAttempts: 5}, registry, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Run errors are logged and the job keeps its schedule. Failed job starts
// stop any already running jobs.
package jobs
