// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// OutboxRelayJob runs every second and hands committed outbox messages to the
// notification dispatcher. Messages are written in the same transaction as the state
// change that produced them, so a notification is never sent for a change that rolled
// back. Delivery is at-least-once.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, commands.DefaultRelayBatchSize, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Messages the dispatcher rejects
// stay pending with their attempt count and last error recorded.
package jobs
