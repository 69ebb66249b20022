// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the warehouse service.
//
// # Available Jobs
//
// 1. StatusReconciliationJob - Runs every minute to re-derive parent order
// statuses from their sub-orders and repair any drift
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses the cron expression "0 * * * * *", running at
// the top of every minute. Parent statuses are normally updated inline with
// each sub-order transition; the sweep only catches drift from missed or
// partially applied updates, so a minute of lag is acceptable.
package jobs
