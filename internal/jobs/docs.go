// Package jobs provides scheduled background tasks for the route planning
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery workflow.
//
// # Available Jobs
//
// 1. ReconcileRetryJob - Runs every second to retry order reconciliation for
// completed stops whose first synchronization attempt failed. Stop completion
// is authoritative; this job guarantees the order eventually reaches
// Delivered without ever rolling the stop back.
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
// The manager doubles as the ReconcileScheduler handed to the stop-completion
// command, so failed synchronizations land on the retry queue directly.
package jobs
