package jobs

import (
	"fmt"
	"log/slog"

	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconcileRetryJob *ReconcileRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	reconcileHandler commands.ReconcileStopCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconcileRetryJob: NewReconcileRetryJob(reconcileHandler, logger),
	}
}

// ReconcileScheduler exposes the retry queue for the stop-completion command.
func (jm *JobManager) ReconcileScheduler() *ReconcileRetryJob {
	return jm.reconcileRetryJob
}

// Schedule forwards to the retry queue so the manager itself satisfies
// commands.ReconcileScheduler.
func (jm *JobManager) Schedule(routeID kernel.UUID, sequence int) {
	jm.reconcileRetryJob.Schedule(routeID, sequence)
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconcileRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconcile retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconcileRetryJob.Stop()
}
