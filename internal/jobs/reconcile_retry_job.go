package jobs

import (
	"context"
	"log/slog"
	"sync"

	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// pendingStop identifies a completed stop awaiting order reconciliation.
type pendingStop struct {
	RouteID  kernel.UUID
	Sequence int
}

// ReconcileRetryJob drains the queue of completed stops whose order update
// failed on the first attempt. Stops are re-queued until reconciliation
// succeeds; the underlying command is idempotent so duplicate entries are
// harmless.
type ReconcileRetryJob struct {
	handler commands.ReconcileStopCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger

	mu    sync.Mutex
	queue []pendingStop
}

// NewReconcileRetryJob creates a retry job around the reconcile handler.
func NewReconcileRetryJob(
	handler commands.ReconcileStopCommandHandler, logger *slog.Logger,
) *ReconcileRetryJob {
	return &ReconcileRetryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reconcile_retry_job"),
	}
}

// Schedule enqueues a stop for a later reconciliation attempt.
// Implements commands.ReconcileScheduler and never blocks.
func (j *ReconcileRetryJob) Schedule(routeID kernel.UUID, sequence int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.queue = append(j.queue, pendingStop{RouteID: routeID, Sequence: sequence})
}

// Start begins draining the retry queue every second.
func (j *ReconcileRetryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", j.drain)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconcile retry job started (running every second)")
	return nil
}

// Stop stops the retry job. Queued entries stay in memory until Start runs
// again or the process exits.
func (j *ReconcileRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconcile retry job stopped")
}

// drain attempts every queued stop once, re-queueing the ones that fail.
func (j *ReconcileRetryJob) drain() {
	j.mu.Lock()
	batch := j.queue
	j.queue = nil
	j.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	ctx := context.Background()
	for _, stop := range batch {
		if err := j.reconcile(ctx, stop); err != nil {
			j.logger.WarnContext(ctx, "Stop reconciliation failed, keeping it queued",
				"routeID", stop.RouteID.String(),
				"sequence", stop.Sequence,
				"error", err)
			j.Schedule(stop.RouteID, stop.Sequence)
		}
	}
}

func (j *ReconcileRetryJob) reconcile(ctx context.Context, stop pendingStop) error {
	cmd, err := commands.NewReconcileStopCommand(stop.RouteID, stop.Sequence)
	if err != nil {
		return err
	}

	return j.handler.Handle(ctx, cmd)
}
