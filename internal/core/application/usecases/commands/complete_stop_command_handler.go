package commands

import (
	"context"
	"log/slog"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/ports"
	"routeplan/internal/pkg/keymutex"
)

// CompleteStopCommandHandler confirms the delivery of a stop and triggers the
// order reconciliation that follows it.
//
// Completion commits first and stands on its own. Reconciliation runs once
// right after; if it fails the stop is handed to the scheduler and the retry
// job drives it to completion. The driver always gets a success once the stop
// itself committed.
type CompleteStopCommandHandler struct {
	uowFactory RouteUoWFactory
	reconciler ReconcileStopCommandHandler
	scheduler  ReconcileScheduler
	viewCache  ports.RouteViewCache
	routeLocks *keymutex.KeyMutex
	logger     *slog.Logger
}

// NewCompleteStopCommandHandler creates a handler for stop completion.
func NewCompleteStopCommandHandler(
	uowFactory RouteUoWFactory,
	reconciler ReconcileStopCommandHandler,
	scheduler ReconcileScheduler,
	viewCache ports.RouteViewCache,
	routeLocks *keymutex.KeyMutex,
	logger *slog.Logger,
) CompleteStopCommandHandler {
	return CompleteStopCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
		scheduler:  scheduler,
		viewCache:  viewCache,
		routeLocks: routeLocks,
		logger:     logger.With("component", "complete_stop"),
	}
}

// Handle processes the completion. The stop must be active; completing a
// pending stop rejects with a state error, while a retried completion of an
// already completed stop acks without changing anything. The route
// auto-completes when its last stop completes.
func (h *CompleteStopCommandHandler) Handle(ctx context.Context, cmd CompleteStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.routeLocks.Lock(cmd.Token().String())
	defer h.routeLocks.Unlock(cmd.Token().String())

	routeID, err := h.completeStop(ctx, cmd)
	if err != nil {
		return err
	}

	if err = h.viewCache.Invalidate(ctx, cmd.Token().String()); err != nil {
		h.logger.WarnContext(ctx, "route view invalidation failed",
			"token", cmd.Token().String(), "error", err)
	}

	h.reconcile(ctx, routeID, cmd.Sequence())
	return nil
}

func (h *CompleteStopCommandHandler) completeStop(
	ctx context.Context,
	cmd CompleteStopCommand,
) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.GetByAccessToken(ctx, cmd.Token())
	if err != nil {
		return kernel.UUID{}, err
	}

	if _, err = r.CompleteStop(cmd.Sequence(), time.Now().UTC()); err != nil {
		return kernel.UUID{}, err
	}

	if err = routeRepo.Update(ctx, r); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return r.ID(), nil
}

// reconcile runs the order sync once and falls back to the retry queue.
func (h *CompleteStopCommandHandler) reconcile(ctx context.Context, routeID kernel.UUID, sequence int) {
	reconcileCmd, err := NewReconcileStopCommand(routeID, sequence)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile command rejected",
			"route_id", routeID.String(), "sequence", sequence, "error", err)
		return
	}

	if err = h.reconciler.Handle(ctx, reconcileCmd); err != nil {
		h.logger.WarnContext(ctx, "reconciliation failed, scheduling retry",
			"route_id", routeID.String(), "sequence", sequence, "error", err)
		h.scheduler.Schedule(routeID, sequence)
	}
}
