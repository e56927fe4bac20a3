package commands

import (
	"context"
	"errors"
	"log/slog"

	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/pkg/errs"
)

// ReconcileStopCommandHandler syncs a completed stop back onto its order,
// moving the order from assigned to delivered.
//
// Outcomes that cannot improve on retry are acknowledged as success: an
// order that no longer exists, is already delivered, or was cancelled in the
// meantime. Only infrastructure errors propagate, so the retry job knows to
// keep the stop queued.
type ReconcileStopCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewReconcileStopCommandHandler creates a handler for stop reconciliation.
func NewReconcileStopCommandHandler(uowFactory UoWFactory, logger *slog.Logger) ReconcileStopCommandHandler {
	return ReconcileStopCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_stop"),
	}
}

// Handle processes the reconciliation for one completed stop.
func (h *ReconcileStopCommandHandler) Handle(ctx context.Context, cmd ReconcileStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RouteRepository().Get(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	stop, err := r.Stop(cmd.Sequence())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, stop.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.InfoContext(ctx, "order gone, acknowledging reconciliation",
				"route_id", cmd.RouteID().String(), "sequence", cmd.Sequence())
			return nil
		}
		return err
	}

	if o.Status() == order.Delivered {
		return nil
	}

	if err = o.Deliver(); err != nil {
		if errors.Is(err, errs.ErrIllegalStateTransition) {
			h.logger.InfoContext(ctx, "order not deliverable, acknowledging reconciliation",
				"order_id", o.ID().String(), "status", o.Status().String())
			return nil
		}
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
