package commands

import (
	"context"
	"errors"
	"log/slog"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/core/domain/services"
	"routeplan/internal/core/ports"
	"routeplan/internal/pkg/keymutex"
)

// PlanRoutesCommandHandler runs one optimization round for a company.
//
// The workflow:
//  1. Acquire the per-company planning slot; a second concurrent request is
//     rejected with ErrPlanningInProgress instead of queueing.
//  2. Load all pending orders of the company.
//  3. Call the external optimizer with the full pending set.
//  4. Validate the proposal through the RouteBuilder and mint routes with
//     fresh access tokens.
//  5. Persist each route and its order assignments in one transaction per
//     route.
//  6. Send the driver link for every committed route, best effort.
type PlanRoutesCommandHandler struct {
	uowFactory UoWFactory
	optimizer  ports.OptimizerClient
	notifier   ports.DriverNotifier
	builder    services.RouteBuilder
	planLocks  *keymutex.KeyMutex
	logger     *slog.Logger
}

// NewPlanRoutesCommandHandler creates a handler for route planning.
func NewPlanRoutesCommandHandler(
	uowFactory UoWFactory,
	optimizer ports.OptimizerClient,
	notifier ports.DriverNotifier,
	planLocks *keymutex.KeyMutex,
	logger *slog.Logger,
) PlanRoutesCommandHandler {
	return PlanRoutesCommandHandler{
		uowFactory: uowFactory,
		optimizer:  optimizer,
		notifier:   notifier,
		builder:    services.NewRouteBuilder(),
		planLocks:  planLocks,
		logger:     logger.With("component", "plan_routes"),
	}
}

// Handle processes the planning command and returns the committed routes.
//
// A proposal the RouteBuilder rejects is surfaced as a non-transient
// *ports.OptimizationError and leaves every order pending. Routes already
// committed when a later route fails to persist stay committed; their orders
// are assigned and the remaining orders stay pending for the next round.
func (h *PlanRoutesCommandHandler) Handle(
	ctx context.Context,
	cmd PlanRoutesCommand,
) ([]*route.Route, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.planLocks.TryLock(cmd.CompanyID().String()) {
		return nil, ErrPlanningInProgress
	}
	defer h.planLocks.Unlock(cmd.CompanyID().String())

	pending, err := h.loadPendingOrders(ctx, cmd.CompanyID())
	if err != nil {
		return nil, err
	}

	if len(pending) == 0 {
		return nil, ErrNoPendingOrders
	}

	proposals, err := h.optimizer.Optimize(ctx, cmd.CompanyID(), cmd.StartAddress(), pending)
	if err != nil {
		return nil, err
	}

	routes, err := h.builder.Build(cmd.CompanyID(), proposals, pending)
	if err != nil {
		if errors.Is(err, services.ErrProposalInvalid) {
			return nil, &ports.OptimizationError{
				Message:   "optimizer returned an unusable plan",
				Transient: false,
				Cause:     err,
			}
		}
		return nil, err
	}

	committed := make([]*route.Route, 0, len(routes))
	for _, r := range routes {
		if err = h.persistRoute(ctx, r); err != nil {
			return committed, err
		}
		committed = append(committed, r)
	}

	for _, r := range committed {
		if notifyErr := h.notifier.NotifyRoutePlanned(ctx, r); notifyErr != nil {
			h.logger.WarnContext(ctx, "driver notification failed",
				"route_id", r.ID().String(), "error", notifyErr)
		}
	}

	return committed, nil
}

func (h *PlanRoutesCommandHandler) loadPendingOrders(
	ctx context.Context,
	companyID kernel.UUID,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllInPendingStatus(ctx, companyID)
}

// persistRoute writes one route and the assignment of its orders atomically.
//
// The orders are re-loaded inside the transaction and assigned against their
// current status, not the snapshot taken before the optimizer call: an order
// cancelled while the optimizer was running fails the transition and rolls
// the whole route back instead of being silently resurrected.
func (h *PlanRoutesCommandHandler) persistRoute(ctx context.Context, r *route.Route) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RouteRepository().Add(ctx, r); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, stop := range r.Stops() {
		o, err := orderRepo.Get(ctx, stop.OrderID())
		if err != nil {
			return err
		}

		if err = o.Assign(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
