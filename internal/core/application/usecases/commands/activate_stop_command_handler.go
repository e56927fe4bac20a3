package commands

import (
	"context"
	"log/slog"

	"routeplan/internal/core/ports"
	"routeplan/internal/pkg/keymutex"
)

// ActivateStopCommandHandler handles marking a stop as the one currently
// being served. Stop transitions of one route are serialized with a per-route
// lock so two driver devices sharing a link cannot race the one-active-stop
// invariant.
type ActivateStopCommandHandler struct {
	uowFactory RouteUoWFactory
	viewCache  ports.RouteViewCache
	routeLocks *keymutex.KeyMutex
	logger     *slog.Logger
}

// NewActivateStopCommandHandler creates a handler for stop activation.
func NewActivateStopCommandHandler(
	uowFactory RouteUoWFactory,
	viewCache ports.RouteViewCache,
	routeLocks *keymutex.KeyMutex,
	logger *slog.Logger,
) ActivateStopCommandHandler {
	return ActivateStopCommandHandler{
		uowFactory: uowFactory,
		viewCache:  viewCache,
		routeLocks: routeLocks,
		logger:     logger.With("component", "activate_stop"),
	}
}

// Handle processes the activation. Re-activating the already active stop is
// a no-op; a completed stop rejects the transition.
func (h *ActivateStopCommandHandler) Handle(ctx context.Context, cmd ActivateStopCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.routeLocks.Lock(cmd.Token().String())
	defer h.routeLocks.Unlock(cmd.Token().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.GetByAccessToken(ctx, cmd.Token())
	if err != nil {
		return err
	}

	if err = r.ActivateStop(cmd.Sequence()); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.viewCache.Invalidate(ctx, cmd.Token().String()); err != nil {
		h.logger.WarnContext(ctx, "route view invalidation failed",
			"token", cmd.Token().String(), "error", err)
	}

	return nil
}
