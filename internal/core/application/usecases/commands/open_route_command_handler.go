package commands

import (
	"context"
	"log/slog"

	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/core/ports"
)

// OpenRouteCommandHandler flips a planned route to active the first time a
// driver follows their link. Subsequent opens are no-ops and write nothing.
type OpenRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	viewCache  ports.RouteViewCache
	logger     *slog.Logger
}

// NewOpenRouteCommandHandler creates a handler for route opening.
func NewOpenRouteCommandHandler(
	uowFactory RouteUoWFactory,
	viewCache ports.RouteViewCache,
	logger *slog.Logger,
) OpenRouteCommandHandler {
	return OpenRouteCommandHandler{
		uowFactory: uowFactory,
		viewCache:  viewCache,
		logger:     logger.With("component", "open_route"),
	}
}

// Handle processes the open command. Unknown tokens surface as not-found
// errors from the repository.
func (h *OpenRouteCommandHandler) Handle(ctx context.Context, cmd OpenRouteCommand) error {
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

	routeRepo := uow.RouteRepository()
	r, err := routeRepo.GetByAccessToken(ctx, cmd.Token())
	if err != nil {
		return err
	}

	if r.Status() != route.Planned {
		return nil
	}

	r.Open()

	if err = routeRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidateView(ctx, cmd.Token())
	return nil
}

func (h *OpenRouteCommandHandler) invalidateView(ctx context.Context, token route.AccessToken) {
	if err := h.viewCache.Invalidate(ctx, token.String()); err != nil {
		h.logger.WarnContext(ctx, "route view invalidation failed",
			"token", token.String(), "error", err)
	}
}
