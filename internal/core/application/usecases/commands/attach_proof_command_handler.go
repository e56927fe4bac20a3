package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"routeplan/internal/core/ports"
	"routeplan/internal/pkg/keymutex"
)

// AttachProofCommandHandler stages delivery proof on the active stop.
// Photos go to durable object storage first; only the returned reference is
// kept on the stop, so a crash between upload and commit at worst leaves an
// orphaned object that the next upload for the same stop overwrites.
type AttachProofCommandHandler struct {
	uowFactory RouteUoWFactory
	proofStore ports.ProofStore
	viewCache  ports.RouteViewCache
	routeLocks *keymutex.KeyMutex
	logger     *slog.Logger
}

// NewAttachProofCommandHandler creates a handler for proof staging.
func NewAttachProofCommandHandler(
	uowFactory RouteUoWFactory,
	proofStore ports.ProofStore,
	viewCache ports.RouteViewCache,
	routeLocks *keymutex.KeyMutex,
	logger *slog.Logger,
) AttachProofCommandHandler {
	return AttachProofCommandHandler{
		uowFactory: uowFactory,
		proofStore: proofStore,
		viewCache:  viewCache,
		routeLocks: routeLocks,
		logger:     logger.With("component", "attach_proof"),
	}
}

// Handle processes the proof staging. The stop must be active; staging has no
// status effect and may be repeated until the stop completes.
func (h *AttachProofCommandHandler) Handle(ctx context.Context, cmd AttachProofCommand) error {
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

	var photoRef *string
	if len(cmd.Photo()) > 0 {
		key := fmt.Sprintf("routes/%s/stops/%d/photo", r.ID().String(), cmd.Sequence())
		ref, putErr := h.proofStore.Put(ctx, key, cmd.ContentType(), bytes.NewReader(cmd.Photo()))
		if putErr != nil {
			return putErr
		}
		photoRef = &ref
	}

	if err = r.AttachProof(cmd.Sequence(), photoRef, cmd.Note()); err != nil {
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
