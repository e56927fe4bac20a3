package commands

import (
	"context"

	"routeplan/internal/core/domain/model/order"
)

// AdmitOrderCommandHandler handles the business logic for order admission.
// Creates new orders in pending status, ready to be picked up by route planning.
type AdmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdmitOrderCommandHandler creates a handler for order admission operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewAdmitOrderCommandHandler(uowFactory OrderUoWFactory) AdmitOrderCommandHandler {
	return AdmitOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order admission command.
// Creates the order in pending status inside a transaction.
func (h *AdmitOrderCommandHandler) Handle(ctx context.Context, cmd AdmitOrderCommand) error {
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

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CompanyID(),
		cmd.CustomerName(),
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		cmd.WeightKg(),
		cmd.Priority(),
		cmd.RequestedDate(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
