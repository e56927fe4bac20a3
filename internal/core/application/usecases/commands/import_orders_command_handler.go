package commands

import (
	"context"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
)

// ImportOrdersCommandHandler handles bulk order ingestion.
// Rows are admitted independently, each in its own transaction: a row that
// fails validation or persistence is reported back with its line number and
// reason while the remaining rows proceed.
type ImportOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewImportOrdersCommandHandler creates a handler for bulk ingestion.
// Requires an OrderUoWFactory for transactional persistence.
func NewImportOrdersCommandHandler(uowFactory OrderUoWFactory) ImportOrdersCommandHandler {
	return ImportOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bulk ingestion command row by row.
// The result reports admitted order IDs and per-row rejections even when
// zero rows were admitted; only a malformed command itself is an error.
func (h *ImportOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ImportOrdersCommand,
) (ImportOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return ImportOrdersResult{}, err
	}

	result := ImportOrdersResult{
		Admitted: make([]kernel.UUID, 0, len(cmd.Rows())),
		Rejected: make([]RowRejection, 0),
	}

	for _, row := range cmd.Rows() {
		orderID, err := h.admitRow(ctx, cmd.CompanyID(), row)
		if err != nil {
			result.Rejected = append(result.Rejected, RowRejection{
				Line:   row.Line,
				Reason: err.Error(),
			})
			continue
		}

		result.Admitted = append(result.Admitted, orderID)
	}

	return result, nil
}

func (h *ImportOrdersCommandHandler) admitRow(
	ctx context.Context,
	companyID kernel.UUID,
	row OrderRow,
) (kernel.UUID, error) {
	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		companyID,
		row.CustomerName,
		row.PickupAddress,
		row.DeliveryAddress,
		row.WeightKg,
		row.Priority,
		row.RequestedDate,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newOrder.ID(), nil
}
