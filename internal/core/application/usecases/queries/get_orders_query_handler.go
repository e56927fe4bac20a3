package queries

import (
	"context"

	"routeplan/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists the orders of a company from the database.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for dashboard order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted newest first; the optional
// status filter narrows the list.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			customer_name,
			pickup_address,
			delivery_address,
			weight_kg,
			priority,
			requested_date,
			status,
			created_at
		FROM orders
		WHERE company_id = ?
	`
	args := []any{query.CompanyID().Bytes()}

	if query.Status() != nil {
		sql += " AND status = ?"
		args = append(args, int(*query.Status()))
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(
			&id,
			&resp.CustomerName,
			&resp.PickupAddress,
			&resp.DeliveryAddress,
			&resp.WeightKg,
			&resp.Priority,
			&resp.RequestedDate,
			&status,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		resp.ID = id.String()
		resp.Status = order.Status(status).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
