package queries

import (
	"context"

	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/model/route"

	"gorm.io/gorm"
)

// GetCompanyStatsQueryHandler computes the dashboard headline numbers.
type GetCompanyStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetCompanyStatsQueryHandler creates a handler for company stats.
// Requires a GORM database connection for query execution.
func NewGetCompanyStatsQueryHandler(db *gorm.DB) GetCompanyStatsQueryHandler {
	return GetCompanyStatsQueryHandler{db: db}
}

// Handle executes the aggregation queries for one company.
func (h GetCompanyStatsQueryHandler) Handle(
	ctx context.Context,
	query GetCompanyStatsQuery,
) (GetCompanyStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCompanyStatsQueryResponse{}, err
	}

	var resp GetCompanyStatsQueryResponse
	companyID := query.CompanyID().Bytes()

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = ?)                    AS pending_orders,
			COALESCE(SUM(weight_kg) FILTER (WHERE status = ?), 0) AS pending_weight_kg
		FROM orders
		WHERE company_id = ?
	`, order.Pending, order.Pending, companyID).
		Row().Scan(&resp.PendingOrders, &resp.PendingWeightKg)
	if err != nil {
		return GetCompanyStatsQueryResponse{}, err
	}

	// Delivery time lives on the stop that confirmed it, not on the order.
	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders o
		JOIN route_stops s ON s.order_id = o.id
		WHERE o.company_id = ?
		  AND o.status = ?
		  AND s.completed_at::date = CURRENT_DATE
	`, companyID, order.Delivered).
		Row().Scan(&resp.DeliveredToday)
	if err != nil {
		return GetCompanyStatsQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = ?) AS active_routes,
			COUNT(*) FILTER (WHERE status = ?) AS completed_routes,
			COALESCE(SUM(total_distance_km), 0),
			COALESCE(SUM(total_time_minutes), 0),
			COALESCE(SUM(fuel_cost_eur), 0)
		FROM routes
		WHERE company_id = ?
	`, route.Active, route.Completed, companyID).
		Row().Scan(
		&resp.ActiveRoutes,
		&resp.CompletedRoutes,
		&resp.TotalDistanceKm,
		&resp.TotalTimeMinutes,
		&resp.TotalFuelCostEur,
	)
	if err != nil {
		return GetCompanyStatsQueryResponse{}, err
	}

	return resp, nil
}
