package queries

import (
	"errors"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/guard"
)

var ErrGetCompanyStatsQueryIsNotConstructed = errors.New(
	"GetCompanyStatsQuery must be created via NewGetCompanyStatsQuery constructor",
)

// GetCompanyStatsQuery aggregates the dashboard headline numbers for one
// company: what is waiting to be planned and what is on the road right now.
type GetCompanyStatsQuery struct { //nolint:recvcheck //using for validation
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCompanyStatsQuery creates a stats query for a company.
func NewGetCompanyStatsQuery(companyID kernel.UUID) (GetCompanyStatsQuery, error) {
	q := GetCompanyStatsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := companyID.Validate(); err != nil {
		return GetCompanyStatsQuery{}, err
	}
	q.companyID = companyID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCompanyStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetCompanyStatsQueryIsNotConstructed)
}

// CompanyID returns the identifier of the company the stats cover.
func (q GetCompanyStatsQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// GetCompanyStatsQueryResponse carries the dashboard headline numbers.
type GetCompanyStatsQueryResponse struct {
	PendingOrders    int     `json:"pending_orders"`
	PendingWeightKg  float64 `json:"pending_weight_kg"`
	ActiveRoutes     int     `json:"active_routes"`
	DeliveredToday   int     `json:"delivered_today"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalFuelCostEur float64 `json:"total_fuel_cost_eur"`
	TotalTimeMinutes float64 `json:"total_time_minutes"`
	CompletedRoutes  int     `json:"completed_routes"`
}
