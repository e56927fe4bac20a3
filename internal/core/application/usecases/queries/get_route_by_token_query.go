// Package queries contains read-only operations over the persistence layer.
// Implements the query side of the CQRS architecture: handlers execute raw
// SQL and map rows straight into response structs, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/guard"
)

var ErrGetRouteByTokenQueryIsNotConstructed = errors.New(
	"GetRouteByTokenQuery must be created via NewGetRouteByTokenQuery constructor",
)

// GetRouteByTokenQuery retrieves the driver view of a route by its access
// token. The token is the sole credential a driver holds.
type GetRouteByTokenQuery struct { //nolint:recvcheck //using for validation
	token route.AccessToken

	guard guard.ConstructorGuard
}

// NewGetRouteByTokenQuery creates a query from the driver link token.
func NewGetRouteByTokenQuery(token route.AccessToken) (GetRouteByTokenQuery, error) {
	q := GetRouteByTokenQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := token.Validate(); err != nil {
		return GetRouteByTokenQuery{}, err
	}
	q.token = token

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteByTokenQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteByTokenQueryIsNotConstructed)
}

// Token returns the route access token.
func (q GetRouteByTokenQuery) Token() route.AccessToken {
	return q.token
}

// RouteStopView is one stop of the driver view, joined with its order data.
type RouteStopView struct {
	Sequence     int        `json:"sequence"`
	CustomerName string     `json:"customer_name"`
	Address      string     `json:"address"`
	WeightKg     float64    `json:"weight_kg"`
	Status       string     `json:"status"`
	Note         *string    `json:"note,omitempty"`
	PhotoRef     *string    `json:"photo_ref,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// GetRouteByTokenQueryResponse is the full driver view of one route.
// The JSON shape doubles as the cache representation.
type GetRouteByTokenQueryResponse struct {
	RouteDate        time.Time       `json:"route_date"`
	Status           string          `json:"status"`
	TotalDistanceKm  float64         `json:"total_distance_km"`
	TotalTimeMinutes float64         `json:"total_time_minutes"`
	FuelCostEur      float64         `json:"fuel_cost_eur"`
	Stops            []RouteStopView `json:"stops"`
}
