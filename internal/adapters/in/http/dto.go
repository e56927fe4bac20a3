package http

import "time"

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AdmitOrderRequest is the body for POST /api/v1/orders.
type AdmitOrderRequest struct {
	CustomerName    string     `json:"customer_name"    validate:"required"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address" validate:"required"`
	WeightKg        float64    `json:"weight_kg"        validate:"gte=0"`
	Priority        int        `json:"priority"         validate:"omitempty,gte=1"`
	RequestedDate   *time.Time `json:"requested_date"`
}

// AdmitOrderResponse returns the identifier of the admitted order.
type AdmitOrderResponse struct {
	OrderID string `json:"order_id"`
}

// ImportOrdersResponse reports the per-row outcome of a CSV upload.
type ImportOrdersResponse struct {
	Admitted []string           `json:"admitted"`
	Rejected []RejectedRowEntry `json:"rejected"`
}

// RejectedRowEntry describes one skipped CSV line.
type RejectedRowEntry struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// PlanRoutesRequest is the body for POST /api/v1/planning/create.
type PlanRoutesRequest struct {
	StartAddress string `json:"start_address" validate:"required"`
}

// PlannedRouteResponse summarizes one committed route of a planning round.
type PlannedRouteResponse struct {
	RouteID          string  `json:"route_id"`
	AccessToken      string  `json:"access_token"`
	Stops            int     `json:"stops"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalTimeMinutes float64 `json:"total_time_minutes"`
	FuelCostEur      float64 `json:"fuel_cost_eur"`
}

// PlanRoutesResponse is the result of a planning round.
type PlanRoutesResponse struct {
	Routes []PlannedRouteResponse `json:"routes"`
}
