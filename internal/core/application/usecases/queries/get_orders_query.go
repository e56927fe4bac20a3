package queries

import (
	"errors"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
	ErrStatusFilterIsInvalid = errors.New("status filter is not a known order status")
)

// GetOrdersQuery lists the orders of a company for the dashboard, newest
// first, optionally filtered by status.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	companyID kernel.UUID
	status    *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for a company's orders. Pass nil status
// to list all orders regardless of state.
func NewGetOrdersQuery(companyID kernel.UUID, status *order.Status) (GetOrdersQuery, error) {
	q := GetOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := companyID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	q.companyID = companyID

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, errors.Join(ErrStatusFilterIsInvalid, err)
		}
		q.status = status
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// CompanyID returns the identifier of the company whose orders are listed.
func (q GetOrdersQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// Status returns the optional status filter; nil means all statuses.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// GetOrdersQueryResponse is one order row of the dashboard list.
type GetOrdersQueryResponse struct {
	ID              string     `json:"id"`
	CustomerName    string     `json:"customer_name"`
	PickupAddress   string     `json:"pickup_address,omitempty"`
	DeliveryAddress string     `json:"delivery_address"`
	WeightKg        float64    `json:"weight_kg"`
	Priority        int        `json:"priority"`
	RequestedDate   *time.Time `json:"requested_date,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}
