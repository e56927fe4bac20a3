package ports

import (
	"context"
	"fmt"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/services"
)

// OptimizationError reports a failed route-planning request. Transient marks
// failures worth retrying later (timeouts, network errors, optimizer
// overload); a non-transient error means the optimizer rejected the request
// and retrying with the same input is pointless.
type OptimizationError struct {
	Message   string
	Transient bool
	Cause     error
}

func (e *OptimizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("optimization failed: %s (cause: %s)", e.Message, e.Cause)
	}
	return fmt.Sprintf("optimization failed: %s", e.Message)
}

func (e *OptimizationError) Unwrap() error {
	return e.Cause
}

// OptimizerClient calls the external route-optimization service. It takes the
// full pending order set of a company and returns the proposed routes. The
// client handles transport-level retries itself; the caller only sees the
// final outcome.
type OptimizerClient interface {
	// Optimize submits the orders for planning and returns the proposed
	// routes. The start address names the depot the routes begin from and
	// may be empty. Failures are reported as *OptimizationError.
	Optimize(
		ctx context.Context,
		companyID kernel.UUID,
		startAddress string,
		orders []*order.Order,
	) ([]services.RouteProposal, error)
}
