package services

import (
	"errors"
	"fmt"
	"slices"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/model/route"
)

// ErrProposalInvalid is returned when an optimizer proposal cannot be turned
// into routes: it references unknown or non-pending orders, assigns an order
// to more than one route, carries non-contiguous stop sequences, or reports
// negative totals. Orders are left untouched in that case.
var ErrProposalInvalid = errors.New("route proposal is invalid")

// StopProposal is a single stop of a proposed route as returned by the
// optimization service, identified by the order it serves.
type StopProposal struct {
	Sequence int
	OrderID  kernel.UUID
}

// RouteProposal is one proposed route with its cost estimates. Sequences are
// expected to be contiguous and 1-based within each proposal; the slice order
// itself does not matter.
type RouteProposal struct {
	Stops            []StopProposal
	TotalDistanceKm  float64
	TotalTimeMinutes float64
	FuelCostEur      float64
}

// RouteBuilder is a domain service that turns optimizer proposals into Route
// aggregates and assigns the referenced orders.
//
// Business rules:
//   - Every proposed stop must reference a known pending order
//   - An order is assigned to at most one route
//   - A proposal is accepted or rejected as a whole; a single bad stop
//     rejects the entire plan and leaves every order pending
type RouteBuilder struct{}

// NewRouteBuilder creates a new RouteBuilder instance.
func NewRouteBuilder() RouteBuilder {
	return RouteBuilder{}
}

// Build validates the proposals against the given pending orders and
// constructs one Route aggregate per proposal, each with a freshly minted
// access token. On success every referenced order has been moved to the
// assigned status. On failure no order is modified and ErrProposalInvalid
// is returned with the offending detail.
func (b RouteBuilder) Build(
	companyID kernel.UUID,
	proposals []RouteProposal,
	pendingOrders []*order.Order,
) ([]*route.Route, error) {
	if len(proposals) == 0 {
		return nil, fmt.Errorf("%w: optimizer returned no routes", ErrProposalInvalid)
	}

	ordersByID := make(map[kernel.UUID]*order.Order, len(pendingOrders))
	for _, o := range pendingOrders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		ordersByID[o.ID()] = o
	}

	assigned := make(map[kernel.UUID]bool)
	routes := make([]*route.Route, 0, len(proposals))

	for i, proposal := range proposals {
		// The optimizer is free to list stops in any order; only the
		// sequence numbers carry the visiting order.
		proposedStops := slices.Clone(proposal.Stops)
		slices.SortFunc(proposedStops, func(a, b StopProposal) int {
			return a.Sequence - b.Sequence
		})

		stops := make([]*route.Stop, 0, len(proposedStops))
		for _, sp := range proposedStops {
			o, ok := ordersByID[sp.OrderID]
			if !ok {
				return nil, fmt.Errorf("%w: route %d references unknown order %s",
					ErrProposalInvalid, i+1, sp.OrderID)
			}

			if assigned[sp.OrderID] {
				return nil, fmt.Errorf("%w: order %s appears on more than one route",
					ErrProposalInvalid, sp.OrderID)
			}

			if err := o.ValidateAssign(); err != nil {
				return nil, fmt.Errorf("%w: order %s is not pending",
					ErrProposalInvalid, sp.OrderID)
			}

			stop, err := route.NewStop(sp.Sequence, sp.OrderID)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrProposalInvalid, err)
			}

			assigned[sp.OrderID] = true
			stops = append(stops, stop)
		}

		r, err := route.NewRoute(
			kernel.NewUUID(),
			companyID,
			stops,
			proposal.TotalDistanceKm,
			proposal.TotalTimeMinutes,
			proposal.FuelCostEur,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProposalInvalid, err)
		}

		routes = append(routes, r)
	}

	// All proposals validated, commit the assignment on the orders.
	for id := range assigned {
		if err := ordersByID[id].Assign(); err != nil {
			return nil, err
		}
	}

	return routes, nil
}
