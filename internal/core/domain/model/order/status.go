package order

import (
	"fmt"
	"strings"

	"routeplan/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions so that orders only
// ever advance through the delivery workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Any state may transition to Cancelled (operator action); no other backward
// transition exists. Status is a value object that validates transitions and
// provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of an admitted order.
	// Pending orders are the input set for the next optimization round.
	Pending

	// Assigned indicates the order is part of a distributed route.
	Assigned

	// Delivered indicates the order's stop was confirmed by the driver and
	// reconciled back onto the order. Terminal.
	Delivered

	// Cancelled indicates the order was withdrawn by an operator. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Assigned, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status by its case-insensitive name.
// Returns an error for names that do not map to a valid status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// ValidateAssign checks if the status allows route assignment without
// performing the transition. Only Pending orders may be assigned; orders
// already on a route, delivered, or cancelled are rejected.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewIllegalStateTransitionError("order", s.String(), Assigned.String())
	}
	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (order placed on a distributed route)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Assigned -> Delivered (stop completion reconciled)
//
// Returns (0, error) if the order is not currently Assigned.
func (s Status) Deliver() (Status, error) {
	if s != Assigned {
		return 0, errs.NewIllegalStateTransitionError("order", s.String(), Delivered.String())
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
// Cancellation is an operator action and is accepted from any valid state
// except Cancelled itself.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s == Cancelled {
		return 0, errs.NewIllegalStateTransitionError("order", s.String(), Cancelled.String())
	}

	return Cancelled, nil
}
