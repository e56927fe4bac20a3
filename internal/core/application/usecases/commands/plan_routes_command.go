package commands

import (
	"errors"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/guard"
)

var (
	ErrPlanRoutesCommandIsNotConstructed = errors.New(
		"PlanRoutesCommand must be created via NewPlanRoutesCommand constructor",
	)

	// ErrPlanningInProgress is returned when a planning round for the same
	// company is already running. The caller should retry after it finishes.
	ErrPlanningInProgress = errors.New("planning is already in progress for this company")

	// ErrNoPendingOrders is returned when the company has nothing to plan.
	ErrNoPendingOrders = errors.New("no pending orders to plan")
)

// PlanRoutesCommand represents a request to run one optimization round over
// all pending orders of a company. The start address is the depot the routes
// begin from and may be empty, in which case the optimizer uses its default.
type PlanRoutesCommand struct { //nolint:recvcheck //using for validation
	companyID    kernel.UUID
	startAddress string

	guard guard.ConstructorGuard
}

// NewPlanRoutesCommand creates a command to run route planning for a company.
func NewPlanRoutesCommand(companyID kernel.UUID, startAddress string) (PlanRoutesCommand, error) {
	cmd := PlanRoutesCommand{
		startAddress: startAddress,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setCompanyID(companyID); err != nil {
		return PlanRoutesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlanRoutesCommandIsNotConstructed if validation fails.
func (c PlanRoutesCommand) Validate() error {
	return c.guard.Validate(ErrPlanRoutesCommandIsNotConstructed)
}

// CompanyID returns the identifier of the company whose orders are planned.
func (c PlanRoutesCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// StartAddress returns the depot address the routes start from; may be empty.
func (c PlanRoutesCommand) StartAddress() string {
	return c.startAddress
}

func (c *PlanRoutesCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	c.companyID = companyID
	return nil
}
