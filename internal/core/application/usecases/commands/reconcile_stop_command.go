package commands

import (
	"errors"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/guard"
)

var ErrReconcileStopCommandIsNotConstructed = errors.New(
	"ReconcileStopCommand must be created via NewReconcileStopCommand constructor",
)

// ReconcileScheduler queues a completed stop whose order reconciliation
// failed for a later retry. Scheduling never blocks the caller.
type ReconcileScheduler interface {
	Schedule(routeID kernel.UUID, sequence int)
}

// ReconcileStopCommand marks the order behind a completed stop as delivered.
// The operation is idempotent: reconciling the same stop twice, or a stop
// whose order is gone or already delivered, is a successful no-op.
type ReconcileStopCommand struct { //nolint:recvcheck //using for validation
	routeID  kernel.UUID
	sequence int

	guard guard.ConstructorGuard
}

// NewReconcileStopCommand creates a command identifying the completed stop
// by its route ID and 1-based sequence.
func NewReconcileStopCommand(routeID kernel.UUID, sequence int) (ReconcileStopCommand, error) {
	cmd := ReconcileStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setSequence(sequence),
	); err != nil {
		return ReconcileStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileStopCommand) Validate() error {
	return c.guard.Validate(ErrReconcileStopCommandIsNotConstructed)
}

// RouteID returns the identifier of the route the stop belongs to.
func (c ReconcileStopCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Sequence returns the 1-based position of the stop on the route.
func (c ReconcileStopCommand) Sequence() int {
	return c.sequence
}

func (c *ReconcileStopCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *ReconcileStopCommand) setSequence(sequence int) error {
	if sequence < 1 {
		return ErrSequenceIsInvalid
	}

	c.sequence = sequence
	return nil
}
