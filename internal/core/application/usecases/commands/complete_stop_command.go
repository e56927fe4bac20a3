package commands

import (
	"errors"

	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/guard"
)

var ErrCompleteStopCommandIsNotConstructed = errors.New(
	"CompleteStopCommand must be created via NewCompleteStopCommand constructor",
)

// CompleteStopCommand confirms the delivery of the active stop of a route.
// Completion is terminal for the stop and authoritative: a failure in the
// follow-up order reconciliation never rolls it back.
type CompleteStopCommand struct { //nolint:recvcheck //using for validation
	token    route.AccessToken
	sequence int

	guard guard.ConstructorGuard
}

// NewCompleteStopCommand creates a command from the driver link token and
// the 1-based stop sequence.
func NewCompleteStopCommand(token route.AccessToken, sequence int) (CompleteStopCommand, error) {
	cmd := CompleteStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setToken(token),
		cmd.setSequence(sequence),
	); err != nil {
		return CompleteStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStopCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStopCommandIsNotConstructed)
}

// Token returns the route access token.
func (c CompleteStopCommand) Token() route.AccessToken {
	return c.token
}

// Sequence returns the 1-based position of the stop on the route.
func (c CompleteStopCommand) Sequence() int {
	return c.sequence
}

func (c *CompleteStopCommand) setToken(token route.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.token = token
	return nil
}

func (c *CompleteStopCommand) setSequence(sequence int) error {
	if sequence < 1 {
		return ErrSequenceIsInvalid
	}

	c.sequence = sequence
	return nil
}
