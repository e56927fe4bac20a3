package commands

import (
	"errors"

	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/guard"
)

var (
	ErrActivateStopCommandIsNotConstructed = errors.New(
		"ActivateStopCommand must be created via NewActivateStopCommand constructor",
	)
	ErrSequenceIsInvalid = errors.New("stop sequence must be greater than 0")
)

// ActivateStopCommand marks one stop of a route as the stop currently being
// served. Activating a different stop demotes the previously active one back
// to pending; staged proof survives the demotion.
type ActivateStopCommand struct { //nolint:recvcheck //using for validation
	token    route.AccessToken
	sequence int

	guard guard.ConstructorGuard
}

// NewActivateStopCommand creates a command from the driver link token and
// the 1-based stop sequence.
func NewActivateStopCommand(token route.AccessToken, sequence int) (ActivateStopCommand, error) {
	cmd := ActivateStopCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setToken(token),
		cmd.setSequence(sequence),
	); err != nil {
		return ActivateStopCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ActivateStopCommand) Validate() error {
	return c.guard.Validate(ErrActivateStopCommandIsNotConstructed)
}

// Token returns the route access token.
func (c ActivateStopCommand) Token() route.AccessToken {
	return c.token
}

// Sequence returns the 1-based position of the stop on the route.
func (c ActivateStopCommand) Sequence() int {
	return c.sequence
}

func (c *ActivateStopCommand) setToken(token route.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.token = token
	return nil
}

func (c *ActivateStopCommand) setSequence(sequence int) error {
	if sequence < 1 {
		return ErrSequenceIsInvalid
	}

	c.sequence = sequence
	return nil
}
