package commands

import (
	"errors"

	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/guard"
)

var ErrOpenRouteCommandIsNotConstructed = errors.New(
	"OpenRouteCommand must be created via NewOpenRouteCommand constructor",
)

// OpenRouteCommand marks a route as active on first driver access.
// Opening an already active or completed route is a no-op, so the driver
// link stays shareable and refreshable.
type OpenRouteCommand struct { //nolint:recvcheck //using for validation
	token route.AccessToken

	guard guard.ConstructorGuard
}

// NewOpenRouteCommand creates a command from the driver link token.
func NewOpenRouteCommand(token route.AccessToken) (OpenRouteCommand, error) {
	cmd := OpenRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setToken(token); err != nil {
		return OpenRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OpenRouteCommand) Validate() error {
	return c.guard.Validate(ErrOpenRouteCommandIsNotConstructed)
}

// Token returns the route access token.
func (c OpenRouteCommand) Token() route.AccessToken {
	return c.token
}

func (c *OpenRouteCommand) setToken(token route.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.token = token
	return nil
}
