package ports

import (
	"context"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates,
// including their stops and driver access tokens.
type RouteRepository interface {
	// Add persists a new route aggregate together with its stops.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route aggregate and its stops.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetByAccessToken retrieves the route a driver link points to.
	// Tokens are unguessable, so this is the only lookup drivers get.
	GetByAccessToken(ctx context.Context, token route.AccessToken) (*route.Route, error)
}
