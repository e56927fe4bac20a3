package ports

import (
	"context"

	"routeplan/internal/core/domain/model/route"
)

// DriverNotifier delivers freshly planned route links to drivers. Failures
// are logged, never propagated: a lost mail does not invalidate the plan,
// the dispatcher can always reshare the link.
type DriverNotifier interface {
	// NotifyRoutePlanned sends the driver link for one planned route.
	NotifyRoutePlanned(ctx context.Context, r *route.Route) error
}
