package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when the requested entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// RouteViewCache is a short-lived cache for rendered driver route views,
// keyed by access token. A stale entry only delays a driver seeing their own
// last action, so every write path through a route must call Invalidate.
type RouteViewCache interface {
	// Get returns the cached view bytes or ErrCacheMiss.
	Get(ctx context.Context, token string) ([]byte, error)

	// Set stores the view bytes under the token for the given TTL.
	Set(ctx context.Context, token string, view []byte, ttl time.Duration) error

	// Invalidate drops the cached view for the token.
	Invalidate(ctx context.Context, token string) error
}
