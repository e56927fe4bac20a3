package ports

import (
	"context"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// scoped to the owning company.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInPendingStatus retrieves every pending order of a company,
	// oldest first. Used as the input set for route planning.
	GetAllInPendingStatus(ctx context.Context, companyID kernel.UUID) ([]*order.Order, error)
}
