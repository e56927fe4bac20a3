// Package order provides domain entities and business logic for delivery order
// management. It implements the Order aggregate root with lifecycle management
// and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, owning company, customer name, and delivery address
//   - Weight is non-negative; priority starts at 1, lower is more urgent
//   - Order status follows a defined workflow: Pending -> Assigned -> Delivered
//   - Any order may be cancelled by an operator; cancellation is terminal
//   - Only route distribution assigns orders; only reconciliation delivers them
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
