// Package route provides domain entities and business logic for driver routes
// and the per-stop delivery-confirmation workflow.
//
// The package includes:
//   - Route: The aggregate root owning the ordered stop sequence, totals,
//     lifecycle status, and the driver access token
//   - Stop: One order's visit within a route, carrying its own
//     confirmation status and staged proof-of-delivery artifacts
//   - AccessToken: The opaque credential granting driver access to one route
//
// Key business rules:
//   - Stop sequence numbers are contiguous starting at 1 and define visit order
//   - A route is Planned until first driver access, Active while being driven,
//     and Completed once every stop is completed
//   - At most one stop is active at any time; starting a new stop returns the
//     previous one to pending with its staged proof retained
//   - Completed stops are immutable
//
// All stop transitions are driven through the Route aggregate so the
// one-active-stop invariant holds by construction.
package route
