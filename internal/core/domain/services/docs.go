// Package services provides domain services that orchestrate business
// operations across multiple aggregates. It implements workflows that don't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - RouteBuilder: turns optimizer proposals into Route aggregates and
//     assigns the referenced orders
package services
