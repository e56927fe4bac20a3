package route

import (
	"errors"
	"fmt"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/errs"
	"routeplan/internal/pkg/guard"
)

var (
	// ErrRouteIsNotConstructed is returned when a Route instance was not created
	// through NewRoute or RestoreRoute.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute constructor")

	// ErrStopsAreRequired is returned when attempting to create a route with no stops.
	ErrStopsAreRequired = errs.NewValueIsRequiredError("stops")
)

// Route represents an ordered set of stops assigned to one driver for one trip.
// It is the aggregate root of the delivery-confirmation state machine: all stop
// transitions go through the route so the one-active-stop invariant can never
// be violated by touching a stop directly.
//
// Route follows these invariants:
//   - Must have a valid identifier, owning company, and at least one stop
//   - Stop sequence numbers are contiguous starting at 1
//   - Totals (distance, time, fuel cost) are non-negative
//   - At most one stop is active at any time
//   - The stop sequence is immutable once the route is Active
//   - The route completes exactly when its last stop completes
type Route struct {
	id               kernel.UUID
	companyID        kernel.UUID
	stops            []*Stop
	totalDistanceKm  float64
	totalTimeMinutes float64
	fuelCostEur      float64
	status           Status
	accessToken      AccessToken
	createdAt        time.Time

	guard guard.ConstructorGuard
}

// NewRoute creates a Planned route from an accepted optimizer proposal,
// minting a fresh access token for driver distribution.
//
// Parameters:
//   - id: unique identifier for the route
//   - companyID: identifier of the owning transport company
//   - stops: the visit sequence (contiguous, 1-based)
//   - totalDistanceKm, totalTimeMinutes, fuelCostEur: optimizer totals (>= 0)
func NewRoute(
	id kernel.UUID,
	companyID kernel.UUID,
	stops []*Stop,
	totalDistanceKm float64,
	totalTimeMinutes float64,
	fuelCostEur float64,
) (*Route, error) {
	token, err := NewAccessToken()
	if err != nil {
		return nil, err
	}

	r := &Route{
		status:      Planned,
		accessToken: token,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setCompanyID(companyID),
		r.setStops(stops),
		r.setTotals(totalDistanceKm, totalTimeMinutes, fuelCostEur),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute reconstructs a Route aggregate from persistent storage,
// preserving its status, token, and creation time.
func RestoreRoute(
	id kernel.UUID,
	companyID kernel.UUID,
	stops []*Stop,
	totalDistanceKm float64,
	totalTimeMinutes float64,
	fuelCostEur float64,
	status Status,
	accessToken AccessToken,
	createdAt time.Time,
) (*Route, error) {
	r := &Route{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setCompanyID(companyID),
		r.setStops(stops),
		r.setTotals(totalDistanceKm, totalTimeMinutes, fuelCostEur),
		r.setStatus(status),
		r.setAccessToken(accessToken),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Route instance was properly constructed.
func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}

	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// IsEqual compares two routes by their unique identifiers.
func (r *Route) IsEqual(other *Route) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID {
	return r.id
}

// CompanyID returns the identifier of the owning transport company.
func (r *Route) CompanyID() kernel.UUID {
	return r.companyID
}

// Stops returns the visit sequence in order.
func (r *Route) Stops() []*Stop {
	return r.stops
}

// TotalDistanceKm returns the optimizer's total route distance.
func (r *Route) TotalDistanceKm() float64 {
	return r.totalDistanceKm
}

// TotalTimeMinutes returns the optimizer's total estimated driving time.
func (r *Route) TotalTimeMinutes() float64 {
	return r.totalTimeMinutes
}

// FuelCostEur returns the optimizer's fuel cost estimate.
func (r *Route) FuelCostEur() float64 {
	return r.fuelCostEur
}

// Status returns the current route status.
func (r *Route) Status() Status {
	return r.status
}

// AccessToken returns the driver credential minted for this route.
func (r *Route) AccessToken() AccessToken {
	return r.accessToken
}

// CreatedAt returns the distribution timestamp (route date).
func (r *Route) CreatedAt() time.Time {
	return r.createdAt
}

// Stop returns the stop with the given sequence number.
// Returns an ObjectNotFoundError if the sequence does not exist on the route.
func (r *Route) Stop(sequence int) (*Stop, error) {
	for _, s := range r.stops {
		if s.sequence == sequence {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stop", fmt.Sprintf("%d", sequence))
}

// ActiveStop returns the currently active stop, or nil if none is active.
func (r *Route) ActiveStop() *Stop {
	for _, s := range r.stops {
		if s.status == StopActive {
			return s
		}
	}
	return nil
}

// Open records the first driver access: a Planned route becomes Active.
// Active and Completed routes remain unchanged, so re-opening a link a driver
// already used is always safe.
func (r *Route) Open() {
	if r.status == Planned {
		r.status = Active
	}
}

// ActivateStop marks the stop with the given sequence as the one the driver is
// working on. If a different stop is active it is returned to pending, its
// staged proof retained. Activating the already-active stop is a no-op;
// activating a completed stop is rejected.
func (r *Route) ActivateStop(sequence int) error {
	target, err := r.Stop(sequence)
	if err != nil {
		return err
	}

	if target.status == StopActive {
		return nil
	}

	if current := r.ActiveStop(); current != nil {
		current.demote()
	}

	if err := target.activate(); err != nil {
		return err
	}

	// The driver is on the road once any stop is started.
	r.Open()
	return nil
}

// AttachProof stages proof-of-delivery artifacts on the active stop with the
// given sequence. Non-nil fields overwrite previously staged values; the stop
// status does not change.
func (r *Route) AttachProof(sequence int, photoRef, note *string) error {
	target, err := r.Stop(sequence)
	if err != nil {
		return err
	}

	return target.attachProof(photoRef, note)
}

// CompleteStop confirms delivery for the active stop with the given sequence,
// stamping the completion time. Completing the last remaining non-completed
// stop transitions the route itself to Completed. A stop that is already
// completed acks without restamping, so retried confirmations stay safe.
//
// Returns the completed stop so the caller can trigger reconciliation for the
// referenced order.
func (r *Route) CompleteStop(sequence int, now time.Time) (*Stop, error) {
	target, err := r.Stop(sequence)
	if err != nil {
		return nil, err
	}

	if err := target.complete(now); err != nil {
		return nil, err
	}

	if r.allStopsCompleted() {
		r.status = Completed
	}

	return target, nil
}

func (r *Route) allStopsCompleted() bool {
	for _, s := range r.stops {
		if s.status != StopCompleted {
			return false
		}
	}
	return true
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return fmt.Errorf("company ID: %w", err)
	}
	r.companyID = companyID
	return nil
}

// setStops validates that stops exist, are individually valid, and that their
// sequence numbers are contiguous starting at 1 in slice order.
func (r *Route) setStops(stops []*Stop) error {
	if len(stops) == 0 {
		return ErrStopsAreRequired
	}

	for i, s := range stops {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.sequence != i+1 {
			return errs.NewValueIsInvalidErrorWithCause("stop sequence is invalid",
				fmt.Errorf("expected sequence %d at position %d, got %d", i+1, i, s.sequence))
		}
	}

	r.stops = stops
	return nil
}

func (r *Route) setTotals(totalDistanceKm, totalTimeMinutes, fuelCostEur float64) error {
	if totalDistanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total distance is invalid",
			fmt.Errorf("%g is negative", totalDistanceKm))
	}
	if totalTimeMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total time is invalid",
			fmt.Errorf("%g is negative", totalTimeMinutes))
	}
	if fuelCostEur < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fuel cost is invalid",
			fmt.Errorf("%g is negative", fuelCostEur))
	}

	r.totalDistanceKm = totalDistanceKm
	r.totalTimeMinutes = totalTimeMinutes
	r.fuelCostEur = fuelCostEur
	return nil
}

func (r *Route) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Route) setAccessToken(token AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	r.accessToken = token
	return nil
}
