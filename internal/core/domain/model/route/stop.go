package route

import (
	"errors"
	"fmt"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/errs"
	"routeplan/internal/pkg/guard"
)

// StopStatus represents the delivery-confirmation state of a single stop.
//
// State transitions:
//
//	StopPending <──> StopActive ──> StopCompleted
//
// A stop returns from StopActive to StopPending when the driver starts a
// different stop; StopCompleted is terminal.
type StopStatus int

const (
	// StopStatusUnknown represents an invalid or undefined status.
	StopStatusUnknown StopStatus = iota

	// StopPending means the stop has not been started, or was started and then
	// set aside for another stop. Staged proof survives the round trip.
	StopPending

	// StopActive means the driver is currently working this stop.
	// At most one stop per route is active at any time.
	StopActive

	// StopCompleted means the driver confirmed the delivery. Terminal; the stop
	// and its proof are immutable from here on.
	StopCompleted
)

func getStopStatusStrings() map[StopStatus]string {
	return map[StopStatus]string{
		StopStatusUnknown: "Unknown",
		StopPending:       "Pending",
		StopActive:        "Active",
		StopCompleted:     "Completed",
	}
}

// Validate checks if the StopStatus value is valid.
func (s StopStatus) Validate() error {
	if s != StopPending && s != StopActive && s != StopCompleted {
		return errs.NewValueIsInvalidErrorWithCause("stop status is invalid",
			fmt.Errorf("%d is not a valid stop status", s))
	}
	return nil
}

// String returns the human-readable name of the stop status.
func (s StopStatus) String() string {
	if str, ok := getStopStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ErrStopIsNotConstructed is returned when a Stop was not created through
// NewStop or RestoreStop.
var ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop or RestoreStop constructor")

// Stop is one order's visit within a route. It is owned by exactly one Route
// and holds a weak reference to its Order: the order is looked up by
// identifier and has its own independent lifecycle.
//
// Sequence numbers are 1-based, contiguous, and define the visiting order.
// Proof artifacts (photo reference, note text) are staged on the stop while it
// is active and become immutable once it completes.
type Stop struct {
	sequence    int
	orderID     kernel.UUID
	status      StopStatus
	photoRef    *string
	note        *string
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewStop creates a pending Stop for the given sequence number and order.
func NewStop(sequence int, orderID kernel.UUID) (*Stop, error) {
	s := &Stop{
		status: StopPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setSequence(sequence),
		s.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStop reconstructs a Stop from persistent storage, including staged
// proof and completion time.
func RestoreStop(
	sequence int,
	orderID kernel.UUID,
	status StopStatus,
	photoRef *string,
	note *string,
	completedAt *time.Time,
) (*Stop, error) {
	s := &Stop{
		photoRef:    photoRef,
		note:        note,
		completedAt: completedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setSequence(sequence),
		s.setOrderID(orderID),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Stop instance was properly constructed.
func (s *Stop) Validate() error {
	if s == nil {
		return ErrStopIsNotConstructed
	}

	return s.guard.Validate(ErrStopIsNotConstructed)
}

// Sequence returns the 1-based position of the stop within its route.
func (s *Stop) Sequence() int {
	return s.sequence
}

// OrderID returns the identifier of the referenced order.
func (s *Stop) OrderID() kernel.UUID {
	return s.orderID
}

// Status returns the current delivery-confirmation state of the stop.
func (s *Stop) Status() StopStatus {
	return s.status
}

// PhotoRef returns the staged proof-photo reference; nil if none was captured.
func (s *Stop) PhotoRef() *string {
	return s.photoRef
}

// Note returns the staged note text; nil if none was captured.
func (s *Stop) Note() *string {
	return s.note
}

// CompletedAt returns the completion timestamp; nil while not completed.
func (s *Stop) CompletedAt() *time.Time {
	return s.completedAt
}

// activate transitions the stop to StopActive. No-op if already active.
// Rejected once the stop is completed.
func (s *Stop) activate() error {
	switch s.status {
	case StopActive:
		return nil
	case StopCompleted:
		return errs.NewIllegalStateTransitionError("stop", s.status.String(), StopActive.String())
	default:
		s.status = StopActive
		return nil
	}
}

// demote returns an active stop to StopPending when the driver moves on to a
// different stop. Staged proof is retained for when the stop is reopened.
func (s *Stop) demote() {
	if s.status == StopActive {
		s.status = StopPending
	}
}

// attachProof stages proof artifacts on an active stop. Each non-nil field
// overwrites what was staged before (last-write-wins per field). Stop status
// is unaffected.
func (s *Stop) attachProof(photoRef, note *string) error {
	if s.status != StopActive {
		return errs.NewIllegalStateTransitionError("stop", s.status.String(), "proof attachment")
	}

	if photoRef != nil {
		s.photoRef = photoRef
	}
	if note != nil {
		s.note = note
	}
	return nil
}

// complete transitions an active stop to StopCompleted and stamps the
// completion time. A stop cannot be completed without having been activated.
// Completing an already completed stop is a no-op that keeps the original
// timestamp, so a retried confirmation acks instead of failing.
func (s *Stop) complete(now time.Time) error {
	if s.status == StopCompleted {
		return nil
	}
	if s.status != StopActive {
		return errs.NewIllegalStateTransitionError("stop", s.status.String(), StopCompleted.String())
	}

	s.status = StopCompleted
	s.completedAt = &now
	return nil
}

func (s *Stop) setSequence(sequence int) error {
	if sequence < 1 {
		return errs.NewValueIsInvalidErrorWithCause("sequence is invalid",
			fmt.Errorf("%d is not greater than 0", sequence))
	}
	s.sequence = sequence
	return nil
}

func (s *Stop) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("order ID: %w", err)
	}
	s.orderID = orderID
	return nil
}

func (s *Stop) setStatus(status StopStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
