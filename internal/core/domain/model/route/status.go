package route

import (
	"fmt"

	"routeplan/internal/pkg/errs"
)

// Status represents the lifecycle state of a route.
//
// State transitions:
//
//	Planned ──> Active ──> Completed
//
// A route becomes Active on first driver access through its token and
// Completed once every stop on it is completed. There is no backward
// transition.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Planned is the initial status of a freshly distributed route.
	Planned

	// Active indicates a driver has opened the route through its access token.
	// The stop sequence is immutable from this point on.
	Active

	// Completed indicates every stop on the route has been completed. Terminal.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Planned:       "Planned",
		Active:        "Active",
		Completed:     "Completed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Planned && s != Active && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
