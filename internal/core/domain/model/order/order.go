package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/errs"
	"routeplan/internal/pkg/guard"
)

const (
	// DefaultWeightKg is the fallback weight applied when a bulk ingestion row
	// omits the weight column or carries a non-numeric value.
	DefaultWeightKg = 0.0

	// DefaultPriority is the fallback priority applied when a bulk ingestion row
	// omits the priority column or carries a non-numeric value. Lower values are
	// more urgent.
	DefaultPriority = 1
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents a single customer delivery request. It is the aggregate root
// that manages the order lifecycle from admission through route assignment to
// delivery confirmation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owning company identifier
//   - Customer name and delivery address must be non-empty
//   - Weight must be non-negative; priority must be at least 1
//   - Status only advances Pending -> Assigned -> Delivered, or any state -> Cancelled
//   - Can only be created through its constructors
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id              kernel.UUID
	companyID       kernel.UUID
	customerName    string
	pickupAddress   string
	deliveryAddress string
	weightKg        float64
	priority        int
	requestedDate   time.Time
	status          Status
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with validation.
// This is the only way to admit a fresh order into the system.
//
// Parameters:
//   - id: unique identifier for the order
//   - companyID: identifier of the owning transport company
//   - customerName: recipient name (required)
//   - pickupAddress: depot or pickup location (optional)
//   - deliveryAddress: destination address (required)
//   - weightKg: package weight in kilograms (must be >= 0)
//   - priority: urgency, lower is more urgent (must be >= 1)
//   - requestedDate: requested delivery date (zero value allowed)
//
// Returns a validation error if any parameter is invalid; errors for multiple
// invalid parameters are joined.
func NewOrder(
	id kernel.UUID,
	companyID kernel.UUID,
	customerName string,
	pickupAddress string,
	deliveryAddress string,
	weightKg float64,
	priority int,
	requestedDate time.Time,
) (*Order, error) {
	o := &Order{
		pickupAddress: pickupAddress,
		requestedDate: requestedDate,
		status:        Pending,
		createdAt:     time.Now().UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCompanyID(companyID),
		o.setCustomerName(customerName),
		o.setDeliveryAddress(deliveryAddress),
		o.setWeightKg(weightKg),
		o.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// preserving its persisted status and creation time. The restored order
// behaves identically to one created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	companyID kernel.UUID,
	customerName string,
	pickupAddress string,
	deliveryAddress string,
	weightKg float64,
	priority int,
	requestedDate time.Time,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		pickupAddress: pickupAddress,
		requestedDate: requestedDate,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCompanyID(companyID),
		o.setCustomerName(customerName),
		o.setDeliveryAddress(deliveryAddress),
		o.setWeightKg(weightKg),
		o.setPriority(priority),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise. Call when reconstructing orders
// from persistence to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}

	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CompanyID returns the identifier of the owning transport company.
func (o *Order) CompanyID() kernel.UUID {
	return o.companyID
}

// CustomerName returns the recipient name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// PickupAddress returns the pickup location, which may be empty.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// DeliveryAddress returns the destination address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// WeightKg returns the package weight in kilograms.
func (o *Order) WeightKg() float64 {
	return o.weightKg
}

// Priority returns the order urgency; lower values are more urgent.
func (o *Order) Priority() int {
	return o.priority
}

// RequestedDate returns the requested delivery date; zero if not set.
func (o *Order) RequestedDate() time.Time {
	return o.requestedDate
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the admission timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ValidateAssign checks whether the order may be placed on a route without
// performing the transition. Used by route distribution to pre-validate an
// optimizer proposal before any write happens.
func (o *Order) ValidateAssign() error {
	return o.status.ValidateAssign()
}

// Assign marks the order as placed on a distributed route.
// Only Pending orders may be assigned; route distribution is the sole caller.
func (o *Order) Assign() error {
	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered after its stop was confirmed.
// Only Assigned orders may be delivered; reconciliation sync is the sole caller.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order. Accepted from any state except Cancelled;
// this is an external operator event the lifecycle must accept.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return fmt.Errorf("company ID: %w", err)
	}
	o.companyID = companyID
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setDeliveryAddress(deliveryAddress string) error {
	if strings.TrimSpace(deliveryAddress) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = deliveryAddress
	return nil
}

func (o *Order) setWeightKg(weightKg float64) error {
	if weightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid",
			fmt.Errorf("%g is negative", weightKg))
	}
	o.weightKg = weightKg
	return nil
}

func (o *Order) setPriority(priority int) error {
	if priority < 1 {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid",
			fmt.Errorf("%d is not greater than 0", priority))
	}
	o.priority = priority
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
