package commands

import (
	"errors"
	"strings"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/pkg/guard"
)

var (
	ErrAdmitOrderCommandIsNotConstructed = errors.New(
		"AdmitOrderCommand must be created via NewAdmitOrderCommand constructor",
	)
	ErrCustomerNameIsRequired    = errors.New("customer name is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrWeightIsInvalid           = errors.New("weight must not be negative")
	ErrPriorityIsInvalid         = errors.New("priority must be greater than 0")
)

// AdmitOrderCommand represents a request to admit a single delivery order for a
// company. Pickup address and requested date are optional; weight and priority
// fall back to order defaults when callers pass the zero values.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewAdmitOrderCommand(orderID, companyID,
//	    "Bakkerij Amsterdam", "", "Prinsengracht 263, Amsterdam", 12.5, 1, time.Time{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewAdmitOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to admit order: %w", err)
//	}
type AdmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	companyID       kernel.UUID
	customerName    string
	pickupAddress   string
	deliveryAddress string
	weightKg        float64
	priority        int
	requestedDate   time.Time

	guard guard.ConstructorGuard
}

// NewAdmitOrderCommand creates a command to admit a new delivery order.
// Validates identifiers, required text fields and numeric ranges.
// Returns an error if any validation fails.
func NewAdmitOrderCommand(
	orderID kernel.UUID,
	companyID kernel.UUID,
	customerName string,
	pickupAddress string,
	deliveryAddress string,
	weightKg float64,
	priority int,
	requestedDate time.Time,
) (AdmitOrderCommand, error) {
	cmd := AdmitOrderCommand{
		pickupAddress: pickupAddress,
		requestedDate: requestedDate,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCompanyID(companyID),
		cmd.setCustomerName(customerName),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setWeightKg(weightKg),
		cmd.setPriority(priority),
	); err != nil {
		return AdmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdmitOrderCommandIsNotConstructed if validation fails.
func (c AdmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdmitOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c AdmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CompanyID returns the identifier of the owning transport company.
func (c AdmitOrderCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// CustomerName returns the recipient name.
func (c AdmitOrderCommand) CustomerName() string {
	return c.customerName
}

// PickupAddress returns the pickup location, which may be empty.
func (c AdmitOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns the destination address.
func (c AdmitOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// WeightKg returns the package weight in kilograms.
func (c AdmitOrderCommand) WeightKg() float64 {
	return c.weightKg
}

// Priority returns the order urgency; lower values are more urgent.
func (c AdmitOrderCommand) Priority() int {
	return c.priority
}

// RequestedDate returns the requested delivery date; zero if not set.
func (c AdmitOrderCommand) RequestedDate() time.Time {
	return c.requestedDate
}

func (c *AdmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdmitOrderCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	c.companyID = companyID
	return nil
}

func (c *AdmitOrderCommand) setCustomerName(customerName string) error {
	if strings.TrimSpace(customerName) == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *AdmitOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if strings.TrimSpace(deliveryAddress) == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *AdmitOrderCommand) setWeightKg(weightKg float64) error {
	if weightKg < 0 {
		return ErrWeightIsInvalid
	}

	c.weightKg = weightKg
	return nil
}

func (c *AdmitOrderCommand) setPriority(priority int) error {
	if priority < 1 {
		return ErrPriorityIsInvalid
	}

	c.priority = priority
	return nil
}
