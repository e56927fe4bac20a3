// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by company and status so that pending-order planning and company
// listings stay cheap.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID `gorm:"type:uuid;index:idx_orders_company_status"`
	CustomerName    string
	PickupAddress   string
	DeliveryAddress string
	WeightKg        float64
	Priority        int
	RequestedDate   *time.Time
	Status          int `gorm:"index:idx_orders_company_status"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// The optional requested date is stored as NULL when unset.
func fromDomain(order *order.Order) OrderDTO {
	var requestedDate *time.Time
	if d := order.RequestedDate(); !d.IsZero() {
		requestedDate = &d
	}

	return OrderDTO{
		ID:              order.ID().Bytes(),
		CompanyID:       order.CompanyID().Bytes(),
		CustomerName:    order.CustomerName(),
		PickupAddress:   order.PickupAddress(),
		DeliveryAddress: order.DeliveryAddress(),
		WeightKg:        order.WeightKg(),
		Priority:        order.Priority(),
		RequestedDate:   requestedDate,
		Status:          int(order.Status()),
		CreatedAt:       order.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	var requestedDate time.Time
	if dto.RequestedDate != nil {
		requestedDate = *dto.RequestedDate
	}

	return order.RestoreOrder(
		id,
		companyID,
		dto.CustomerName,
		dto.PickupAddress,
		dto.DeliveryAddress,
		dto.WeightKg,
		dto.Priority,
		requestedDate,
		order.Status(dto.Status),
		dto.CreatedAt,
	)
}
