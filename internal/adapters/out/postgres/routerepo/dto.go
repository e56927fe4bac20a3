// Package routerepo provides data transfer objects and mapping functions for
// route persistence. This package implements the repository pattern for the
// route domain aggregate, handling the conversion between domain entities and
// database representations.
package routerepo

import (
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting route aggregates.
// The access token carries a unique index because driver requests resolve
// routes by token, never by ID.
type RouteDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"type:uuid;index"`
	TotalDistanceKm  float64
	TotalTimeMinutes float64
	FuelCostEur      float64
	Status           int
	AccessToken      string    `gorm:"type:varchar(32);uniqueIndex"`
	CreatedAt        time.Time
	Stops            []StopDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for route entities.
// Overrides GORM's default naming convention to use "routes".
func (RouteDTO) TableName() string {
	return "routes"
}

// StopDTO represents the database structure for persisting route stops.
// Identified by the route it belongs to plus its position in the sequence.
type StopDTO struct {
	RouteID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence    int       `gorm:"primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Status      int
	PhotoRef    *string
	Note        *string
	CompletedAt *time.Time
}

// TableName specifies the database table name for stop entities.
// Overrides GORM's default naming convention to use "route_stops".
func (StopDTO) TableName() string {
	return "route_stops"
}

// fromDomain converts a route domain aggregate to its database representation.
// Maps the route together with all of its stops.
func fromDomain(route *route.Route) RouteDTO {
	routeID := route.ID().Bytes()
	stops := make([]StopDTO, 0, len(route.Stops()))

	for _, s := range route.Stops() {
		stops = append(stops, StopDTO{
			RouteID:     routeID,
			Sequence:    s.Sequence(),
			OrderID:     s.OrderID().Bytes(),
			Status:      int(s.Status()),
			PhotoRef:    s.PhotoRef(),
			Note:        s.Note(),
			CompletedAt: s.CompletedAt(),
		})
	}

	return RouteDTO{
		ID:               routeID,
		CompanyID:        route.CompanyID().Bytes(),
		TotalDistanceKm:  route.TotalDistanceKm(),
		TotalTimeMinutes: route.TotalTimeMinutes(),
		FuelCostEur:      route.FuelCostEur(),
		Status:           int(route.Status()),
		AccessToken:      route.AccessToken().String(),
		CreatedAt:        route.CreatedAt(),
		Stops:            stops,
	}
}

// toDomain converts a database DTO to a route domain aggregate.
// Reconstructs the complete aggregate including all stops using RestoreRoute.
func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	token, err := route.AccessTokenFromString(dto.AccessToken)
	if err != nil {
		return nil, err
	}

	stops := make([]*route.Stop, 0, len(dto.Stops))
	for _, stopDto := range dto.Stops {
		s, stopErr := stopToDomain(stopDto)
		if stopErr != nil {
			return nil, stopErr
		}
		stops = append(stops, s)
	}

	return route.RestoreRoute(
		id,
		companyID,
		stops,
		dto.TotalDistanceKm,
		dto.TotalTimeMinutes,
		dto.FuelCostEur,
		route.Status(dto.Status),
		token,
		dto.CreatedAt,
	)
}

// stopToDomain converts a stop DTO to a domain entity.
// Uses RestoreStop to reconstruct the entity with its persisted state.
func stopToDomain(dto StopDTO) (*route.Stop, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return route.RestoreStop(
		dto.Sequence,
		orderID,
		route.StopStatus(dto.Status),
		dto.PhotoRef,
		dto.Note,
		dto.CompletedAt,
	)
}
