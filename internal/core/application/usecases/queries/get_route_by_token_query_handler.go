package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/core/ports"
	"routeplan/internal/pkg/errs"

	"gorm.io/gorm"
)

// routeViewTTL bounds how stale a polled driver view can get. Write paths
// invalidate eagerly, the TTL only covers invalidation failures.
const routeViewTTL = 30 * time.Second

// GetRouteByTokenQueryHandler renders the driver view of a route. Drivers
// poll this while on the road, so responses are cached per token and the
// cache is invalidated by every stop mutation.
type GetRouteByTokenQueryHandler struct {
	db        *gorm.DB
	viewCache ports.RouteViewCache
	logger    *slog.Logger
}

// NewGetRouteByTokenQueryHandler creates a handler for driver route views.
// Requires a GORM database connection and the route view cache.
func NewGetRouteByTokenQueryHandler(
	db *gorm.DB,
	viewCache ports.RouteViewCache,
	logger *slog.Logger,
) GetRouteByTokenQueryHandler {
	return GetRouteByTokenQueryHandler{
		db:        db,
		viewCache: viewCache,
		logger:    logger.With("component", "get_route_by_token"),
	}
}

// Handle executes the query. An unknown token is reported as not found; cache
// failures degrade to a database read and are only logged.
func (h GetRouteByTokenQueryHandler) Handle(
	ctx context.Context,
	query GetRouteByTokenQuery,
) (GetRouteByTokenQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteByTokenQueryResponse{}, err
	}

	token := query.Token().String()

	if cached, err := h.viewCache.Get(ctx, token); err == nil {
		var resp GetRouteByTokenQueryResponse
		if err = json.Unmarshal(cached, &resp); err == nil {
			return resp, nil
		}
		h.logger.WarnContext(ctx, "cached route view is unreadable", "token", token, "error", err)
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		h.logger.WarnContext(ctx, "route view cache read failed", "token", token, "error", err)
	}

	resp, err := h.loadView(ctx, token)
	if err != nil {
		return GetRouteByTokenQueryResponse{}, err
	}

	if raw, err := json.Marshal(resp); err == nil {
		if err = h.viewCache.Set(ctx, token, raw, routeViewTTL); err != nil {
			h.logger.WarnContext(ctx, "route view cache write failed", "token", token, "error", err)
		}
	}

	return resp, nil
}

func (h GetRouteByTokenQueryHandler) loadView(
	ctx context.Context,
	token string,
) (GetRouteByTokenQueryResponse, error) {
	var resp GetRouteByTokenQueryResponse

	var routeRow struct {
		ID               string
		CreatedAt        time.Time
		Status           int
		TotalDistanceKm  float64
		TotalTimeMinutes float64
		FuelCostEur      float64
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			created_at,
			status,
			total_distance_km,
			total_time_minutes,
			fuel_cost_eur
		FROM routes
		WHERE access_token = ?
	`, token).Take(&routeRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, errs.NewObjectNotFoundError("routeToken", token)
	}
	if err != nil {
		return resp, err
	}

	resp.RouteDate = routeRow.CreatedAt
	resp.Status = route.Status(routeRow.Status).String()
	resp.TotalDistanceKm = routeRow.TotalDistanceKm
	resp.TotalTimeMinutes = routeRow.TotalTimeMinutes
	resp.FuelCostEur = routeRow.FuelCostEur
	resp.Stops = make([]RouteStopView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.sequence,
			o.customer_name,
			o.delivery_address,
			o.weight_kg,
			s.status,
			s.note,
			s.photo_ref,
			s.completed_at
		FROM route_stops s
		JOIN orders o ON o.id = s.order_id
		WHERE s.route_id = ?
		ORDER BY s.sequence
	`, routeRow.ID).Rows()
	if err != nil {
		return resp, err
	}
	defer rows.Close()

	for rows.Next() {
		var stop RouteStopView
		var status int

		if err = rows.Scan(
			&stop.Sequence,
			&stop.CustomerName,
			&stop.Address,
			&stop.WeightKg,
			&status,
			&stop.Note,
			&stop.PhotoRef,
			&stop.CompletedAt,
		); err != nil {
			return resp, err
		}

		stop.Status = route.StopStatus(status).String()
		resp.Stops = append(resp.Stops, stop)
	}

	if err = rows.Err(); err != nil {
		return resp, err
	}

	return resp, nil
}
