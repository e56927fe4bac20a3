// Package http exposes the company and driver REST surfaces. Handlers stay
// thin: they translate requests into commands and queries, run them, and map
// failures onto HTTP status codes. Company identity comes from the
// X-Company-ID header; drivers authenticate with the route access token alone.
package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/application/usecases/queries"
	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// companyIDHeader carries the acting company's identifier.
const companyIDHeader = "X-Company-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	validate *validator.Validate

	// Command handlers
	admitOrderHandler   commands.AdmitOrderCommandHandler
	importOrdersHandler commands.ImportOrdersCommandHandler
	planRoutesHandler   commands.PlanRoutesCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler
	openRouteHandler    commands.OpenRouteCommandHandler
	activateStopHandler commands.ActivateStopCommandHandler
	attachProofHandler  commands.AttachProofCommandHandler
	completeStopHandler commands.CompleteStopCommandHandler

	// Query handlers
	getRouteByTokenHandler queries.GetRouteByTokenQueryHandler
	getOrdersHandler       queries.GetOrdersQueryHandler
	getCompanyStatsHandler queries.GetCompanyStatsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	admitOrderHandler commands.AdmitOrderCommandHandler,
	importOrdersHandler commands.ImportOrdersCommandHandler,
	planRoutesHandler commands.PlanRoutesCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	openRouteHandler commands.OpenRouteCommandHandler,
	activateStopHandler commands.ActivateStopCommandHandler,
	attachProofHandler commands.AttachProofCommandHandler,
	completeStopHandler commands.CompleteStopCommandHandler,
	getRouteByTokenHandler queries.GetRouteByTokenQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getCompanyStatsHandler queries.GetCompanyStatsQueryHandler,
) *Server {
	return &Server{
		validate:               validator.New(),
		admitOrderHandler:      admitOrderHandler,
		importOrdersHandler:    importOrdersHandler,
		planRoutesHandler:      planRoutesHandler,
		cancelOrderHandler:     cancelOrderHandler,
		openRouteHandler:       openRouteHandler,
		activateStopHandler:    activateStopHandler,
		attachProofHandler:     attachProofHandler,
		completeStopHandler:    completeStopHandler,
		getRouteByTokenHandler: getRouteByTokenHandler,
		getOrdersHandler:       getOrdersHandler,
		getCompanyStatsHandler: getCompanyStatsHandler,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.AdmitOrder)
	api.POST("/orders/import", s.ImportOrders)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/planning/create", s.PlanRoutes)
	api.GET("/stats", s.GetStats)

	api.GET("/routes/:token", s.GetRoute)
	api.POST("/routes/:token/stops/:sequence/activate", s.ActivateStop)
	api.POST("/routes/:token/stops/:sequence/proof", s.AttachProof)
	api.POST("/routes/:token/stops/:sequence/complete", s.CompleteStop)

	e.GET("/health", s.Health)
}

// AdmitOrder handles POST /api/v1/orders - admits a single order.
func (s *Server) AdmitOrder(ctx echo.Context) error {
	companyID, err := companyFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AdmitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	priority := req.Priority
	if priority == 0 {
		priority = order.DefaultPriority
	}
	var requestedDate time.Time
	if req.RequestedDate != nil {
		requestedDate = *req.RequestedDate
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewAdmitOrderCommand(
		orderID, companyID,
		req.CustomerName, req.PickupAddress, req.DeliveryAddress,
		req.WeightKg, priority, requestedDate,
	)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	if err := s.admitOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, AdmitOrderResponse{OrderID: orderID.String()})
}

// ImportOrders handles POST /api/v1/orders/import - bulk CSV ingestion.
// Accepts either a multipart upload under "file" or a raw CSV body.
func (s *Server) ImportOrders(ctx echo.Context) error {
	companyID, err := companyFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	body, err := csvBody(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	defer body.Close()

	rows, err := parseOrderRows(body)
	if err != nil {
		return badRequest(ctx, "invalid csv: "+err.Error())
	}

	cmd, err := commands.NewImportOrdersCommand(companyID, rows)
	if err != nil {
		return badRequest(ctx, "invalid csv: "+err.Error())
	}

	result, err := s.importOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := ImportOrdersResponse{
		Admitted: make([]string, 0, len(result.Admitted)),
		Rejected: make([]RejectedRowEntry, 0, len(result.Rejected)),
	}
	for _, id := range result.Admitted {
		response.Admitted = append(response.Admitted, id.String())
	}
	for _, rejection := range result.Rejected {
		response.Rejected = append(response.Rejected, RejectedRowEntry{
			Line:   rejection.Line,
			Reason: rejection.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders - lists company orders with an
// optional status filter.
func (s *Server) GetOrders(ctx echo.Context) error {
	companyID, err := companyFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid status filter: "+raw)
		}
		statusFilter = &status
	}

	query, err := queries.NewGetOrdersQuery(companyID, statusFilter)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - operator cancellation.
// Orders of other companies are indistinguishable from unknown ones.
func (s *Server) CancelOrder(ctx echo.Context) error {
	companyID, err := companyFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, companyID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlanRoutes handles POST /api/v1/planning/create - runs one optimization
// round over the company's pending orders.
func (s *Server) PlanRoutes(ctx echo.Context) error {
	companyID, err := companyFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req PlanRoutesRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, "invalid planning data: "+err.Error())
	}

	cmd, err := commands.NewPlanRoutesCommand(companyID, req.StartAddress)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	routes, err := s.planRoutesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := PlanRoutesResponse{Routes: make([]PlannedRouteResponse, 0, len(routes))}
	for _, r := range routes {
		response.Routes = append(response.Routes, PlannedRouteResponse{
			RouteID:          r.ID().String(),
			AccessToken:      r.AccessToken().String(),
			Stops:            len(r.Stops()),
			TotalDistanceKm:  r.TotalDistanceKm(),
			TotalTimeMinutes: r.TotalTimeMinutes(),
			FuelCostEur:      r.FuelCostEur(),
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// GetStats handles GET /api/v1/stats - dashboard aggregates.
func (s *Server) GetStats(ctx echo.Context) error {
	companyID, err := companyFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetCompanyStatsQuery(companyID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	stats, err := s.getCompanyStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}

// GetRoute handles GET /api/v1/routes/:token - the driver route view.
// The first access flips the route from Planned to Active.
func (s *Server) GetRoute(ctx echo.Context) error {
	token, err := tokenFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	openCmd, err := commands.NewOpenRouteCommand(token)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := s.openRouteHandler.Handle(ctx.Request().Context(), openCmd); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetRouteByTokenQuery(token)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getRouteByTokenHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, view)
}

// ActivateStop handles POST /api/v1/routes/:token/stops/:sequence/activate.
func (s *Server) ActivateStop(ctx echo.Context) error {
	token, sequence, err := stopFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewActivateStopCommand(token, sequence)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.activateStopHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AttachProof handles POST /api/v1/routes/:token/stops/:sequence/proof.
// Accepts a multipart photo under "photo" and/or a "note" form value.
func (s *Server) AttachProof(ctx echo.Context) error {
	token, sequence, err := stopFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var photo []byte
	var contentType string
	if file, err := ctx.FormFile("photo"); err == nil {
		src, err := file.Open()
		if err != nil {
			return respondError(ctx, err)
		}
		defer src.Close()

		photo, err = io.ReadAll(src)
		if err != nil {
			return respondError(ctx, err)
		}
		contentType = file.Header.Get("Content-Type")
	}

	var note *string
	if value := strings.TrimSpace(ctx.FormValue("note")); value != "" {
		note = &value
	}

	cmd, err := commands.NewAttachProofCommand(token, sequence, photo, contentType, note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.attachProofHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStop handles POST /api/v1/routes/:token/stops/:sequence/complete.
func (s *Server) CompleteStop(ctx echo.Context) error {
	token, sequence, err := stopFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteStopCommand(token, sequence)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.completeStopHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// companyFromHeader extracts the acting company from the X-Company-ID header.
func companyFromHeader(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(companyIDHeader)
	if raw == "" {
		return kernel.UUID{}, errors.New(companyIDHeader + " header is required")
	}

	companyID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errors.New(companyIDHeader + " header is not a valid id")
	}

	return companyID, nil
}

// tokenFromPath extracts the access token. A token that cannot even be parsed
// is reported as an unknown route so tokens stay opaque.
func tokenFromPath(ctx echo.Context) (route.AccessToken, error) {
	token, err := route.AccessTokenFromString(ctx.Param("token"))
	if err != nil {
		return route.AccessToken{}, errs.NewObjectNotFoundError("routeToken", ctx.Param("token"))
	}
	return token, nil
}

// stopFromPath extracts the access token and stop sequence.
func stopFromPath(ctx echo.Context) (route.AccessToken, int, error) {
	token, err := tokenFromPath(ctx)
	if err != nil {
		return route.AccessToken{}, 0, err
	}

	sequence, err := strconv.Atoi(ctx.Param("sequence"))
	if err != nil || sequence < 1 {
		return route.AccessToken{}, 0, errs.NewValueIsInvalidError("sequence")
	}

	return token, sequence, nil
}

// csvBody returns the CSV payload of an import request, from either the
// multipart "file" part or the raw request body.
func csvBody(ctx echo.Context) (io.ReadCloser, error) {
	if file, err := ctx.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return nil, errors.New("unable to read uploaded file")
		}
		return src, nil
	}

	return ctx.Request().Body, nil
}
