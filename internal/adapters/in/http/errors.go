package http

import (
	"errors"
	"net/http"

	"routeplan/internal/core/application/usecases/commands"
	"routeplan/internal/core/ports"
	"routeplan/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps use-case failures onto HTTP status codes:
// value/validation errors → 400, unknown objects → 404, illegal state
// transitions and a planning round already in flight → 409, optimizer
// rejections → 422, optimizer outages → 502, anything else → 500.
func respondError(ctx echo.Context, err error) error {
	var optErr *ports.OptimizationError
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(ctx, http.StatusBadRequest, err)

	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err)

	case errors.Is(err, errs.ErrIllegalStateTransition),
		errors.Is(err, commands.ErrPlanningInProgress):
		return writeError(ctx, http.StatusConflict, err)

	case errors.Is(err, commands.ErrNoPendingOrders):
		return writeError(ctx, http.StatusUnprocessableEntity, err)

	case errors.As(err, &optErr):
		if optErr.Transient {
			return writeError(ctx, http.StatusBadGateway, err)
		}
		return writeError(ctx, http.StatusUnprocessableEntity, err)

	default:
		return writeError(ctx, http.StatusInternalServerError, err)
	}
}

func writeError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

// badRequest reports a malformed request body, header, or path parameter.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
