// Package optimizer implements the OptimizerClient port against the external
// HTTP route-optimization service. Transient failures (429, 5xx, network
// errors) are retried with exponential backoff; well-formed rejections are
// surfaced immediately as non-transient optimization errors.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/services"
	"routeplan/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
)

const (
	planPath   = "/planning/create"
	maxRetries = 3
)

type optimizeRequest struct {
	CompanyID    string         `json:"company_id"`
	StartAddress string         `json:"start_address"`
	Orders       []orderPayload `json:"orders"`
}

type orderPayload struct {
	OrderRef     string  `json:"order_ref"`
	CustomerName string  `json:"customer_name"`
	Address      string  `json:"address"`
	WeightKg     float64 `json:"weight_kg"`
	Priority     int     `json:"priority"`
}

type optimizeResponse struct {
	Routes []routePayload `json:"routes"`
	Route  *routePayload  `json:"route"`
}

type routePayload struct {
	TotalDistanceKm  float64       `json:"total_distance_km"`
	TotalTimeMinutes float64       `json:"total_time_minutes"`
	FuelCostEur      float64       `json:"fuel_cost_eur"`
	Orders           []stopPayload `json:"orders"`
}

type stopPayload struct {
	Sequence int    `json:"sequence"`
	OrderRef string `json:"order_ref"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("optimizer responded %d: %s", e.Code, e.Body)
}

// Client calls the external optimization service over HTTP.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an optimizer client for the given base URL. The timeout
// bounds one whole optimization round including retries.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger.With("component", "optimizer_client"),
	}
}

// Optimize submits the pending orders to the optimization service and returns
// the proposed routes. Semantic validation of the proposals is left to the
// route builder; this client only guarantees the payload is well-formed.
func (c *Client) Optimize(
	ctx context.Context,
	companyID kernel.UUID,
	startAddress string,
	orders []*order.Order,
) ([]services.RouteProposal, error) {
	request := optimizeRequest{
		CompanyID:    companyID.String(),
		StartAddress: startAddress,
		Orders:       make([]orderPayload, 0, len(orders)),
	}
	for _, o := range orders {
		request.Orders = append(request.Orders, orderPayload{
			OrderRef:     o.ID().String(),
			CustomerName: o.CustomerName(),
			Address:      o.DeliveryAddress(),
			WeightKg:     o.WeightKg(),
			Priority:     o.Priority(),
		})
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal optimization request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.postWithRetry(ctx, payload)
	if err != nil {
		return nil, classify(err)
	}

	return parseProposals(body)
}

// postWithRetry retries transient failures with exponential backoff while
// respecting the per-round deadline. Permanent failures short-circuit.
func (c *Client) postWithRetry(ctx context.Context, payload []byte) ([]byte, error) {
	var body []byte

	operation := func() error {
		var opErr error
		body, opErr = c.post(ctx, payload)
		if opErr == nil {
			return nil
		}

		var statusErr *httpStatusError
		if errors.As(opErr, &statusErr) {
			switch statusErr.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				c.logger.WarnContext(ctx, "optimizer call failed, retrying",
					"status", statusErr.Code)
				return opErr
			default:
				return backoff.Permanent(opErr)
			}
		}

		if ctx.Err() != nil {
			return backoff.Permanent(opErr)
		}

		c.logger.WarnContext(ctx, "optimizer call failed, retrying", "error", opErr)
		return opErr
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return body, nil
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+planPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}

// classify converts transport-level failures into optimization errors. 429,
// 5xx, and network errors exhaust their retries before landing here and are
// transient; any other HTTP rejection is a permanent refusal of the plan.
func classify(err error) error {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		transient := statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
		return &ports.OptimizationError{
			Message:   fmt.Sprintf("service rejected the request with status %d", statusErr.Code),
			Transient: transient,
			Cause:     err,
		}
	}

	return &ports.OptimizationError{
		Message:   "service unreachable",
		Transient: true,
		Cause:     err,
	}
}

// parseProposals decodes the optimizer response. Both the plural "routes"
// form and the single "route" form are accepted; anything else is a
// non-transient optimization error.
func parseProposals(body []byte) ([]services.RouteProposal, error) {
	var response optimizeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ports.OptimizationError{
			Message:   "malformed response payload",
			Transient: false,
			Cause:     err,
		}
	}

	routes := response.Routes
	if len(routes) == 0 && response.Route != nil {
		routes = []routePayload{*response.Route}
	}
	if len(routes) == 0 {
		return nil, &ports.OptimizationError{
			Message:   "response contains no routes",
			Transient: false,
		}
	}

	proposals := make([]services.RouteProposal, 0, len(routes))
	for _, r := range routes {
		proposal := services.RouteProposal{
			Stops:            make([]services.StopProposal, 0, len(r.Orders)),
			TotalDistanceKm:  r.TotalDistanceKm,
			TotalTimeMinutes: r.TotalTimeMinutes,
			FuelCostEur:      r.FuelCostEur,
		}

		for _, s := range r.Orders {
			orderID, err := kernel.UUIDFromString(s.OrderRef)
			if err != nil {
				return nil, &ports.OptimizationError{
					Message:   fmt.Sprintf("response references invalid order %q", s.OrderRef),
					Transient: false,
					Cause:     err,
				}
			}

			proposal.Stops = append(proposal.Stops, services.StopProposal{
				Sequence: s.Sequence,
				OrderID:  orderID,
			})
		}

		proposals = append(proposals, proposal)
	}

	return proposals, nil
}
