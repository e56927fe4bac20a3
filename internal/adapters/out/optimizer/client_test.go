package optimizer_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"routeplan/internal/adapters/out/optimizer"
	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"Albert Heijn Utrecht", "", "Oudegracht 145, Utrecht",
		500, 2, time.Time{},
	)
	require.NoError(t, err)
	return o
}

func respondWithPlan(t *testing.T, w http.ResponseWriter, orderRef string) {
	t.Helper()

	err := json.NewEncoder(w).Encode(map[string]any{
		"routes": []map[string]any{{
			"total_distance_km":  42.5,
			"total_time_minutes": 95.0,
			"fuel_cost_eur":      11.2,
			"orders": []map[string]any{
				{"sequence": 1, "order_ref": orderRef},
			},
		}},
	})
	require.NoError(t, err)
}

func TestClient_Optimize_SubmitsOrdersAndParsesProposals(t *testing.T) {
	pendingOrder := newPendingOrder(t)
	companyID := pendingOrder.CompanyID()

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/planning/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		respondWithPlan(t, w, pendingOrder.ID().String())
	}))
	defer server.Close()

	client := optimizer.NewClient(server.URL, 5*time.Second, discardLogger())

	proposals, err := client.Optimize(
		t.Context(), companyID, "Warehouse West, Amsterdam", []*order.Order{pendingOrder})
	require.NoError(t, err)

	require.Len(t, proposals, 1)
	assert.InDelta(t, 42.5, proposals[0].TotalDistanceKm, 0.001)
	assert.InDelta(t, 95, proposals[0].TotalTimeMinutes, 0.001)
	assert.InDelta(t, 11.2, proposals[0].FuelCostEur, 0.001)
	require.Len(t, proposals[0].Stops, 1)
	assert.Equal(t, 1, proposals[0].Stops[0].Sequence)
	assert.Equal(t, pendingOrder.ID(), proposals[0].Stops[0].OrderID)

	assert.Equal(t, companyID.String(), captured["company_id"])
	assert.Equal(t, "Warehouse West, Amsterdam", captured["start_address"])

	sentOrders := captured["orders"].([]any)
	require.Len(t, sentOrders, 1)
	sentOrder := sentOrders[0].(map[string]any)
	assert.Equal(t, pendingOrder.ID().String(), sentOrder["order_ref"])
	assert.Equal(t, "Albert Heijn Utrecht", sentOrder["customer_name"])
	assert.Equal(t, "Oudegracht 145, Utrecht", sentOrder["address"])
	assert.InDelta(t, 500, sentOrder["weight_kg"].(float64), 0.001)
	assert.InDelta(t, 2, sentOrder["priority"].(float64), 0.001)
}

func TestClient_Optimize_AcceptsSingleRouteObject(t *testing.T) {
	pendingOrder := newPendingOrder(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		err := json.NewEncoder(w).Encode(map[string]any{
			"route": map[string]any{
				"total_distance_km":  12.0,
				"total_time_minutes": 30.0,
				"fuel_cost_eur":      3.5,
				"orders": []map[string]any{
					{"sequence": 1, "order_ref": pendingOrder.ID().String()},
				},
			},
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := optimizer.NewClient(server.URL, 5*time.Second, discardLogger())

	proposals, err := client.Optimize(
		t.Context(), pendingOrder.CompanyID(), "Warehouse West", []*order.Order{pendingOrder})
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.InDelta(t, 12, proposals[0].TotalDistanceKm, 0.001)
}

func TestClient_Optimize_RetriesTransientFailures(t *testing.T) {
	pendingOrder := newPendingOrder(t)

	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		respondWithPlan(t, w, pendingOrder.ID().String())
	}))
	defer server.Close()

	client := optimizer.NewClient(server.URL, 30*time.Second, discardLogger())

	proposals, err := client.Optimize(
		t.Context(), pendingOrder.CompanyID(), "Warehouse West", []*order.Order{pendingOrder})
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, 3, attempts)
}

func TestClient_Optimize_DoesNotRetryWellFormedRejection(t *testing.T) {
	pendingOrder := newPendingOrder(t)

	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"orders exceed vehicle capacity"}`))
	}))
	defer server.Close()

	client := optimizer.NewClient(server.URL, 5*time.Second, discardLogger())

	proposals, err := client.Optimize(
		t.Context(), pendingOrder.CompanyID(), "Warehouse West", []*order.Order{pendingOrder})
	require.Nil(t, proposals)

	var optErr *ports.OptimizationError
	require.ErrorAs(t, err, &optErr)
	assert.False(t, optErr.Transient)
	assert.Equal(t, 1, attempts)
}

func TestClient_Optimize_TransientAfterExhaustedRetries(t *testing.T) {
	pendingOrder := newPendingOrder(t)

	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := optimizer.NewClient(server.URL, 30*time.Second, discardLogger())

	_, err := client.Optimize(
		t.Context(), pendingOrder.CompanyID(), "Warehouse West", []*order.Order{pendingOrder})

	var optErr *ports.OptimizationError
	require.ErrorAs(t, err, &optErr)
	assert.True(t, optErr.Transient)
	assert.Equal(t, 4, attempts)
}

func TestClient_Optimize_MalformedPayloadIsAnError(t *testing.T) {
	pendingOrder := newPendingOrder(t)

	testCases := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"routes": [`},
		{name: "no routes", body: `{"message":"ok"}`},
		{name: "invalid order ref", body: `{"routes":[{"total_distance_km":1,"total_time_minutes":1,"fuel_cost_eur":1,"orders":[{"sequence":1,"order_ref":"not-a-uuid"}]}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := optimizer.NewClient(server.URL, 5*time.Second, discardLogger())

			proposals, err := client.Optimize(
				t.Context(), pendingOrder.CompanyID(), "Warehouse West", []*order.Order{pendingOrder})
			require.Nil(t, proposals)

			var optErr *ports.OptimizationError
			require.ErrorAs(t, err, &optErr)
			assert.False(t, optErr.Transient)
		})
	}
}
