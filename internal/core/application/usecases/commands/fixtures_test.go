package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/model/route"

	"github.com/stretchr/testify/require"
)

func nowUTC() time.Time {
	return time.Date(2025, 12, 11, 14, 5, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makePendingOrder(t *testing.T, companyID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), companyID,
		"Albert Heijn Utrecht",
		"Depot Westhaven 12, Amsterdam",
		"Oudegracht 145, Utrecht",
		500, 1,
		time.Date(2025, 12, 11, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

// storedOrder mimics a repository read of an order in the given status,
// rebuilt from its persisted fields as a separate aggregate instance.
func storedOrder(t *testing.T, o *order.Order, status order.Status) *order.Order {
	t.Helper()
	stored, err := order.RestoreOrder(
		o.ID(), o.CompanyID(),
		o.CustomerName(), o.PickupAddress(), o.DeliveryAddress(),
		o.WeightKg(), o.Priority(), o.RequestedDate(),
		status, o.CreatedAt(),
	)
	require.NoError(t, err)
	return stored
}

func makeRoute(t *testing.T, companyID kernel.UUID, orderIDs ...kernel.UUID) *route.Route {
	t.Helper()
	stops := make([]*route.Stop, 0, len(orderIDs))
	for i, orderID := range orderIDs {
		s, err := route.NewStop(i+1, orderID)
		require.NoError(t, err)
		stops = append(stops, s)
	}

	r, err := route.NewRoute(kernel.NewUUID(), companyID, stops, 42.5, 95, 11.2)
	require.NoError(t, err)
	return r
}
