package queries_test

import (
	"routeplan/internal/core/domain/model/kernel"
)

// mockAggregateTracker is a no-op tracker for seeding repositories in
// query handler tests, where change tracking is irrelevant.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}
