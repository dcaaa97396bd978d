package calendarsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotwise/models"
)

// stubAdapter hands out fixed connections and per-connection outcomes.
type stubAdapter struct {
	kind  models.CalendarProviderKind
	conns []models.CalendarConnection
	busy  map[string][]models.ExternalBusyInterval
	fail  map[string]error
	calls map[string]int
}

func (s *stubAdapter) Name() models.CalendarProviderKind { return s.kind }

func (s *stubAdapter) ListConnections(context.Context, string) ([]models.CalendarConnection, error) {
	return s.conns, nil
}

func (s *stubAdapter) FetchBusyIntervals(_ context.Context, conn models.CalendarConnection, _ models.TimeInterval) ([]models.ExternalBusyInterval, error) {
	if s.calls != nil {
		s.calls[conn.ID]++
	}
	if err := s.fail[conn.ID]; err != nil {
		return nil, err
	}
	return s.busy[conn.ID], nil
}

func testWindow() models.TimeInterval {
	return models.TimeInterval{
		Start:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Timezone: "UTC",
	}
}

func busyAt(connID string, startHour, endHour int) models.ExternalBusyInterval {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return models.ExternalBusyInterval{
		ConnectionID: connID,
		Interval: models.TimeInterval{
			Start:    day.Add(time.Duration(startHour) * time.Hour),
			End:      day.Add(time.Duration(endHour) * time.Hour),
			Timezone: "UTC",
		},
	}
}

func TestFetchBusyCollectsAllConnections(t *testing.T) {
	adapter := &stubAdapter{
		kind: models.CalendarGoogle,
		conns: []models.CalendarConnection{
			{ID: "c1", SyncEnabled: true},
			{ID: "c2", SyncEnabled: true},
		},
		busy: map[string][]models.ExternalBusyInterval{
			"c1": {busyAt("c1", 14, 15)},
			"c2": {busyAt("c2", 9, 10)},
		},
	}
	agg := &Aggregator{Adapters: []Adapter{adapter}, Logger: zap.NewNop()}

	result := agg.FetchBusy(context.Background(), "user-1", testWindow())

	require.Len(t, result.Intervals, 2)
	assert.False(t, result.Degraded())
	// Sorted by start regardless of goroutine completion order.
	assert.True(t, result.Intervals[0].Start.Before(result.Intervals[1].Start))
}

func TestFetchBusyIsolatesFailingConnection(t *testing.T) {
	adapter := &stubAdapter{
		kind: models.CalendarGoogle,
		conns: []models.CalendarConnection{
			{ID: "c1", SyncEnabled: true},
			{ID: "c2", SyncEnabled: true, IsPrimary: true},
		},
		busy: map[string][]models.ExternalBusyInterval{
			"c1": {busyAt("c1", 14, 15)},
		},
		fail: map[string]error{
			"c2": errors.New("oauth token revoked"),
		},
	}
	agg := &Aggregator{Adapters: []Adapter{adapter}, Logger: zap.NewNop()}

	result := agg.FetchBusy(context.Background(), "user-1", testWindow())

	require.Len(t, result.Intervals, 1)
	require.Len(t, result.Failed, 1)
	assert.True(t, result.Degraded())
	assert.True(t, result.PrimaryFailed())
	assert.Equal(t, "c2", result.Failed[0].ConnectionID)
	assert.Contains(t, result.Failed[0].Reason, "oauth token revoked")
}

func TestFetchBusySkipsDisabledConnections(t *testing.T) {
	adapter := &stubAdapter{
		kind: models.CalendarGoogle,
		conns: []models.CalendarConnection{
			{ID: "c1", SyncEnabled: false},
		},
		calls: map[string]int{},
	}
	agg := &Aggregator{Adapters: []Adapter{adapter}, Logger: zap.NewNop()}

	result := agg.FetchBusy(context.Background(), "user-1", testWindow())

	assert.Empty(t, result.Intervals)
	assert.Empty(t, result.Failed)
	assert.Zero(t, adapter.calls["c1"])
}

func TestFetchBusyRetriesTransientErrors(t *testing.T) {
	attempts := 0
	adapter := &flakyAdapter{failures: 2, onCall: func() { attempts++ }}
	agg := &Aggregator{
		Adapters: []Adapter{adapter},
		Policy:   RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond},
		Logger:   zap.NewNop(),
	}

	result := agg.FetchBusy(context.Background(), "user-1", testWindow())

	assert.False(t, result.Degraded())
	assert.Equal(t, 3, attempts)
	require.Len(t, result.Intervals, 1)
}

func TestFetchBusyDropsInvalidIntervals(t *testing.T) {
	adapter := &stubAdapter{
		kind:  models.CalendarGoogle,
		conns: []models.CalendarConnection{{ID: "c1", SyncEnabled: true}},
		busy: map[string][]models.ExternalBusyInterval{
			"c1": {
				busyAt("c1", 9, 10),
				{ConnectionID: "c1", Interval: models.TimeInterval{
					Start:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
					End:      time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
					Timezone: "UTC",
				}},
			},
		},
	}
	agg := &Aggregator{Adapters: []Adapter{adapter}, Logger: zap.NewNop()}

	result := agg.FetchBusy(context.Background(), "user-1", testWindow())

	require.Len(t, result.Intervals, 1)
}

func TestFetchBusyNoAdapters(t *testing.T) {
	agg := &Aggregator{Logger: zap.NewNop()}

	result := agg.FetchBusy(context.Background(), "user-1", testWindow())

	assert.Empty(t, result.Intervals)
	assert.False(t, result.Degraded())
}

// flakyAdapter fails the first N fetches, then succeeds.
type flakyAdapter struct {
	failures int
	onCall   func()
}

func (f *flakyAdapter) Name() models.CalendarProviderKind { return models.CalendarGoogle }

func (f *flakyAdapter) ListConnections(context.Context, string) ([]models.CalendarConnection, error) {
	return []models.CalendarConnection{{ID: "c1", SyncEnabled: true}}, nil
}

func (f *flakyAdapter) FetchBusyIntervals(context.Context, models.CalendarConnection, models.TimeInterval) ([]models.ExternalBusyInterval, error) {
	if f.onCall != nil {
		f.onCall()
	}
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("temporarily unavailable")
	}
	return []models.ExternalBusyInterval{busyAt("c1", 9, 10)}, nil
}
