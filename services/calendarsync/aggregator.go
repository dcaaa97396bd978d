package calendarsync

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"slotwise/models"
)

// Aggregator fans a busy-interval fetch out across every connection of every
// registered adapter. Each connection is fetched independently under the
// retry policy; a failing connection is recorded and excluded, never fatal.
type Aggregator struct {
	Adapters []Adapter
	Policy   RetryPolicy
	// Limiter paces outbound calendar calls across all connections.
	Limiter *rate.Limiter
	Cache   *BusyCache
	Logger  *zap.Logger
}

type connFetch struct {
	adapter Adapter
	conn    models.CalendarConnection
}

// FetchBusy collects busy intervals from all reachable connections of the
// user. The result is sorted so downstream merging is deterministic.
func (a *Aggregator) FetchBusy(ctx context.Context, userID string, window models.TimeInterval) Result {
	var targets []connFetch
	for _, adapter := range a.Adapters {
		conns, err := adapter.ListConnections(ctx, userID)
		if err != nil {
			a.Logger.Warn("listing calendar connections failed",
				zap.String("adapter", string(adapter.Name())),
				zap.String("userID", userID),
				zap.Error(err))
			continue
		}
		for _, conn := range conns {
			if !conn.SyncEnabled {
				continue
			}
			targets = append(targets, connFetch{adapter: adapter, conn: conn})
		}
	}
	if len(targets) == 0 {
		return Result{}
	}

	var (
		mu     sync.Mutex
		result Result
		wg     sync.WaitGroup
	)
	for _, t := range targets {
		wg.Add(1)
		go func(t connFetch) {
			defer wg.Done()
			intervals, err := a.fetchOne(ctx, t, window)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, FailedConnection{
					ConnectionID: t.conn.ID,
					Primary:      t.conn.IsPrimary,
					Reason:       err.Error(),
				})
				return
			}
			result.Intervals = append(result.Intervals, intervals...)
		}(t)
	}
	wg.Wait()

	sort.Slice(result.Intervals, func(i, j int) bool {
		return result.Intervals[i].Start.Before(result.Intervals[j].Start)
	})
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].ConnectionID < result.Failed[j].ConnectionID
	})
	return result
}

func (a *Aggregator) fetchOne(ctx context.Context, t connFetch, window models.TimeInterval) ([]models.TimeInterval, error) {
	if a.Cache != nil {
		if cached, ok := a.Cache.Get(ctx, t.conn.ID, window); ok {
			return cached, nil
		}
	}

	var busy []models.ExternalBusyInterval
	err := a.Policy.Do(ctx, func(ctx context.Context) error {
		if a.Limiter != nil {
			if err := a.Limiter.Wait(ctx); err != nil {
				return err
			}
		}
		fetched, err := t.adapter.FetchBusyIntervals(ctx, t.conn, window)
		if err != nil {
			return err
		}
		busy = fetched
		return nil
	})
	if err != nil {
		syncErr := &SyncError{ConnectionID: t.conn.ID, Op: "fetch", Err: err}
		a.Logger.Warn("calendar busy fetch failed",
			zap.String("connectionID", t.conn.ID),
			zap.String("adapter", string(t.adapter.Name())),
			zap.Error(syncErr))
		return nil, syncErr
	}

	intervals := make([]models.TimeInterval, 0, len(busy))
	for _, b := range busy {
		if b.Interval.Validate() != nil {
			continue
		}
		intervals = append(intervals, b.Interval)
	}
	if a.Cache != nil {
		a.Cache.Set(ctx, t.conn.ID, window, intervals)
	}
	return intervals, nil
}
