package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"disaster-safety-assistant/internal/model"
)

// enrich issues the three independent context reads in parallel, each with
// its own budget. A timed-out or failed fetch degrades to its default value
// and is noted on the state; partial failure is the expected steady state.
// Cancellation is cooperative: a timed-out fetch is abandoned, its late
// result discarded.
func (e *Engine) enrich(ctx context.Context, st *model.ConversationState) {
	var mu sync.Mutex
	markDegraded := func(what string) {
		mu.Lock()
		st.Degraded = append(st.Degraded, what)
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		history, ok := fetchWithTimeout(egCtx, e.config.HistoryTimeout, func(fctx context.Context) []model.MemoryRecord {
			return e.coordinator.Read(fctx, st.ThreadID, st.SessionID, st.DeviceID)
		})
		if !ok {
			e.l.Warnf(ctx, "%s: history fetch degraded to empty for thread %s", LogPrefixEnrich, st.ThreadID)
			markDegraded(DegradedHistory)
			return nil
		}
		mu.Lock()
		st.History = history
		mu.Unlock()
		return nil
	})

	eg.Go(func() error {
		if st.Location == "" {
			return nil
		}
		raw := st.Location
		resolved, ok := fetchWithTimeout(egCtx, e.config.LocationTimeout, func(fctx context.Context) resolveResult {
			loc, err := e.location.Resolve(fctx, raw)
			return resolveResult{value: loc, err: err}
		})
		if !ok || resolved.err != nil {
			e.l.Warnf(ctx, "%s: location resolution degraded for device %s", LogPrefixEnrich, st.DeviceID)
			markDegraded(DegradedLocation)
			mu.Lock()
			st.Location = ""
			mu.Unlock()
			return nil
		}
		mu.Lock()
		st.Location = resolved.value
		mu.Unlock()
		return nil
	})

	eg.Go(func() error {
		status, ok := fetchWithTimeout(egCtx, e.config.DeviceTimeout, func(fctx context.Context) resolveResult {
			s, err := e.device.Status(fctx, st.DeviceID)
			return resolveResult{value: s, err: err}
		})
		if !ok || status.err != nil {
			e.l.Warnf(ctx, "%s: device status degraded for device %s", LogPrefixEnrich, st.DeviceID)
			markDegraded(DegradedDevice)
			return nil
		}
		mu.Lock()
		st.DeviceStatus = status.value
		mu.Unlock()
		return nil
	})

	// Fetches never return errors; they degrade instead.
	_ = eg.Wait()
}

type resolveResult struct {
	value string
	err   error
}

// fetchWithTimeout runs fn with its own deadline. On timeout the in-flight
// call is abandoned, not interrupted, and ok is false.
func fetchWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) T) (T, bool) {
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resultCh := make(chan T, 1)
	go func() {
		resultCh <- fn(fctx)
	}()

	select {
	case result := <-resultCh:
		return result, true
	case <-fctx.Done():
		var zero T
		return zero, false
	}
}
