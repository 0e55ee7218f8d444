package memory

import (
	"context"
	"sort"

	"disaster-safety-assistant/internal/model"
)

// Log prefixes
const (
	LogPrefixRead  = "internal.memory.Read"
	LogPrefixWrite = "internal.memory.Write"
)

// Read returns the merged, ordered, de-duplicated history for a turn. Both
// stores are fetched in parallel; a failed long-term read degrades to the
// checkpoint view alone rather than failing the turn.
func (c *Coordinator) Read(ctx context.Context, threadID, sessionID, deviceID string) []model.MemoryRecord {
	type longTermResult struct {
		records []model.MemoryRecord
		err     error
	}

	longTermCh := make(chan longTermResult, 1)
	go func() {
		records, err := c.longTerm.List(ctx, deviceID, sessionID)
		longTermCh <- longTermResult{records: records, err: err}
	}()

	var checkpointRecords []model.MemoryRecord
	if snap, ok := c.checkpoints.Get(threadID); ok {
		checkpointRecords = snap.Records
	}

	lt := <-longTermCh
	if lt.err != nil {
		c.l.Warnf(ctx, "%s: long-term read failed, degrading to checkpoint only: %v", LogPrefixRead, lt.err)
	}

	return Merge(lt.records, checkpointRecords)
}

// Write appends the turn's user/assistant pair to the long-term store. The
// checkpoint store is updated by the engine's own persistence step. Failures
// are logged and swallowed: losing the durable copy of one turn must not fail
// the user-visible response.
func (c *Coordinator) Write(ctx context.Context, sessionID, deviceID string, userTurn, assistantTurn model.MemoryRecord) {
	if err := c.longTerm.Append(ctx, deviceID, sessionID, userTurn); err != nil {
		c.l.Warnf(ctx, "%s: failed to append user turn: %v", LogPrefixWrite, err)
	}
	if err := c.longTerm.Append(ctx, deviceID, sessionID, assistantTurn); err != nil {
		c.l.Warnf(ctx, "%s: failed to append assistant turn: %v", LogPrefixWrite, err)
	}
}

// Merge combines the two histories. Long-term records come first so the
// durable store is canonical when both persisted the same exchange; a record
// is skipped when its (role, content) key was already seen. The result is
// ordered by timestamp only when every record carries one; otherwise the
// insertion order above is preserved, since stability beats a hard failure.
func Merge(longTerm, checkpointRecords []model.MemoryRecord) []model.MemoryRecord {
	seen := make(map[string]struct{}, len(longTerm)+len(checkpointRecords))
	merged := make([]model.MemoryRecord, 0, len(longTerm)+len(checkpointRecords))

	for _, rec := range longTerm {
		if _, dup := seen[rec.Key()]; dup {
			continue
		}
		seen[rec.Key()] = struct{}{}
		merged = append(merged, rec)
	}
	for _, rec := range checkpointRecords {
		if _, dup := seen[rec.Key()]; dup {
			continue
		}
		seen[rec.Key()] = struct{}{}
		merged = append(merged, rec)
	}

	for _, rec := range merged {
		if rec.SourceTimestamp.IsZero() {
			return merged
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SourceTimestamp.Before(merged[j].SourceTimestamp)
	})
	return merged
}
