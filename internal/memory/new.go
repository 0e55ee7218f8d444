package memory

import (
	"context"

	"disaster-safety-assistant/internal/memory/checkpoint"
	"disaster-safety-assistant/internal/model"
	pkgLog "disaster-safety-assistant/pkg/log"
)

// CheckpointStore is the short-lived execution snapshot store, keyed by
// thread. Written by the engine's per-step persistence, not by the
// coordinator.
type CheckpointStore interface {
	Get(threadID string) (checkpoint.Snapshot, bool)
	Put(threadID string, snap checkpoint.Snapshot)
}

// LongTermStore is the durable append-only history keyed by device + session.
type LongTermStore interface {
	Append(ctx context.Context, deviceID, sessionID string, rec model.MemoryRecord) error
	List(ctx context.Context, deviceID, sessionID string) ([]model.MemoryRecord, error)
}

// Coordinator merges the two independently written histories into one ordered,
// de-duplicated view. No other component reads either store directly.
type Coordinator struct {
	checkpoints CheckpointStore
	longTerm    LongTermStore
	l           pkgLog.Logger
}

// New creates a session memory coordinator.
func New(checkpoints CheckpointStore, longTerm LongTermStore, l pkgLog.Logger) *Coordinator {
	return &Coordinator{
		checkpoints: checkpoints,
		longTerm:    longTerm,
		l:           l,
	}
}
