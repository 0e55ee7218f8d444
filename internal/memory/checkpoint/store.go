package checkpoint

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"disaster-safety-assistant/internal/model"
)

// Snapshot is the execution-scoped state of one thread. It is written by the
// engine's per-step persistence and read back at the start of the next turn.
type Snapshot struct {
	ThreadID  string
	Records   []model.MemoryRecord
	LastState string // last engine state name, for inspection
	UpdatedAt time.Time
}

const (
	// DefaultCapacity bounds how many live threads are checkpointed at once.
	DefaultCapacity = 10000

	// DefaultTTL expires threads that have gone quiet.
	DefaultTTL = 30 * time.Minute
)

// Store is the short-lived, thread-keyed checkpoint store. Entries expire on
// their own; the durable copy of every turn lives in the long-term store.
type Store struct {
	cache *expirable.LRU[string, Snapshot]
}

// New creates a checkpoint store. Zero values select the defaults.
func New(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: expirable.NewLRU[string, Snapshot](capacity, nil, ttl),
	}
}

// Get returns the snapshot for a thread, absent on first turn or after expiry.
func (s *Store) Get(threadID string) (Snapshot, bool) {
	return s.cache.Get(threadID)
}

// Put stores the snapshot for a thread.
func (s *Store) Put(threadID string, snap Snapshot) {
	snap.ThreadID = threadID
	snap.UpdatedAt = time.Now()
	s.cache.Add(threadID, snap)
}
