package longterm

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"disaster-safety-assistant/internal/model"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS conversation_history (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id   TEXT NOT NULL,
    session_id  TEXT NOT NULL,
    role        TEXT NOT NULL,
    content     TEXT NOT NULL,
    created_at  TEXT NOT NULL
);
`

const historyIndex = `
CREATE INDEX IF NOT EXISTS idx_conversation_history_lookup
ON conversation_history(device_id, session_id);
`

// Store is the durable, append-only conversation history keyed by
// device + session.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite-backed history store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("longterm: failed to open database: %w", err)
	}
	return New(db)
}

// New initializes the conversation_history table on an existing handle.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(historySchema); err != nil {
		return nil, fmt.Errorf("longterm: failed to create schema: %w", err)
	}
	if _, err := db.Exec(historyIndex); err != nil {
		return nil, fmt.Errorf("longterm: failed to create index: %w", err)
	}
	return &Store{db: db}, nil
}

// Append persists one record. Records are never updated or deleted.
func (s *Store) Append(ctx context.Context, deviceID, sessionID string, rec model.MemoryRecord) error {
	ts := rec.SourceTimestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversation_history (device_id, session_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		deviceID, sessionID, string(rec.Role), rec.Content, ts.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("longterm: failed to append record: %w", err)
	}
	return nil
}

// List returns all records for a device + session in insertion order.
func (s *Store) List(ctx context.Context, deviceID, sessionID string) ([]model.MemoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, created_at
		FROM conversation_history
		WHERE device_id = ? AND session_id = ?
		ORDER BY id ASC`,
		deviceID, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("longterm: failed to list records: %w", err)
	}
	defer rows.Close()

	var records []model.MemoryRecord
	for rows.Next() {
		var role, content, createdAt string
		if err := rows.Scan(&role, &content, &createdAt); err != nil {
			return nil, fmt.Errorf("longterm: failed to scan record: %w", err)
		}
		rec := model.MemoryRecord{Role: model.Role(role), Content: content}
		if ts, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			rec.SourceTimestamp = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
