package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const callsTableSchema = `
	CREATE TABLE IF NOT EXISTS api_calls (
		id        TEXT PRIMARY KEY,
		endpoint  TEXT NOT NULL,
		account   TEXT,
		status    INTEGER,
		duration_ms INTEGER,
		called_at INTEGER NOT NULL
	);
`

// SQLiteTracker persists call records to a local SQLite database.
type SQLiteTracker struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteTracker, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(callsTableSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create api_calls table: %w", err)
	}

	return &SQLiteTracker{db: db}, nil
}

func (t *SQLiteTracker) Record(ctx context.Context, call Call) error {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	if call.CalledAt.IsZero() {
		call.CalledAt = time.Now()
	}

	_, err := t.db.ExecContext(ctx,
		`INSERT INTO api_calls (id, endpoint, account, status, duration_ms, called_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		call.ID,
		call.Endpoint,
		call.Account,
		call.Status,
		call.Duration.Milliseconds(),
		// Unix nanos, not a string layout: MAX over the column must follow
		// time order, and RFC3339Nano trims trailing zeros so its strings
		// do not sort chronologically within a second.
		call.CalledAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert api call: %w", err)
	}
	return nil
}

func (t *SQLiteTracker) Stats(ctx context.Context) ([]EndpointStats, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT endpoint, COUNT(*), MAX(called_at)
		 FROM api_calls
		 GROUP BY endpoint
		 ORDER BY endpoint`)
	if err != nil {
		return nil, fmt.Errorf("query api call stats: %w", err)
	}
	defer rows.Close()

	var stats []EndpointStats
	for rows.Next() {
		var s EndpointStats
		var lastCalled int64
		if err := rows.Scan(&s.Endpoint, &s.Calls, &lastCalled); err != nil {
			return nil, fmt.Errorf("scan api call stats: %w", err)
		}
		s.LastCalledAt = time.Unix(0, lastCalled).UTC()
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (t *SQLiteTracker) Close() error {
	return t.db.Close()
}
