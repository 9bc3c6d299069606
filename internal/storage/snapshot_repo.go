package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultHistoryLimit is how many revisions per key snapshot_history keeps.
const DefaultHistoryLimit = 50

// SQLiteStore keeps snapshots in the snapshots table. Every save also appends
// to snapshot_history in the same transaction.
type SQLiteStore struct {
	db           *sql.DB
	historyLimit int
	now          func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, historyLimit: DefaultHistoryLimit, now: time.Now}
}

// WithHistoryLimit changes how many revisions are kept. Zero or less disables pruning.
func (s *SQLiteStore) WithHistoryLimit(n int) *SQLiteStore {
	s.historyLimit = n
	return s
}

// Load returns (nil, nil) when nothing is stored under key.
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, key)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot load: %w", err)
	}
	return data, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, data []byte) error {
	at := formatTime(s.now())
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (key, data, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				data = excluded.data,
				updated_at = excluded.updated_at
		`, key, data, at); err != nil {
			return fmt.Errorf("snapshot save: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_history (key, data, saved_at) VALUES (?, ?, ?)
		`, key, data, at); err != nil {
			return fmt.Errorf("snapshot history: %w", err)
		}
		if s.historyLimit <= 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM snapshot_history
			WHERE key = ? AND id NOT IN (
				SELECT id FROM snapshot_history WHERE key = ? ORDER BY id DESC LIMIT ?
			)
		`, key, key, s.historyLimit); err != nil {
			return fmt.Errorf("snapshot history prune: %w", err)
		}
		return nil
	})
}

// Revisions lists stored revisions for key, newest first.
func (s *SQLiteStore) Revisions(ctx context.Context, key string, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, key, saved_at, length(data)
		FROM snapshot_history
		WHERE key = ?
		ORDER BY id DESC
		LIMIT ?
	`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("snapshot revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var r Revision
		var savedAt string
		if err := rows.Scan(&r.ID, &r.Key, &savedAt, &r.Size); err != nil {
			return nil, fmt.Errorf("snapshot revisions scan: %w", err)
		}
		if r.SavedAt, err = parseTime(savedAt); err != nil {
			return nil, fmt.Errorf("snapshot revisions time: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot revisions rows: %w", err)
	}
	return out, nil
}

// Revision returns the stored blob of one history row, or nil if it is gone.
func (s *SQLiteStore) Revision(ctx context.Context, id int64) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM snapshot_history WHERE id = ?`, id)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot revision: %w", err)
	}
	return data, nil
}
