package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"limitless/internal/engine"
)

// EventRepo appends engine events to event_log. It is an engine.NotificationSink.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

var _ engine.NotificationSink = (*EventRepo)(nil)

// Notify stores every event of one call in a single transaction.
func (r *EventRepo) Notify(ctx context.Context, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, e := range events {
			var payload any
			if len(e.Payload) > 0 {
				b, err := json.Marshal(e.Payload)
				if err != nil {
					return fmt.Errorf("event payload: %w", err)
				}
				payload = string(b)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO event_log (kind, message, payload, at)
				VALUES (?, ?, ?, ?)
			`, string(e.Kind), e.Message, payload, formatTime(e.At)); err != nil {
				return fmt.Errorf("event insert: %w", err)
			}
		}
		return nil
	})
}

// Recent returns up to n events, newest first.
func (r *EventRepo) Recent(ctx context.Context, n int) ([]EventRecord, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, message, payload, at
		FROM event_log
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("event recent: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var rec EventRecord
		var payload sql.NullString
		var at string
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Message, &payload, &at); err != nil {
			return nil, fmt.Errorf("event scan: %w", err)
		}
		rec.Payload = payload.String
		if rec.At, err = parseTime(at); err != nil {
			return nil, fmt.Errorf("event time: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event rows: %w", err)
	}
	return out, nil
}

// CountByKind returns how many events of each kind were logged.
func (r *EventRepo) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM event_log GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("event count: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("event count scan: %w", err)
		}
		out[kind] = n
	}
	return out, rows.Err()
}
