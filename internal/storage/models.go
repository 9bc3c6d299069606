package storage

import "time"

const timeLayout = time.RFC3339Nano

// Revision is one row of snapshot_history.
type Revision struct {
	ID      int64
	Key     string
	SavedAt time.Time
	Size    int
}

// EventRecord is one row of event_log.
type EventRecord struct {
	ID      int64
	Kind    string
	Message string
	Payload string
	At      time.Time
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
