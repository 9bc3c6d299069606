package engine

import (
	"context"
	"log/slog"
	"time"
)

type EventKind string

const (
	EventRankUp           EventKind = "rank_up"
	EventAttributeRankUp  EventKind = "attribute_rank_up"
	EventLevelUp          EventKind = "level_up"
	EventTitleUnlocked    EventKind = "title_unlocked"
	EventStreakMilestone  EventKind = "streak_milestone"
	EventTaskCompleted    EventKind = "task_completed"
	EventPathCreated      EventKind = "path_created"
	EventPathRemoved      EventKind = "path_removed"
	EventAttributeDecayed EventKind = "attribute_decayed"
)

// Event is a human-readable notification produced by a mutating call.
type Event struct {
	Kind    EventKind      `json:"kind"`
	Message string         `json:"message"`
	Payload map[string]any `json:"payload,omitempty"`
	At      time.Time      `json:"at"`
}

// NotificationSink receives the events of one mutating call, in order.
type NotificationSink interface {
	Notify(ctx context.Context, events []Event) error
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Notify(context.Context, []Event) error { return nil }

// LogSink writes each event as a structured log record.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Notify(ctx context.Context, events []Event) error {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	for _, e := range events {
		l.InfoContext(ctx, e.Message, "kind", string(e.Kind), "payload", e.Payload)
	}
	return nil
}

// MultiSink fans events out to every sink and returns the first error.
type MultiSink []NotificationSink

func (m MultiSink) Notify(ctx context.Context, events []Event) error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Notify(ctx, events); err != nil && first == nil {
			first = err
		}
	}
	return first
}
