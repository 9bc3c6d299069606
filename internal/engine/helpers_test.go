package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// t0 is a Wednesday; the Sunday-based week started 2023-12-31.
var t0 = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

func testRules() Rules {
	r := DefaultRules()
	r.Location = time.UTC
	return r
}

func focusTemplate() Template {
	return Template{
		Key:              "focus",
		Name:             "Focus",
		Icon:             "🎯",
		Attributes:       []Attribute{AttributeIntelligence, AttributeResilience},
		PrimaryAttribute: AttributeIntelligence,
		Titles:           []string{"Novice", "Adept", "Master"},
		Tasks: []TaskDefinition{
			{
				Name: "Deep Work", Frequency: FrequencyDaily, XPReward: 10,
				AttributeRewards: map[Attribute]int{AttributeIntelligence: 2},
			},
			{
				Name: "Review", Frequency: FrequencyWeekly, TimesPerWeek: 3, XPReward: 20,
				AttributeRewards: map[Attribute]int{AttributeIntelligence: 1, AttributeResilience: 1},
			},
		},
	}
}

// singleDaily has exactly one daily task, so one completion satisfies the day.
func singleDaily() Template {
	return Template{
		Key:              "single",
		Name:             "Single",
		Icon:             "⭐",
		Attributes:       []Attribute{AttributeHealth},
		PrimaryAttribute: AttributeHealth,
		Titles:           []string{"Novice"},
		Tasks: []TaskDefinition{
			{Name: "Walk", Frequency: FrequencyDaily, XPReward: 5, AttributeRewards: map[Attribute]int{AttributeHealth: 1}},
		},
	}
}

func newTestPath(t *testing.T, tpl Template, now time.Time) Path {
	t.Helper()
	p, err := NewPath(tpl, now, testRules())
	require.NoError(t, err)
	return p
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (m *memStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// RecordingSink keeps every delivered event.
type RecordingSink struct {
	Events []Event
}

func (r *RecordingSink) Notify(_ context.Context, events []Event) error {
	r.Events = append(r.Events, events...)
	return nil
}
