package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limitless/internal/engine"
	"limitless/internal/storage"
)

func newTestBoard(t *testing.T) (boardModel, *engine.Service, *engine.FakeClock) {
	t.Helper()
	ctx := context.Background()
	clock := engine.NewFakeClock(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))
	rules := engine.DefaultRules()
	rules.Location = time.UTC
	svc := engine.NewService(storage.NewMemoryStore(), nil, engine.WithClock(clock), engine.WithRules(rules))
	require.NoError(t, svc.Load(ctx))
	_, _, err := svc.CreatePath(ctx, "study")
	require.NoError(t, err)

	m := newBoardModel(ctx, svc, time.Minute)
	next, _ := m.Update(m.loadCmd()())
	return next.(boardModel), svc, clock
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardCompletesSelectedTask(t *testing.T) {
	m, svc, _ := newTestBoard(t)
	require.Len(t, m.rows(), 4)

	// The path header is not completable.
	next, cmd := m.Update(key("c"))
	m = next.(boardModel)
	assert.Nil(t, cmd)
	assert.Equal(t, "Select a task to complete.", m.lastLog)

	next, _ = m.Update(key("j"))
	m = next.(boardModel)
	next, cmd = m.Update(key("c"))
	m = next.(boardModel)
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(completedMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	next, _ = m.Update(done)
	m = next.(boardModel)
	assert.Contains(t, m.lastLog, "+10 XP")
	assert.Equal(t, 10, svc.Snapshot().UserStats.Experience)
}

func TestBoardFoldsPath(t *testing.T) {
	m, _, _ := newTestBoard(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(boardModel)
	assert.Len(t, m.rows(), 1)
	assert.Contains(t, m.View(), "▸")
}

func TestBoardTickRunsScheduler(t *testing.T) {
	m, svc, clock := newTestBoard(t)
	p := svc.Snapshot().Paths[0]
	_, err := svc.CompleteTask(context.Background(), p.ID, 0)
	require.NoError(t, err)

	clock.AdvanceDays(1)
	_, cmd := m.Update(key("t"))
	require.NotNil(t, cmd)
	ticked, ok := cmd().(tickedMsg)
	require.True(t, ok)
	require.NoError(t, ticked.err)
	assert.Empty(t, svc.Snapshot().Paths[0].CompletedDaily)
}

func TestBoardShowsBrokenStreakAsZero(t *testing.T) {
	ctx := context.Background()
	clock := engine.NewFakeClock(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))
	rules := engine.DefaultRules()
	rules.Location = time.UTC
	svc := engine.NewService(storage.NewMemoryStore(), nil, engine.WithClock(clock), engine.WithRules(rules))
	require.NoError(t, svc.Load(ctx))
	p, _, err := svc.CreateCustomPath(ctx, engine.Template{
		Name:       "Walk",
		Attributes: []engine.Attribute{engine.AttributeHealth},
		Tasks:      []engine.TaskDefinition{{Name: "Walk", XPReward: 5}},
	})
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)

	m := newBoardModel(ctx, svc, time.Minute)
	next, _ := m.Update(m.loadCmd()())
	m = next.(boardModel)
	assert.Contains(t, m.View(), "🔥 1")

	clock.AdvanceDays(2)
	assert.Contains(t, m.View(), "🔥 0")
	assert.Equal(t, 1, svc.Snapshot().Paths[0].Streak)
}
