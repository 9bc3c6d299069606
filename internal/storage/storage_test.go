package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limitless/internal/engine"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestSQLiteStoreLoadMissing(t *testing.T) {
	s := openTestDB(t)
	data, err := s.Load(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSQLiteStoreRoundTripAndHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t).WithHistoryLimit(2)

	for _, v := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		require.NoError(t, s.Save(ctx, "k", []byte(v)))
	}
	data, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"n":3}`, string(data))

	revs, err := s.Revisions(ctx, "k", 10)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.True(t, revs[0].ID > revs[1].ID)
	assert.Equal(t, len(`{"n":3}`), revs[0].Size)

	old, err := s.Revision(ctx, revs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, `{"n":2}`, string(old))

	gone, err := s.Revision(ctx, 99999)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMigrateIsRepeatable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "twice.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestEventRepo(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer db.Close()
	repo := NewEventRepo(db)

	at := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Notify(ctx, nil))
	require.NoError(t, repo.Notify(ctx, []engine.Event{
		{Kind: engine.EventTaskCompleted, Message: "first", Payload: map[string]any{"xp": 10}, At: at},
		{Kind: engine.EventLevelUp, Message: "second", At: at.Add(time.Minute)},
		{Kind: engine.EventTaskCompleted, Message: "third", At: at.Add(2 * time.Minute)},
	}))

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Message)
	assert.Equal(t, "second", recent[1].Message)
	assert.Equal(t, "", recent[1].Payload)
	assert.True(t, at.Add(2*time.Minute).Equal(recent[0].At))

	all, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	assert.JSONEq(t, `{"xp":10}`, all[2].Payload)

	counts, err := repo.CountByKind(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"task_completed": 2, "level_up": 1}, counts)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	data, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	buf := []byte("abc")
	require.NoError(t, m.Save(ctx, "k", buf))
	buf[0] = 'x'
	data, err = m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("LIMITLESS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LIMITLESS_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := OpenRedis(ctx, addr)
	require.NoError(t, err)
	defer client.Close()

	prefix := "limitless-test:" + t.Name() + ":"
	s := NewRedisStore(client, prefix)
	t.Cleanup(func() { client.Del(context.Background(), prefix+"k") })

	data, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, s.Save(ctx, "k", []byte(`{"v":1}`)))
	data, err = s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(data))
}

// The engine service persists through sqlite and logs through event_log.
func TestServiceOverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	defer db.Close()

	clock := engine.NewFakeClock(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC))
	rules := engine.DefaultRules()
	rules.Location = time.UTC
	store := NewSQLiteStore(db)
	events := NewEventRepo(db)

	svc := engine.NewService(store, events, engine.WithClock(clock), engine.WithRules(rules))
	require.NoError(t, svc.Load(ctx))
	p, _, err := svc.CreatePath(ctx, "meditation")
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)

	reopened := engine.NewService(store, nil, engine.WithClock(clock), engine.WithRules(rules))
	require.NoError(t, reopened.Load(ctx))
	snap := reopened.Snapshot()
	require.Len(t, snap.Paths, 1)
	assert.Equal(t, 2, snap.UserStats.Attributes[engine.AttributeSpiritual])

	recent, err := events.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, string(engine.EventTaskCompleted), recent[0].Kind)

	revs, err := store.Revisions(ctx, engine.DefaultSnapshotKey, 0)
	require.NoError(t, err)
	assert.Len(t, revs, 2)
}
