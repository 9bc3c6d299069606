package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc   *Service
	store *memStore
	sink  *RecordingSink
	clock *FakeClock
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	f := serviceFixture{
		store: newMemStore(),
		sink:  &RecordingSink{},
		clock: NewFakeClock(t0),
	}
	f.svc = NewService(f.store, f.sink, WithClock(f.clock), WithRules(testRules()))
	require.NoError(t, f.svc.Load(context.Background()))
	return f
}

func TestServiceEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	p, events, err := f.svc.CreatePath(ctx, "study")
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventPathCreated}, eventKinds(events))
	assert.Equal(t, "Student", p.CurrentTitle)

	res, err := f.svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.True(t, res.Completed)

	snap := f.svc.Snapshot()
	assert.Equal(t, 10, snap.UserStats.Experience)
	assert.Equal(t, 2, snap.UserStats.Attributes[AttributeIntelligence])
	assert.Equal(t, 1, snap.UserStats.Statistics.TasksCompleted)
	assert.Equal(t, 1, snap.UserStats.Statistics.PathsCreated)
	assert.Equal(t, 10, snap.Paths[0].TotalExperience)
	assert.Equal(t, 2, f.store.saves)
	assert.Equal(t, []EventKind{EventPathCreated, EventTaskCompleted}, eventKinds(f.sink.Events))
	assertRankDerived(t, f)

	// A second service over the same store sees the persisted state.
	other := NewService(f.store, nil, WithClock(f.clock), WithRules(testRules()))
	require.NoError(t, other.Load(ctx))
	assert.Equal(t, snap, other.Snapshot())
}

func TestServiceSaveFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	p, _, err := f.svc.CreatePath(ctx, "study")
	require.NoError(t, err)
	before := f.svc.Snapshot()
	delivered := len(f.sink.Events)

	f.store.saveErr = errors.New("disk full")
	_, err = f.svc.CompleteTask(ctx, p.ID, 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
	_, _, err = f.svc.CreatePath(ctx, "gym")
	require.Error(t, err)
	_, _, err = f.svc.RemovePath(ctx, p.ID)
	require.Error(t, err)

	assert.Equal(t, before, f.svc.Snapshot())
	assert.Len(t, f.sink.Events, delivered)
}

func TestServiceLoadMalformedFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.store.data[DefaultSnapshotKey] = []byte(`{"version": 1, "userStats": 12}`)

	err := f.svc.Load(ctx)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.Empty(t, f.svc.Snapshot().Paths)
	assert.Equal(t, 0, f.svc.Snapshot().UserStats.Experience)

	_, _, err = f.svc.CreatePath(ctx, "meditation")
	require.NoError(t, err)
}

func TestServiceUnknownTemplateAndPath(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	_, _, err := f.svc.CreatePath(ctx, "juggling")
	assert.True(t, errors.Is(err, ErrUnknownTemplate))

	_, err = f.svc.CompleteTask(ctx, "1", 0)
	assert.True(t, errors.Is(err, ErrPathNotFound))

	p, _, err := f.svc.CreatePath(ctx, "gym")
	require.NoError(t, err)
	_, err = f.svc.CompleteTask(ctx, p.ID, 9)
	assert.True(t, errors.Is(err, ErrInvalidIndex))
	assert.Equal(t, 0, f.svc.Snapshot().UserStats.Experience)
}

func TestServiceResolvePath(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	a, _, err := f.svc.CreatePath(ctx, "gym")
	require.NoError(t, err)
	b, _, err := f.svc.CreatePath(ctx, "chess")
	require.NoError(t, err)

	got, err := f.svc.Path("2")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = f.svc.Path(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	byPrefix, err := ResolvePath(f.svc.Snapshot(), b.ID[:len(b.ID)-4])
	require.NoError(t, err)
	assert.Equal(t, b.ID, byPrefix.ID)

	_, err = f.svc.Path("3")
	assert.True(t, errors.Is(err, ErrPathNotFound))
	_, err = f.svc.Path("")
	assert.True(t, errors.Is(err, ErrPathNotFound))
}

func TestServiceRemovePathKeepsRewards(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	p, _, err := f.svc.CreatePath(ctx, "gym")
	require.NoError(t, err)
	_, err = f.svc.CompleteTask(ctx, p.ID, 1)
	require.NoError(t, err)

	removed, events, err := f.svc.RemovePath(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, removed.ID)
	assert.Equal(t, []EventKind{EventPathRemoved}, eventKinds(events))

	snap := f.svc.Snapshot()
	assert.Empty(t, snap.Paths)
	assert.Equal(t, 5, snap.UserStats.Experience)
	assert.Equal(t, 1, snap.UserStats.Statistics.PathsCreated)
}

func TestServiceCompleteResetsFirst(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	p, _, err := f.svc.CreatePath(ctx, "study")
	require.NoError(t, err)

	_, err = f.svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)

	// Next day the daily box is clear again, so this is a toggle-on.
	f.clock.AdvanceDays(1)
	res, err := f.svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 20, f.svc.Snapshot().UserStats.Experience)
}

func TestServiceTick(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	p, _, err := f.svc.CreateCustomPath(ctx, singleDaily())
	require.NoError(t, err)
	assert.Empty(t, p.TemplateKey)
	_, err = f.svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)

	events, err := f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
	saves := f.store.saves

	f.clock.AdvanceDays(1)
	_, err = f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, saves+1, f.store.saves)
	assert.Empty(t, f.svc.Snapshot().Paths[0].CompletedDaily)

	// Nothing left to reset on the same day.
	_, err = f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, saves+1, f.store.saves)
}

func TestServiceTickDecays(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	p, _, err := f.svc.CreateCustomPath(ctx, Template{
		Name:             "Heavy",
		Attributes:       []Attribute{AttributeHealth},
		PrimaryAttribute: AttributeHealth,
		Tasks: []TaskDefinition{
			{Name: "Big effort", Frequency: FrequencyDaily, XPReward: 10, AttributeRewards: map[Attribute]int{AttributeHealth: 50}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "⭐", p.Icon)
	_, err = f.svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)

	f.clock.AdvanceDays(6)
	events, err := f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventAttributeDecayed}, eventKinds(events))
	snap := f.svc.Snapshot()
	assert.Equal(t, 40, snap.UserStats.Attributes[AttributeHealth])
	assert.Equal(t, 10, snap.UserStats.Experience)
	assertRankDerived(t, f)

	events, err = f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 40, f.svc.Snapshot().UserStats.Attributes[AttributeHealth])

	f.clock.AdvanceDays(8)
	_, err = f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, f.svc.Snapshot().UserStats.Attributes[AttributeHealth])
	assertRankDerived(t, f)
}

// assertRankDerived checks the stored overall rank against the rank derived
// from experience and elapsed days, both in memory and in the store.
func assertRankDerived(t *testing.T, f serviceFixture) {
	t.Helper()
	now := f.clock.Now()
	snap := f.svc.Snapshot()
	want := OverallRanks.RankForElapsed(snap.UserStats.Experience, snap.UserStats.ElapsedDays(now))
	assert.Equal(t, want, snap.UserStats.OverallRank, "in memory")

	var stored Snapshot
	require.NoError(t, json.Unmarshal(f.store.data[DefaultSnapshotKey], &stored))
	assert.Equal(t, want, stored.UserStats.OverallRank, "persisted")
}

// gatedTemplate has one task worth enough xp for rank D, which unlocks on
// day 3.
func gatedTemplate(freq Frequency) Template {
	run := TaskDefinition{Name: "Run", Frequency: freq, XPReward: 300, AttributeRewards: map[Attribute]int{AttributePhysical: 1}}
	if freq == FrequencyWeekly {
		run.TimesPerWeek = 1
	}
	return Template{
		Name:             "Sprint",
		Attributes:       []Attribute{AttributePhysical},
		PrimaryAttribute: AttributePhysical,
		Tasks:            []TaskDefinition{run},
	}
}

func TestServiceTickCrossesRankGate(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	p, _, err := f.svc.CreateCustomPath(ctx, gatedTemplate(FrequencyDaily))
	require.NoError(t, err)
	_, err = f.svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Equal(t, RankE, f.svc.Snapshot().UserStats.OverallRank)
	assertRankDerived(t, f)

	f.clock.AdvanceDays(3)
	events, err := f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Contains(t, eventKinds(events), EventRankUp)
	assert.Equal(t, RankD, f.svc.Snapshot().UserStats.OverallRank)
	assertRankDerived(t, f)
}

func TestServiceTickPersistsRankOnlyChange(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	p, _, err := f.svc.CreateCustomPath(ctx, gatedTemplate(FrequencyDaily))
	require.NoError(t, err)

	// Complete late on day 2 and tick an hour after the day-3 gate, still on
	// the same calendar day: nothing resets or decays, only the rank moves.
	f.clock.Set(t0.Add(3*24*time.Hour - time.Hour))
	_, err = f.svc.CompleteTask(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Equal(t, RankE, f.svc.Snapshot().UserStats.OverallRank)
	saves := f.store.saves

	f.clock.Set(t0.Add(3*24*time.Hour + time.Hour))
	events, err := f.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventRankUp}, eventKinds(events))
	assert.Equal(t, saves+1, f.store.saves)
	assertRankDerived(t, f)
}

func TestServiceZeroRewardRefreshesRank(t *testing.T) {
	beforeGate := t0.Add(3*24*time.Hour - time.Hour)
	afterGate := t0.Add(3*24*time.Hour + time.Hour)

	t.Run("daily toggle off", func(t *testing.T) {
		ctx := context.Background()
		f := newServiceFixture(t)
		p, _, err := f.svc.CreateCustomPath(ctx, gatedTemplate(FrequencyDaily))
		require.NoError(t, err)

		f.clock.Set(beforeGate)
		res, err := f.svc.CompleteTask(ctx, p.ID, 0)
		require.NoError(t, err)
		require.True(t, res.Completed)
		require.Equal(t, RankE, f.svc.Snapshot().UserStats.OverallRank)

		f.clock.Set(afterGate)
		res, err = f.svc.CompleteTask(ctx, p.ID, 0)
		require.NoError(t, err)
		assert.False(t, res.Completed)
		assert.True(t, res.Reward.IsZero())
		assert.Contains(t, eventKinds(res.Events), EventRankUp)
		assert.Equal(t, RankD, f.svc.Snapshot().UserStats.OverallRank)
		assertRankDerived(t, f)
	})

	t.Run("capped weekly", func(t *testing.T) {
		ctx := context.Background()
		f := newServiceFixture(t)
		p, _, err := f.svc.CreateCustomPath(ctx, gatedTemplate(FrequencyWeekly))
		require.NoError(t, err)

		f.clock.Set(beforeGate)
		res, err := f.svc.CompleteTask(ctx, p.ID, 0)
		require.NoError(t, err)
		require.True(t, res.Completed)
		require.Equal(t, RankE, f.svc.Snapshot().UserStats.OverallRank)

		f.clock.Set(afterGate)
		res, err = f.svc.CompleteTask(ctx, p.ID, 0)
		require.NoError(t, err)
		assert.False(t, res.Completed)
		assert.Equal(t, 1, f.svc.Snapshot().Paths[0].WeeklyCounts[p.Tasks[0].ID])
		assert.Equal(t, RankD, f.svc.Snapshot().UserStats.OverallRank)
		assertRankDerived(t, f)
	})

	t.Run("path lifecycle", func(t *testing.T) {
		ctx := context.Background()
		f := newServiceFixture(t)
		p, _, err := f.svc.CreateCustomPath(ctx, gatedTemplate(FrequencyDaily))
		require.NoError(t, err)
		f.clock.Set(beforeGate)
		_, err = f.svc.CompleteTask(ctx, p.ID, 0)
		require.NoError(t, err)

		f.clock.Set(afterGate)
		_, _, err = f.svc.CreatePath(ctx, "study")
		require.NoError(t, err)
		assertRankDerived(t, f)

		f.clock.AdvanceDays(5)
		_, _, err = f.svc.RemovePath(ctx, "1")
		require.NoError(t, err)
		assertRankDerived(t, f)
	})
}
