package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"limitless/internal/logging"
)

// DefaultSnapshotKey is the key the whole state is stored under.
const DefaultSnapshotKey = "limitless_state"

// SnapshotStore is the durable blob store behind the engine. Load returns
// (nil, nil) when nothing has been stored yet.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Service owns the (UserStats, Paths) aggregate. Each mutating call computes
// a complete new snapshot, persists it, then swaps it in and notifies the
// sink; a failed save leaves the current state untouched.
type Service struct {
	mu sync.Mutex

	store   SnapshotStore
	sink    NotificationSink
	clock   Clock
	rules   Rules
	catalog Catalog
	log     *slog.Logger
	key     string

	state Snapshot
}

type Option func(*Service)

func WithClock(c Clock) Option          { return func(s *Service) { s.clock = c } }
func WithRules(r Rules) Option          { return func(s *Service) { s.rules = r } }
func WithCatalog(c Catalog) Option      { return func(s *Service) { s.catalog = c } }
func WithLogger(l *slog.Logger) Option  { return func(s *Service) { s.log = l } }
func WithSnapshotKey(key string) Option { return func(s *Service) { s.key = key } }

func NewService(store SnapshotStore, sink NotificationSink, opts ...Option) *Service {
	s := &Service{
		store:   store,
		sink:    sink,
		clock:   RealClock{},
		rules:   DefaultRules(),
		catalog: DefaultCatalog(),
		key:     DefaultSnapshotKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = NopSink{}
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.rules.Location == nil {
		s.rules.Location = DefaultRules().Location
	}
	s.state = NewSnapshot(s.clock.Now())
	return s
}

func (s *Service) Catalog() Catalog { return s.catalog }
func (s *Service) Rules() Rules     { return s.rules }
func (s *Service) Now() time.Time   { return s.clock.Now() }

// Load reads the persisted snapshot. With nothing stored the service keeps
// the empty default. A malformed snapshot is replaced by the empty default
// and reported as *MalformedSnapshotError; the service stays usable.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	data, err := s.store.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if data == nil {
		s.log.Debug("no snapshot stored, starting fresh", "key", s.key)
		s.state = NewSnapshot(now)
		return nil
	}

	snap, err := DecodeSnapshot(data, now, s.rules)
	if err != nil {
		s.log.Warn("snapshot rejected, falling back to empty state", "key", s.key, "err", err)
		s.state = NewSnapshot(now)
		return err
	}
	s.state = snap
	s.log.Debug("snapshot loaded", "key", s.key, "paths", len(snap.Paths))
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Path resolves ref (see ResolvePath) against the current state.
func (s *Service) Path(ref string) (Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := resolvePath(s.state, ref)
	if err != nil {
		return Path{}, err
	}
	return s.state.Paths[i].clone(), nil
}

// CreatePath instantiates the catalog template with the given key.
func (s *Service) CreatePath(ctx context.Context, templateKey string) (Path, []Event, error) {
	tpl, err := s.catalog.Lookup(templateKey)
	if err != nil {
		return Path{}, nil, err
	}
	return s.createPath(ctx, tpl)
}

// CreateCustomPath instantiates an inline definition.
func (s *Service) CreateCustomPath(ctx context.Context, tpl Template) (Path, []Event, error) {
	tpl = WithCustomDefaults(tpl)
	tpl.Key = ""
	return s.createPath(ctx, tpl)
}

func (s *Service) createPath(ctx context.Context, tpl Template) (Path, []Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	p, err := NewPath(tpl, now, s.rules)
	if err != nil {
		return Path{}, nil, err
	}

	next := s.state.clone()
	next.Paths = append(next.Paths, p)
	next.UserStats.Statistics.PathsCreated++
	events := []Event{{
		Kind:    EventPathCreated,
		Message: fmt.Sprintf("New path started: %s %s", p.Icon, p.Name),
		Payload: map[string]any{"pathId": p.ID, "template": tpl.Key},
		At:      now,
	}}
	var rankEvents []Event
	next.UserStats, rankEvents = RefreshRank(next.UserStats, now)
	events = append(events, rankEvents...)

	if err := s.commit(ctx, next, events); err != nil {
		return Path{}, nil, err
	}
	s.log.Info("path created", "path", p.ID, "template", tpl.Key)
	return p.clone(), events, nil
}

// CompleteTask completes the task at zero-based position index in the
// referenced path. The path's reset watermarks are brought up to date first.
func (s *Service) CompleteTask(ctx context.Context, pathRef string, index int) (CompleteResult, error) {
	return s.complete(ctx, pathRef, func(p Path, rules Rules, now time.Time) (CompleteResult, error) {
		return CompleteTask(p, index, now, rules)
	})
}

// CompleteTaskByID is CompleteTask addressed by stable task id.
func (s *Service) CompleteTaskByID(ctx context.Context, pathRef, taskID string) (CompleteResult, error) {
	return s.complete(ctx, pathRef, func(p Path, rules Rules, now time.Time) (CompleteResult, error) {
		return CompleteTaskByID(p, taskID, now, rules)
	})
}

func (s *Service) complete(ctx context.Context, pathRef string, fn func(Path, Rules, time.Time) (CompleteResult, error)) (CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := resolvePath(s.state, pathRef)
	if err != nil {
		return CompleteResult{}, err
	}
	now := s.clock.Now()

	path, _ := Tick(s.state.Paths[i], now, s.rules)
	res, err := fn(path, s.rules, now)
	if err != nil {
		return CompleteResult{}, err
	}

	next := s.state.clone()
	next.Paths[i] = res.Path
	stats, rankEvents := ApplyReward(next.UserStats, res.Reward, now)
	stats, gated := RefreshRank(stats, now)
	rankEvents = append(rankEvents, gated...)
	if res.Path.Streak > stats.Statistics.LongestStreak {
		stats.Statistics.LongestStreak = res.Path.Streak
	}
	next.UserStats = stats
	res.Events = append(res.Events, rankEvents...)

	if err := s.commit(ctx, next, res.Events); err != nil {
		return CompleteResult{}, err
	}
	s.log.Debug("task toggled", "path", res.Path.ID, "completed", res.Completed, "xp", res.Reward.XP)
	res.Path = res.Path.clone()
	return res, nil
}

// RemovePath deletes a path. Rewards already granted stay with the user.
func (s *Service) RemovePath(ctx context.Context, pathRef string) (Path, []Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := resolvePath(s.state, pathRef)
	if err != nil {
		return Path{}, nil, err
	}
	now := s.clock.Now()
	removed := s.state.Paths[i].clone()

	next := s.state.clone()
	next.Paths = append(next.Paths[:i], next.Paths[i+1:]...)
	events := []Event{{
		Kind:    EventPathRemoved,
		Message: fmt.Sprintf("Path removed: %s", removed.Name),
		Payload: map[string]any{"pathId": removed.ID},
		At:      now,
	}}
	var rankEvents []Event
	next.UserStats, rankEvents = RefreshRank(next.UserStats, now)
	events = append(events, rankEvents...)
	if err := s.commit(ctx, next, events); err != nil {
		return Path{}, nil, err
	}
	s.log.Info("path removed", "path", removed.ID)
	return removed, events, nil
}

// Tick runs the reset scheduler and the decay processor over every path and
// re-derives the overall rank, which may cross a day gate. Nothing is
// persisted when none of them changed anything.
func (s *Service) Tick(ctx context.Context) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	next := s.state.clone()
	changed := false
	var events []Event

	for i := range next.Paths {
		p, reset := Tick(next.Paths[i], now, s.rules)
		stats, decayed, evs := ApplyDecay(next.UserStats, p, now, s.rules)
		if reset || decayed.LastDecayDate != p.LastDecayDate {
			changed = true
		}
		next.Paths[i] = decayed
		next.UserStats = stats
		events = append(events, evs...)
	}
	prev := next.UserStats.OverallRank
	stats, rankEvents := RefreshRank(next.UserStats, now)
	if stats.OverallRank != prev {
		changed = true
	}
	next.UserStats = stats
	events = append(events, rankEvents...)
	if !changed {
		return nil, nil
	}
	if err := s.commit(ctx, next, events); err != nil {
		return nil, err
	}
	s.log.Debug("tick applied", "paths", len(next.Paths), "events", len(events))
	return events, nil
}

func (s *Service) commit(ctx context.Context, next Snapshot, events []Event) error {
	data, err := EncodeSnapshot(next)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.state = next
	if len(events) == 0 {
		return nil
	}
	if err := s.sink.Notify(ctx, events); err != nil {
		s.log.Warn("notification sink failed", "err", err)
	}
	return nil
}

// ResolvePath finds a path by full id, 1-based list position, or unique id
// prefix.
func ResolvePath(snap Snapshot, ref string) (Path, error) {
	i, err := resolvePath(snap, ref)
	if err != nil {
		return Path{}, err
	}
	return snap.Paths[i], nil
}

func resolvePath(snap Snapshot, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty reference", ErrPathNotFound)
	}
	if i := snap.PathIndex(ref); i >= 0 {
		return i, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(snap.Paths) {
			return n - 1, nil
		}
		return -1, fmt.Errorf("%w: no path #%d", ErrPathNotFound, n)
	}
	match := -1
	for i, p := range snap.Paths {
		if strings.HasPrefix(p.ID, ref) {
			if match >= 0 {
				return -1, fmt.Errorf("%w: %q is ambiguous", ErrPathNotFound, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %s", ErrPathNotFound, ref)
	}
	return match, nil
}

// IsMalformed reports whether err came from rejecting a stored snapshot.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedSnapshot)
}
