package engine

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is the current on-disk format version.
const SnapshotVersion = 1

// Snapshot is the whole persisted state: the user's stats plus every path.
type Snapshot struct {
	Version   int       `json:"version"`
	UserStats UserStats `json:"userStats"`
	Paths     []Path    `json:"paths"`
}

// NewSnapshot returns the documented empty state: fresh stats, no paths.
func NewSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Version:   SnapshotVersion,
		UserStats: NewUserStats(now),
		Paths:     []Path{},
	}
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a persisted snapshot. Derived fields
// (ranks, path levels and titles) are recomputed rather than trusted.
func DecodeSnapshot(data []byte, now time.Time, rules Rules) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, &MalformedSnapshotError{Reason: "decode", Err: err}
	}
	if err := s.validate(); err != nil {
		return Snapshot{}, err
	}
	s.normalize(now, rules)
	return s, nil
}

func (s Snapshot) validate() error {
	fail := func(format string, args ...any) error {
		return &MalformedSnapshotError{Reason: fmt.Sprintf(format, args...)}
	}

	if s.Version != SnapshotVersion {
		return fail("unsupported version %d", s.Version)
	}
	u := s.UserStats
	if u.StartDate.IsZero() {
		return fail("missing start date")
	}
	if u.Experience < 0 {
		return fail("negative experience")
	}
	for a, v := range u.Attributes {
		if !a.IsValid() {
			return fail("unknown attribute %q", a)
		}
		if v < 0 {
			return fail("negative %s", a)
		}
	}
	st := u.Statistics
	if st.TasksCompleted < 0 || st.PathsCreated < 0 || st.LongestStreak < 0 || st.TotalXPGained < 0 {
		return fail("negative statistics")
	}

	ids := make(map[string]bool, len(s.Paths))
	for i, p := range s.Paths {
		if p.ID == "" {
			return fail("path %d: missing id", i)
		}
		if ids[p.ID] {
			return fail("duplicate path id %s", p.ID)
		}
		ids[p.ID] = true
		if err := p.validate(); err != nil {
			return fail("path %s: %v", p.ID, err)
		}
	}
	return nil
}

func (p Path) validate() error {
	if err := p.template().Validate(); err != nil {
		return err
	}
	if p.TotalExperience < 0 || p.Streak < 0 {
		return fmt.Errorf("negative counters")
	}
	for _, d := range []Day{p.LastResetDate, p.WeekStartDate, p.StreakDate, p.LastCompletionDate, p.LastDecayDate} {
		if !d.IsZero() && !d.Valid() {
			return fmt.Errorf("invalid date %q", d)
		}
	}
	for a, v := range p.DecayBase {
		if !a.IsValid() || v < 0 {
			return fmt.Errorf("invalid decay base %s=%d", a, v)
		}
	}

	byID := make(map[string]TaskDefinition, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.ID == "" {
			return fmt.Errorf("task %q: missing id", t.Name)
		}
		if _, dup := byID[t.ID]; dup {
			return fmt.Errorf("duplicate task id %s", t.ID)
		}
		byID[t.ID] = t.TaskDefinition
	}
	for _, id := range p.CompletedDaily {
		d, ok := byID[id]
		if !ok || d.Frequency != FrequencyDaily {
			return fmt.Errorf("completed task %s is not a daily task", id)
		}
	}
	for id, n := range p.WeeklyCounts {
		d, ok := byID[id]
		if !ok || d.Frequency != FrequencyWeekly {
			return fmt.Errorf("counted task %s is not a weekly task", id)
		}
		if n < 0 || n > d.TimesPerWeek {
			return fmt.Errorf("task %s: count %d outside 0..%d", id, n, d.TimesPerWeek)
		}
	}
	return nil
}

// template reconstructs the definition part of a path for validation.
func (p Path) template() Template {
	defs := make([]TaskDefinition, len(p.Tasks))
	for i, t := range p.Tasks {
		defs[i] = t.TaskDefinition
	}
	return Template{
		Key:              p.TemplateKey,
		Name:             p.Name,
		Icon:             p.Icon,
		Color:            p.Color,
		Attributes:       p.Attributes,
		PrimaryAttribute: p.PrimaryAttribute,
		Titles:           p.Titles,
		Perk:             p.Perk,
		Tasks:            defs,
	}
}

func (s *Snapshot) normalize(now time.Time, rules Rules) {
	if s.UserStats.Attributes == nil {
		s.UserStats.Attributes = make(map[Attribute]int, len(AllAttributes))
	}
	for _, a := range AllAttributes {
		if _, ok := s.UserStats.Attributes[a]; !ok {
			s.UserStats.Attributes[a] = 0
		}
	}
	s.UserStats.Recompute(now)

	if s.Paths == nil {
		s.Paths = []Path{}
	}
	for i := range s.Paths {
		p := &s.Paths[i]
		if p.CompletedDaily == nil {
			p.CompletedDaily = []string{}
		}
		if p.WeeklyCounts == nil {
			p.WeeklyCounts = map[string]int{}
		}
		p.Level = PathLevelForXP(p.TotalExperience)
		p.CurrentTitle = TitleForLevel(p.Titles, p.Level, rules.TitleBandSize)
	}
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{Version: s.Version, UserStats: s.UserStats.clone()}
	out.Paths = make([]Path, len(s.Paths))
	for i, p := range s.Paths {
		out.Paths[i] = p.clone()
	}
	return out
}

// PathIndex returns the position of the path with the given id, or -1.
func (s Snapshot) PathIndex(id string) int {
	for i, p := range s.Paths {
		if p.ID == id {
			return i
		}
	}
	return -1
}
