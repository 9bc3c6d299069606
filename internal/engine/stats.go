package engine

import "time"

type Statistics struct {
	TasksCompleted int `json:"tasksCompleted"`
	PathsCreated   int `json:"pathsCreated"`
	LongestStreak  int `json:"longestStreak"`
	TotalXPGained  int `json:"totalXPGained"`
}

// UserStats is the process-wide progression record. OverallRank and
// AttributeRanks are derived; Recompute rebuilds them from the values.
type UserStats struct {
	Experience     int                `json:"experience"`
	OverallRank    Rank               `json:"overallRank"`
	Attributes     map[Attribute]int  `json:"attributes"`
	AttributeRanks map[Attribute]Rank `json:"attributeRanks"`
	StartDate      time.Time          `json:"startDate"`
	Statistics     Statistics         `json:"statistics"`
}

func NewUserStats(now time.Time) UserStats {
	s := UserStats{
		Attributes:     make(map[Attribute]int, len(AllAttributes)),
		AttributeRanks: make(map[Attribute]Rank, len(AllAttributes)),
		StartDate:      now,
	}
	for _, a := range AllAttributes {
		s.Attributes[a] = 0
	}
	s.Recompute(now)
	return s
}

// ElapsedDays returns whole days since StartDate, never negative.
func (s UserStats) ElapsedDays(now time.Time) int {
	d := now.Sub(s.StartDate)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// Recompute derives every rank from scratch.
func (s *UserStats) Recompute(now time.Time) {
	s.OverallRank = OverallRanks.RankForElapsed(s.Experience, s.ElapsedDays(now))
	s.recomputeAttributeRanks()
}

func (s *UserStats) recomputeAttributeRanks() {
	ranks := make(map[Attribute]Rank, len(AllAttributes))
	for _, a := range AllAttributes {
		ranks[a] = AttributeRanks.RankFor(s.Attributes[a])
	}
	s.AttributeRanks = ranks
}

// XPToNextRank returns how much experience is missing for the next overall
// tier, ignoring its time gate. Zero at SSS.
func (s UserStats) XPToNextRank() int {
	if s.OverallRank == RankSSS {
		return 0
	}
	tier, ok := OverallRanks.Threshold(NextRank(s.OverallRank))
	if !ok {
		return 0
	}
	if missing := tier.MinValue - s.Experience; missing > 0 {
		return missing
	}
	return 0
}

func (s UserStats) clone() UserStats {
	out := s
	out.Attributes = make(map[Attribute]int, len(s.Attributes))
	for k, v := range s.Attributes {
		out.Attributes[k] = v
	}
	out.AttributeRanks = make(map[Attribute]Rank, len(s.AttributeRanks))
	for k, v := range s.AttributeRanks {
		out.AttributeRanks[k] = v
	}
	return out
}
