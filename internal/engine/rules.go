package engine

import "time"

const (
	DefaultGraceDays            = 4
	DefaultDecayRateBasisPoints = 1000 // 10% per day past the grace period
	DefaultStreakMilestoneEvery = 7
)

// Rules holds the tunable parameters of the engine. The zero value is not
// usable; start from DefaultRules.
type Rules struct {
	Location  *time.Location
	WeekStart time.Weekday

	GraceDays            int
	DecayRateBasisPoints int

	TitleBandSize        int
	StreakMilestoneEvery int
}

func DefaultRules() Rules {
	return Rules{
		Location:             time.Local,
		WeekStart:            time.Sunday,
		GraceDays:            DefaultGraceDays,
		DecayRateBasisPoints: DefaultDecayRateBasisPoints,
		TitleBandSize:        DefaultTitleBandSize,
		StreakMilestoneEvery: DefaultStreakMilestoneEvery,
	}
}

func (r Rules) today(now time.Time) Day {
	return DayOf(now, r.Location)
}

func (r Rules) weekStart(now time.Time) Day {
	return WeekStart(now, r.Location, r.WeekStart)
}
