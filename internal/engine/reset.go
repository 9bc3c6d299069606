package engine

import "time"

// Tick clears daily completions when the calendar day changed and weekly
// counters when the week changed. The two resets are independent. Calling it
// again with the same now is a no-op; the second return value reports
// whether anything was reset.
func Tick(path Path, now time.Time, rules Rules) (Path, bool) {
	today := rules.today(now)
	week := rules.weekStart(now)

	if path.LastResetDate == today && path.WeekStartDate == week {
		return path, false
	}

	next := path.clone()
	if next.LastResetDate != today {
		next.CompletedDaily = []string{}
		next.LastResetDate = today
	}
	if next.WeekStartDate != week {
		next.WeeklyCounts = map[string]int{}
		next.WeekStartDate = week
	}
	return next, true
}
