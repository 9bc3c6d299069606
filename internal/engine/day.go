package engine

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date (YYYY-MM-DD) in the user's configured location.
// The zero value means "never".
type Day string

// DayOf returns the calendar date of t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.Local
	}
	return Day(t.In(loc).Format(dayLayout))
}

func ParseDay(s string) (Day, error) {
	if _, err := time.Parse(dayLayout, s); err != nil {
		return "", fmt.Errorf("invalid day %q: %w", s, err)
	}
	return Day(s), nil
}

func (d Day) IsZero() bool { return d == "" }

// utc returns midnight UTC of d. Day arithmetic is done on UTC midnights so
// DST transitions never produce 23 or 25 hour days.
func (d Day) utc() (time.Time, bool) {
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Day) Valid() bool {
	_, ok := d.utc()
	return ok
}

// AddDays returns d shifted by n calendar days. The zero Day stays zero.
func (d Day) AddDays(n int) Day {
	t, ok := d.utc()
	if !ok {
		return d
	}
	return Day(t.AddDate(0, 0, n).Format(dayLayout))
}

// DaysBetween returns the number of calendar days from a to b (b - a).
// Zero days yield 0.
func DaysBetween(a, b Day) int {
	ta, okA := a.utc()
	tb, okB := b.utc()
	if !okA || !okB {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// Before reports whether d is strictly earlier than o. The zero Day is
// earlier than every real day.
func (d Day) Before(o Day) bool {
	if d == "" {
		return o != ""
	}
	if o == "" {
		return false
	}
	return string(d) < string(o)
}

// WeekStart returns the date of the most recent weekStart weekday on or
// before t's calendar date in loc.
func WeekStart(t time.Time, loc *time.Location, weekStart time.Weekday) Day {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	offset := (int(local.Weekday()) - int(weekStart) + 7) % 7
	return DayOf(local, loc).AddDays(-offset)
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(input string) (time.Weekday, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", input)
}
