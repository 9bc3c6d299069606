package engine

import (
	"fmt"
	"strings"
	"time"
)

// ApplyDecay lowers the user's attributes tied to an inactive path.
//
// Inactivity is measured from the path's last completion (or its creation day
// when it was never completed). After GraceDays, every path attribute drops
// linearly: with n extra days the value is floor(base * (1 - n*rate)), where
// base is the value when the run started, clamped at zero. LastDecayDate is a
// watermark: only the loss of days not yet applied is taken, so a long gap is
// caught up in one call and stepping day by day lands on the same value. The
// overall rank is left alone.
func ApplyDecay(stats UserStats, path Path, now time.Time, rules Rules) (UserStats, Path, []Event) {
	today := rules.today(now)
	anchor := path.LastCompletionDate
	if anchor.IsZero() {
		anchor = DayOf(path.CreatedAt, rules.Location)
	}
	graceEnd := anchor.AddDays(rules.GraceDays)
	extra := DaysBetween(graceEnd, today)
	if extra <= 0 {
		return stats, path, nil
	}
	applied := 0
	if graceEnd.Before(path.LastDecayDate) {
		applied = DaysBetween(graceEnd, path.LastDecayDate)
	}
	if extra <= applied {
		return stats, path, nil
	}

	nextStats := stats.clone()
	nextPath := path.clone()
	nextPath.LastDecayDate = today
	if applied == 0 || nextPath.DecayBase == nil {
		nextPath.DecayBase = map[Attribute]int{}
	}

	losses := map[string]any{}
	var parts []string
	seen := map[Attribute]bool{}
	for _, a := range path.Attributes {
		if seen[a] || !a.IsValid() {
			continue
		}
		seen[a] = true
		base, ok := nextPath.DecayBase[a]
		if !ok {
			base = nextStats.Attributes[a]
			nextPath.DecayBase[a] = base
		}
		loss := decayLoss(base, extra, rules.DecayRateBasisPoints) - decayLoss(base, applied, rules.DecayRateBasisPoints)
		before := nextStats.Attributes[a]
		after := max(before-loss, 0)
		if after == before {
			continue
		}
		nextStats.Attributes[a] = after
		losses[string(a)] = before - after
		parts = append(parts, fmt.Sprintf("%s -%d", a, before-after))
	}
	nextStats.recomputeAttributeRanks()

	if len(parts) == 0 {
		return nextStats, nextPath, nil
	}
	return nextStats, nextPath, []Event{{
		Kind:    EventAttributeDecayed,
		Message: fmt.Sprintf("%s inactive for %d days: %s", path.Name, DaysBetween(anchor, today), strings.Join(parts, ", ")),
		Payload: map[string]any{"pathId": path.ID, "days": extra - applied, "losses": losses},
		At:      now,
	}}
}

// decayLoss is the total loss of base after days extra days of inactivity.
func decayLoss(base, days, basisPoints int) int {
	if base <= 0 || days <= 0 || basisPoints <= 0 {
		return 0
	}
	if days*basisPoints >= 10000 {
		return base
	}
	return base - base*(10000-days*basisPoints)/10000
}
