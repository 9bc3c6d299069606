package engine

import (
	"fmt"
	"time"
)

// Reward is the experience and attribute gain produced by one completion.
type Reward struct {
	XP         int               `json:"xp"`
	Attributes map[Attribute]int `json:"attributes,omitempty"`
}

func (r Reward) IsZero() bool {
	if r.XP > 0 {
		return false
	}
	for _, v := range r.Attributes {
		if v > 0 {
			return false
		}
	}
	return true
}

// Perk boosts one attribute's gains by a percentage, truncated toward zero.
type Perk struct {
	Attribute   Attribute `json:"attribute" yaml:"attribute"`
	Percent     int       `json:"percent" yaml:"percent"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// rewardFor builds the reward of one task completion, applying the path perk.
func rewardFor(def TaskDefinition, perk *Perk) Reward {
	r := Reward{XP: def.XPReward, Attributes: make(map[Attribute]int, len(def.AttributeRewards))}
	for a, amount := range def.AttributeRewards {
		if perk != nil && perk.Attribute == a {
			amount = applyPercentBonus(amount, perk.Percent)
		}
		r.Attributes[a] = amount
	}
	return r
}

// ApplyReward adds a reward to the user's stats and re-derives every rank.
// It never touches paths. A zero reward returns an unchanged copy.
func ApplyReward(stats UserStats, reward Reward, now time.Time) (UserStats, []Event) {
	next := stats.clone()
	if reward.IsZero() {
		return next, nil
	}

	prevOverall := stats.OverallRank
	if !prevOverall.IsValid() {
		prevOverall = OverallRanks.RankForElapsed(stats.Experience, stats.ElapsedDays(now))
	}
	prevAttr := make(map[Attribute]Rank, len(AllAttributes))
	for _, a := range AllAttributes {
		prevAttr[a] = AttributeRanks.RankFor(stats.Attributes[a])
	}

	if reward.XP > 0 {
		next.Experience += reward.XP
		next.Statistics.TotalXPGained += reward.XP
	}
	for _, a := range AllAttributes {
		if amount := reward.Attributes[a]; amount > 0 {
			next.Attributes[a] += amount
		}
	}
	next.Statistics.TasksCompleted++
	next.Recompute(now)

	var events []Event
	if prevOverall.Less(next.OverallRank) {
		events = append(events, rankUpEvent(prevOverall, next.OverallRank, now))
	}
	for _, a := range AllAttributes {
		before, after := prevAttr[a], next.AttributeRanks[a]
		if before.Less(after) {
			events = append(events, Event{
				Kind:    EventAttributeRankUp,
				Message: fmt.Sprintf("%s reached rank %s", a, after),
				Payload: map[string]any{"attribute": string(a), "from": string(before), "to": string(after)},
				At:      now,
			})
		}
	}
	return next, events
}

// RefreshRank re-derives every rank at now without granting anything. The
// overall rank is time-gated, so it can rise on a day that brings no reward.
func RefreshRank(stats UserStats, now time.Time) (UserStats, []Event) {
	next := stats.clone()
	prev := stats.OverallRank
	next.Recompute(now)
	if prev.IsValid() && prev.Less(next.OverallRank) {
		return next, []Event{rankUpEvent(prev, next.OverallRank, now)}
	}
	return next, nil
}

func rankUpEvent(from, to Rank, now time.Time) Event {
	return Event{
		Kind:    EventRankUp,
		Message: fmt.Sprintf("Rank up! You are now rank %s", to),
		Payload: map[string]any{"from": string(from), "to": string(to)},
		At:      now,
	}
}
