package engine

import (
	"fmt"
	"time"
)

// CompleteResult is what one task completion did to its path.
type CompleteResult struct {
	Path   Path
	Reward Reward
	Events []Event
	// Completed is true when the task moved toward completion (daily toggle-on
	// or a weekly increment below the cap).
	Completed bool
}

// CompleteTask applies a completion to the task at position index.
//
// Daily tasks toggle: toggling on grants the task reward, toggling off clears
// the checkbox and grants nothing (previous rewards are kept). Weekly tasks
// count up to TimesPerWeek; further calls are no-ops with a zero reward.
// The input path is never modified.
func CompleteTask(path Path, index int, now time.Time, rules Rules) (CompleteResult, error) {
	if index < 0 || index >= len(path.Tasks) {
		return CompleteResult{}, &IndexError{Index: index, Len: len(path.Tasks)}
	}

	next := path.clone()
	task := next.Tasks[index]
	today := rules.today(now)

	var reward Reward
	completed := false

	switch task.Frequency {
	case FrequencyWeekly:
		count := next.WeeklyCounts[task.ID]
		if count < task.TimesPerWeek {
			next.WeeklyCounts[task.ID] = count + 1
			reward = rewardFor(task.TaskDefinition, next.Perk)
			completed = true
		}
	default:
		if next.dailyDone(task.ID) {
			kept := next.CompletedDaily[:0]
			for _, id := range next.CompletedDaily {
				if id != task.ID {
					kept = append(kept, id)
				}
			}
			next.CompletedDaily = kept
		} else {
			next.CompletedDaily = append(next.CompletedDaily, task.ID)
			reward = rewardFor(task.TaskDefinition, next.Perk)
			completed = true
		}
	}

	var events []Event
	if completed {
		events = append(events, Event{
			Kind:    EventTaskCompleted,
			Message: fmt.Sprintf("%s: %s (+%d XP)", next.Name, task.Name, reward.XP),
			Payload: map[string]any{"pathId": next.ID, "taskId": task.ID, "xp": reward.XP},
			At:      now,
		})
	}

	events = append(events, next.addExperience(reward.XP, now, rules)...)

	if completed {
		next.LastCompletionDate = today
		next.DecayBase = nil
		events = append(events, next.evaluateStreak(today, now, rules)...)
	}

	return CompleteResult{Path: next, Reward: reward, Events: events, Completed: completed}, nil
}

// CompleteTaskByID is CompleteTask addressed by stable task id.
func CompleteTaskByID(path Path, taskID string, now time.Time, rules Rules) (CompleteResult, error) {
	i := path.TaskIndex(taskID)
	if i < 0 {
		return CompleteResult{}, &IndexError{Index: -1, Len: len(path.Tasks), TaskID: taskID}
	}
	return CompleteTask(path, i, now, rules)
}

// addExperience grows path-local experience and re-derives level and title.
func (p *Path) addExperience(xp int, now time.Time, rules Rules) []Event {
	if xp <= 0 {
		return nil
	}
	p.TotalExperience += xp

	var events []Event
	prevLevel := p.Level
	p.Level = PathLevelForXP(p.TotalExperience)
	if p.Level > prevLevel {
		events = append(events, Event{
			Kind:    EventLevelUp,
			Message: fmt.Sprintf("%s reached level %d", p.Name, p.Level),
			Payload: map[string]any{"pathId": p.ID, "from": prevLevel, "to": p.Level},
			At:      now,
		})
	}

	title := TitleForLevel(p.Titles, p.Level, rules.TitleBandSize)
	if title != p.CurrentTitle {
		events = append(events, Event{
			Kind:    EventTitleUnlocked,
			Message: fmt.Sprintf("New title on %s: %s", p.Name, title),
			Payload: map[string]any{"pathId": p.ID, "from": p.CurrentTitle, "to": title},
			At:      now,
		})
		p.CurrentTitle = title
	}
	return events
}

// evaluateStreak counts today toward the streak once all tasks are satisfied.
// It is idempotent per day: StreakDate records the day already counted.
// CurrentStreak is the streak as of now. The stored Streak only resets at the
// next full completion, so a chain last extended before yesterday reads 0.
func (p Path) CurrentStreak(now time.Time, rules Rules) int {
	today := rules.today(now)
	if p.StreakDate == today || p.StreakDate == today.AddDays(-1) {
		return p.Streak
	}
	return 0
}

func (p *Path) evaluateStreak(today Day, now time.Time, rules Rules) []Event {
	if !p.AllDone() || p.StreakDate == today {
		return nil
	}
	if p.StreakDate == today.AddDays(-1) && p.Streak > 0 {
		p.Streak++
	} else {
		p.Streak = 1
	}
	p.StreakDate = today

	every := rules.StreakMilestoneEvery
	if every <= 0 || p.Streak%every != 0 {
		return nil
	}
	return []Event{{
		Kind:    EventStreakMilestone,
		Message: fmt.Sprintf("%s: %d day streak!", p.Name, p.Streak),
		Payload: map[string]any{"pathId": p.ID, "streak": p.Streak},
		At:      now,
	}}
}
