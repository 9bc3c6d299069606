package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskDefinition is the recurring unit of work inside a path.
type TaskDefinition struct {
	Name             string            `json:"name" yaml:"name"`
	Frequency        Frequency         `json:"frequency" yaml:"frequency"`
	TimesPerWeek     int               `json:"timesPerWeek,omitempty" yaml:"timesPerWeek,omitempty"`
	XPReward         int               `json:"xpReward" yaml:"xpReward"`
	AttributeRewards map[Attribute]int `json:"attributeRewards" yaml:"attributeRewards"`
}

// Target is how many completions satisfy the task in its period.
func (d TaskDefinition) Target() int {
	if d.Frequency == FrequencyWeekly {
		return d.TimesPerWeek
	}
	return 1
}

// Task is a TaskDefinition with a stable identity inside its path.
type Task struct {
	ID string `json:"id"`
	TaskDefinition
}

// Path is one user-declared habit track.
type Path struct {
	ID               string      `json:"id"`
	TemplateKey      string      `json:"templateKey,omitempty"`
	Name             string      `json:"name"`
	Icon             string      `json:"icon"`
	Color            string      `json:"color,omitempty"`
	Attributes       []Attribute `json:"attributes"`
	PrimaryAttribute Attribute   `json:"primaryAttribute"`
	Titles           []string    `json:"titles"`
	Perk             *Perk       `json:"perk,omitempty"`
	Tasks            []Task      `json:"tasks"`

	CompletedDaily []string       `json:"completedDaily"`
	WeeklyCounts   map[string]int `json:"weeklyCounts"`
	LastResetDate  Day            `json:"lastResetDate"`
	WeekStartDate  Day            `json:"weekStartDate"`

	Level              int    `json:"level"`
	TotalExperience    int    `json:"totalExperience"`
	Streak             int    `json:"streak"`
	StreakDate         Day    `json:"streakDate,omitempty"`
	CurrentTitle       string `json:"currentTitle"`
	LastCompletionDate Day    `json:"lastCompletionDate,omitempty"`
	LastDecayDate      Day    `json:"lastDecayDate,omitempty"`

	// DecayBase holds the attribute values at the start of the current
	// inactivity run; decay is measured against it.
	DecayBase map[Attribute]int `json:"decayBase,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewPath instantiates a template. Counters start at zero and both reset
// watermarks at the current day and week.
func NewPath(tpl Template, now time.Time, rules Rules) (Path, error) {
	if err := tpl.Validate(); err != nil {
		return Path{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Path{}, fmt.Errorf("path id: %w", err)
	}

	tasks := make([]Task, 0, len(tpl.Tasks))
	for _, def := range tpl.Tasks {
		tid, err := uuid.NewV7()
		if err != nil {
			return Path{}, fmt.Errorf("task id: %w", err)
		}
		tasks = append(tasks, Task{ID: tid.String(), TaskDefinition: cloneDefinition(def)})
	}

	p := Path{
		ID:               id.String(),
		TemplateKey:      tpl.Key,
		Name:             tpl.Name,
		Icon:             tpl.Icon,
		Color:            tpl.Color,
		Attributes:       append([]Attribute(nil), tpl.Attributes...),
		PrimaryAttribute: tpl.PrimaryAttribute,
		Titles:           append([]string(nil), tpl.Titles...),
		Tasks:            tasks,
		CompletedDaily:   []string{},
		WeeklyCounts:     map[string]int{},
		LastResetDate:    rules.today(now),
		WeekStartDate:    rules.weekStart(now),
		Level:            1,
		CreatedAt:        now,
	}
	if tpl.Perk != nil {
		perk := *tpl.Perk
		p.Perk = &perk
	}
	p.CurrentTitle = TitleForLevel(p.Titles, p.Level, rules.TitleBandSize)
	return p, nil
}

// TaskIndex returns the position of the task with the given id, or -1.
func (p Path) TaskIndex(taskID string) int {
	for i, t := range p.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// IsDone reports whether the task has met its target in the current period.
func (p Path) IsDone(i int) bool {
	if i < 0 || i >= len(p.Tasks) {
		return false
	}
	t := p.Tasks[i]
	if t.Frequency == FrequencyWeekly {
		return p.WeeklyCounts[t.ID] >= t.TimesPerWeek
	}
	return p.dailyDone(t.ID)
}

// Progress returns the completion count and target for task i.
func (p Path) Progress(i int) (done, target int) {
	if i < 0 || i >= len(p.Tasks) {
		return 0, 0
	}
	t := p.Tasks[i]
	if t.Frequency == FrequencyWeekly {
		return p.WeeklyCounts[t.ID], t.TimesPerWeek
	}
	if p.dailyDone(t.ID) {
		return 1, 1
	}
	return 0, 1
}

// AllDone reports whether every task in the path is satisfied.
func (p Path) AllDone() bool {
	if len(p.Tasks) == 0 {
		return false
	}
	for i := range p.Tasks {
		if !p.IsDone(i) {
			return false
		}
	}
	return true
}

func (p Path) dailyDone(taskID string) bool {
	for _, id := range p.CompletedDaily {
		if id == taskID {
			return true
		}
	}
	return false
}

func (p Path) clone() Path {
	out := p
	out.Attributes = append([]Attribute(nil), p.Attributes...)
	out.Titles = append([]string(nil), p.Titles...)
	out.Tasks = make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		out.Tasks[i] = Task{ID: t.ID, TaskDefinition: cloneDefinition(t.TaskDefinition)}
	}
	out.CompletedDaily = append([]string{}, p.CompletedDaily...)
	out.WeeklyCounts = make(map[string]int, len(p.WeeklyCounts))
	for k, v := range p.WeeklyCounts {
		out.WeeklyCounts[k] = v
	}
	if p.Perk != nil {
		perk := *p.Perk
		out.Perk = &perk
	}
	if p.DecayBase != nil {
		out.DecayBase = make(map[Attribute]int, len(p.DecayBase))
		for a, v := range p.DecayBase {
			out.DecayBase[a] = v
		}
	}
	return out
}

func cloneDefinition(d TaskDefinition) TaskDefinition {
	out := d
	out.AttributeRewards = make(map[Attribute]int, len(d.AttributeRewards))
	for k, v := range d.AttributeRewards {
		out.AttributeRewards[k] = v
	}
	return out
}
