package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"limitless/internal/engine"
)

// Limitless theme (CLI + TUI).

const (
	IconPath    = "🧭"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconFire    = "🔥"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconDecay   = "🥀"
	IconLoop    = "🔁"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)
)

// rankColors runs from gray (E) to gold (SSS).
var rankColors = map[engine.Rank]lipgloss.Color{
	engine.RankE:   cMuted,
	engine.RankD:   lipgloss.Color("250"),
	engine.RankC:   cGood,
	engine.RankB:   cPrimary,
	engine.RankA:   lipgloss.Color("141"),
	engine.RankS:   cWarn,
	engine.RankSS:  cBad,
	engine.RankSSS: cGold,
}

var attributeIcons = map[engine.Attribute]string{
	engine.AttributeSpiritual:    "🕊️",
	engine.AttributeHealth:       "❤️",
	engine.AttributeIntelligence: "🧠",
	engine.AttributePhysical:     "💪",
	engine.AttributeCreativity:   "🎨",
	engine.AttributeResilience:   "🛡️",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RankText renders a rank label in its tier color.
func RankText(r engine.Rank) string {
	c, ok := rankColors[r]
	if !ok {
		c = cMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(string(r))
}

// AttributeLabel is the display name of an attribute, e.g. "Intelligence".
func AttributeLabel(a engine.Attribute) string {
	return cases.Title(language.English).String(string(a))
}

func AttributeIcon(a engine.Attribute) string {
	if icon, ok := attributeIcons[a]; ok {
		return icon
	}
	return "•"
}

// EventIcon picks a glyph for a notification kind.
func EventIcon(k engine.EventKind) string {
	switch k {
	case engine.EventRankUp, engine.EventAttributeRankUp:
		return IconTrophy
	case engine.EventLevelUp, engine.EventTitleUnlocked:
		return IconSparkle
	case engine.EventStreakMilestone:
		return IconFire
	case engine.EventTaskCompleted:
		return IconDone
	case engine.EventPathCreated:
		return IconPlus
	case engine.EventAttributeDecayed:
		return IconDecay
	default:
		return IconInfo
	}
}

// EventLine formats one event for terminal output.
func EventLine(e engine.Event) string {
	text := e.Message
	switch e.Kind {
	case engine.EventRankUp, engine.EventAttributeRankUp, engine.EventStreakMilestone:
		text = Gold.Render(text)
	case engine.EventLevelUp, engine.EventTitleUnlocked:
		text = Good.Render(text)
	case engine.EventAttributeDecayed:
		text = Warn.Render(text)
	}
	return EventIcon(e.Kind) + " " + text
}

// ProgressBar draws value/total as a fixed-width ASCII bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// TaskStatus renders "done", "2/3" or "todo" for a task in its period.
func TaskStatus(p engine.Path, i int) string {
	done, target := p.Progress(i)
	switch {
	case done >= target && target > 0:
		return Good.Render("done")
	case target > 1:
		return Warn.Render(fmt.Sprintf("%d/%d", done, target))
	default:
		return Muted.Render("todo")
	}
}
