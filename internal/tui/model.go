package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"limitless/internal/engine"
	"limitless/internal/ui"
)

type boardModel struct {
	ctx      context.Context
	svc      *engine.Service
	interval time.Duration

	width  int
	height int

	snap   engine.Snapshot
	loaded bool

	collapsed map[string]bool
	selected  int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	snap engine.Snapshot
	err  error
}

type completedMsg struct {
	res engine.CompleteResult
	err error
}

type tickMsg time.Time

type tickedMsg struct {
	events []engine.Event
	err    error
}

func newBoardModel(ctx context.Context, svc *engine.Service, interval time.Duration) boardModel {
	if interval <= 0 {
		interval = time.Minute
	}
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		interval:  interval,
		collapsed: map[string]bool{},
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.scheduleTick())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{snap: m.svc.Snapshot()}
	}
}

// reloadCmd re-reads the store, picking up writes from other lp processes.
func (m boardModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.svc.Load(m.ctx)
		return loadedMsg{snap: m.svc.Snapshot(), err: err}
	}
}

func (m boardModel) completeCmd(pathID, taskID string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTaskByID(m.ctx, pathID, taskID)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) tickCmd() tea.Cmd {
	return func() tea.Msg {
		events, err := m.svc.Tick(m.ctx)
		return tickedMsg{events: events, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.snap = msg.snap
		m.loaded = true
		if msg.err != nil {
			m.lastLog = "Load: " + msg.err.Error()
			return m, nil
		}
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", m.svc.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeCompletion(msg.res)
		return m, m.loadCmd()
	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.scheduleTick())
	case tickedMsg:
		if msg.err != nil {
			m.lastLog = "Tick failed: " + msg.err.Error()
			return m, nil
		}
		if len(msg.events) > 0 {
			m.lastLog = msg.events[len(msg.events)-1].Message
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.reloadCmd()
		case "t":
			m.lastLog = "Running scheduler…"
			return m, m.tickCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			row, ok := m.selectedRow()
			if ok && row.task < 0 {
				m.collapsed[row.pathID] = !m.collapsed[row.pathID]
				m.clampSelection()
			}
			return m, nil
		case "c", " ":
			row, ok := m.selectedRow()
			if !ok {
				return m, nil
			}
			if row.task < 0 {
				m.lastLog = "Select a task to complete."
				return m, nil
			}
			p := m.snap.Paths[row.path]
			m.lastLog = fmt.Sprintf("Completing %s…", p.Tasks[row.task].Name)
			return m, m.completeCmd(p.ID, p.Tasks[row.task].ID)
		}
	}
	return m, nil
}

func describeCompletion(res engine.CompleteResult) string {
	if len(res.Events) > 0 {
		last := res.Events[len(res.Events)-1]
		if last.Kind != engine.EventTaskCompleted {
			return last.Message
		}
	}
	switch {
	case res.Completed:
		return fmt.Sprintf("+%d XP on %s", res.Reward.XP, res.Path.Name)
	case res.Reward.IsZero():
		return "Nothing granted (unchecked or weekly target already met)."
	default:
		return "Updated."
	}
}

// row is one board line: a path header (task == -1) or one of its tasks.
type row struct {
	path   int
	task   int
	pathID string
}

func (m boardModel) rows() []row {
	var out []row
	for pi, p := range m.snap.Paths {
		out = append(out, row{path: pi, task: -1, pathID: p.ID})
		if m.collapsed[p.ID] {
			continue
		}
		for ti := range p.Tasks {
			out = append(out, row{path: pi, task: ti, pathID: p.ID})
		}
	}
	return out
}

func (m boardModel) selectedRow() (row, bool) {
	rows := m.rows()
	if m.selected < 0 || m.selected >= len(rows) {
		return row{}, false
	}
	return rows[m.selected], true
}

func (m *boardModel) clampSelection() {
	n := len(m.rows())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	n := len(linesLeft)
	if len(linesRight) > n {
		n = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < n; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if !m.loaded {
		return "Limitless | loading…"
	}
	u := m.snap.UserStats
	next := engine.NextRank(u.OverallRank)
	cur, _ := engine.OverallRanks.Threshold(u.OverallRank)
	nextTier, _ := engine.OverallRanks.Threshold(next)
	bar := ui.ProgressBar(u.Experience-cur.MinValue, nextTier.MinValue-cur.MinValue, 30)
	if u.OverallRank == engine.RankSSS {
		bar = ui.ProgressBar(1, 1, 30)
	}
	return fmt.Sprintf("Limitless | Rank %s | XP %d %s", ui.RankText(u.OverallRank), u.Experience, bar)
}

func (m boardModel) renderSidebar() string {
	if !m.loaded {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Attributes"}
	for _, a := range engine.AllAttributes {
		lines = append(lines, renderAttr(a, m.snap.UserStats.Attributes[a]))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter: fold path")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- t: run scheduler")
	lines = append(lines, "- r: reload")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Paths"}
	rows := m.rows()
	if len(rows) == 0 {
		out = append(out, "(no paths yet: lp new <template>)")
		return strings.Join(out, "\n")
	}
	for i, r := range rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		p := m.snap.Paths[r.path]
		var line string
		if r.task < 0 {
			fold := "▾ "
			if m.collapsed[p.ID] {
				fold = "▸ "
			}
			line = fmt.Sprintf("%s%s%s %s · L%d %s · %s %d", cursor, fold, p.Icon, p.Name, p.Level, p.CurrentTitle, ui.IconFire, p.CurrentStreak(m.svc.Now(), m.svc.Rules()))
		} else {
			t := p.Tasks[r.task]
			line = fmt.Sprintf("%s    %s %s (+%d XP, %s)", cursor, ui.TaskStatus(p, r.task), t.Name, t.XPReward, t.Frequency)
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func renderAttr(a engine.Attribute, value int) string {
	r := engine.AttributeRanks.RankFor(value)
	cur, _ := engine.AttributeRanks.Threshold(r)
	next, _ := engine.AttributeRanks.Threshold(engine.NextRank(r))
	bar := ui.ProgressBar(value-cur.MinValue, next.MinValue-cur.MinValue, 10)
	if r == engine.RankSSS {
		bar = ui.ProgressBar(1, 1, 10)
	}
	return fmt.Sprintf("- %-12s %3s %s", ui.AttributeLabel(a), r, bar)
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
