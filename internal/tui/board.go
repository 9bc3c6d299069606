package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"limitless/internal/engine"
)

// RunBoard starts the interactive board. The scheduler (reset and decay)
// runs every tickInterval while the board is open.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer, tickInterval time.Duration) error {
	m := newBoardModel(ctx, svc, tickInterval)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
