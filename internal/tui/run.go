package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

// RunOptions control the program, not the session content.
type RunOptions struct {
	Inline bool // skip the alternate screen
	Input  io.Reader
	Output io.Writer
}

// Run starts the interactive session and blocks until the user quits.
// It returns the final model so callers can report on the session.
func Run(site *model.Site, opt Options, ro RunOptions) (Model, error) {
	m := New(site, opt)

	var popts []tea.ProgramOption
	if !ro.Inline {
		popts = append(popts, tea.WithAltScreen())
	}
	if ro.Input != nil {
		popts = append(popts, tea.WithInput(ro.Input))
	}
	if ro.Output != nil {
		popts = append(popts, tea.WithOutput(ro.Output))
	}

	p := tea.NewProgram(m, popts...)
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return m, nil
	}
	fm.log.Debug("session ended", "section", model.Nav()[fm.section].Anchor, "query", fm.query)
	return fm, nil
}
