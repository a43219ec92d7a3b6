package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// RunModel starts the Bubble Tea TUI around a stream widget host model.
// Width/height of 0 auto-detect the terminal size, falling back to 80x24.
// Extra ProgramOptions (e.g. custom IO) can be provided to mirror
// tea.NewProgram.
func RunModel(m *Model, width, height int, opts ...tea.ProgramOption) error {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	opts = append(opts, tea.WithWindowSize(width, height))

	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	return err
}
