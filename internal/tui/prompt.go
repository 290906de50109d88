package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Asker answers questions. Implemented by Terminal.
type Asker interface {
	Ask(q Question) (string, error)
}

// Terminal asks questions by running a Bubble Tea program per question.
type Terminal struct {
	In  io.Reader // nil: stdin
	Out io.Writer // nil: stdout
}

// Ask runs q until the user answers or cancels.
func (t Terminal) Ask(q Question) (string, error) {
	var opts []tea.ProgramOption
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}
	final, err := tea.NewProgram(NewModel(q), opts...).Run()
	if err != nil {
		return "", err
	}
	m := final.(Model)
	if m.Cancelled() {
		return "", ErrCancelled
	}
	return m.Answer(), nil
}
