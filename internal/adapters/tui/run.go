package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedModel = errors.New("unexpected final bubbletea model type")

// Run shows the interactive screen until the user quits or ctx ends.
func Run(ctx context.Context, c Client, opts Options, programOpts ...tea.ProgramOption) error {
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, programOpts...)
	p := tea.NewProgram(New(c, opts), programOpts...)

	unbind, err := Bind(p, c)
	if err != nil {
		return fmt.Errorf("bind session: %w", err)
	}
	defer unbind()

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run screen: %w", err)
	}
	if _, ok := final.(Model); !ok {
		return ErrUnexpectedModel
	}

	return nil
}
