package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// Run shows the tree view until the user quits or ctx is done
func Run(ctx context.Context, model Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && err != tea.ErrProgramKilled {
		return errors.Wrap(err, "run tree view")
	}
	return nil
}
