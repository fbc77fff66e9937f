package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/onboard/internal/onboarding"
)

// ErrAborted is returned when the user quits before reaching the last step.
var ErrAborted = errors.New("onboarding aborted")

// Run drives w in a full-screen terminal program until the user closes the
// success page or aborts. Extra options are appended after the defaults.
func Run(ctx context.Context, w *onboarding.Wizard, opts ...tea.ProgramOption) error {
	m := NewModel(ctx, w)

	options := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, options...)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Aborted || !fm.Done {
		return ErrAborted
	}
	return nil
}
