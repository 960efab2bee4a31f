package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/rffetap/internal/rffe"
)

// Run opens the interactive viewer over a decoded transcript and blocks
// until the user quits.
func Run(annotations []rffe.Annotation, sampleRate uint64, source string) error {
	p := tea.NewProgram(
		NewModel(annotations, sampleRate, source),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}
