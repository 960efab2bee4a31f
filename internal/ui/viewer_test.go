package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/rffetap/internal/rffe"
)

func testTranscript() []rffe.Annotation {
	return []rffe.Annotation{
		{Start: 0, End: 6, Kind: rffe.KindSSC},
		{Start: 7, End: 22, Kind: rffe.KindSlaveAddress,
			Labels: []string{"Slave Address[3:0]: 0A", "SA[3:0]: 0A", "0A"}},
		{Start: 30, End: 32, Kind: rffe.KindIllegalJumpEdge},
	}
}

func TestViewerContent(t *testing.T) {
	m := NewModel(testTranscript(), 0, "bus.csv")

	content := m.content()
	for _, want := range []string{"Slave Address[3:0]: 0A", "SSC", "IJE"} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q", want)
		}
	}
	if lines := strings.Count(content, "\n"); lines != 3 {
		t.Errorf("content lines = %d, want 3", lines)
	}
}

func TestViewerWarningsFilter(t *testing.T) {
	m := NewModel(testTranscript(), 0, "bus.csv")
	m.warningsOnly = true

	content := m.content()
	if strings.Contains(content, "Slave Address") {
		t.Error("filtered content still has command-data rows")
	}
	if !strings.Contains(content, "IJE") {
		t.Error("filtered content lost the warning")
	}
	if m.warningCount() != 1 {
		t.Errorf("warningCount = %d, want 1", m.warningCount())
	}
}

func TestViewerEmptyFilterPlaceholder(t *testing.T) {
	m := NewModel([]rffe.Annotation{{Kind: rffe.KindSSC}}, 0, "bus.csv")
	m.warningsOnly = true
	if !strings.Contains(m.content(), "no annotations") {
		t.Error("empty filter should show a placeholder")
	}
}

func TestViewerWallClockInterval(t *testing.T) {
	m := NewModel(testTranscript(), 1_000_000, "bus.csv")
	if !strings.Contains(m.content(), "0.000007s") {
		t.Error("content missing wall-clock interval")
	}
}

func TestViewerUpdateFlow(t *testing.T) {
	m := NewModel(testTranscript(), 0, "bus.csv")

	if !strings.Contains(m.View(), "loading") {
		t.Error("pre-size view should show the loading placeholder")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	if !m.ready {
		t.Fatal("model not ready after window size")
	}
	view := m.View()
	if !strings.Contains(view, "bus.csv") || !strings.Contains(view, "3 annotations") {
		t.Errorf("header missing metadata:\n%s", view)
	}

	// Toggling the filter re-renders the viewport content.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	m = next.(Model)
	if !m.warningsOnly {
		t.Error("'w' did not enable the warnings filter")
	}
	if !strings.Contains(m.footerView(), "warnings") {
		t.Error("footer missing filter state")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if _, ok := next.(Model); !ok {
		t.Fatal("update changed model type")
	}
}
