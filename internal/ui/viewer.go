package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/rffetap/internal/rffe"
)

// viewerKeyMap defines key bindings for the annotation viewer
type viewerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Warnings key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k viewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Warnings, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k viewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Warnings, k.Quit},
	}
}

func defaultKeyMap() viewerKeyMap {
	return viewerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Warnings: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warnings only"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the annotation viewer: a scrollable transcript with a
// warnings-only filter.
type Model struct {
	source      string
	sampleRate  uint64
	annotations []rffe.Annotation

	viewport     viewport.Model
	help         help.Model
	keys         viewerKeyMap
	warningsOnly bool
	ready        bool
}

// NewModel creates a viewer over a decoded transcript.
func NewModel(annotations []rffe.Annotation, sampleRate uint64, source string) Model {
	return Model{
		source:      source,
		sampleRate:  sampleRate,
		annotations: annotations,
		help:        help.New(),
		keys:        defaultKeyMap(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keys.Warnings):
			m.warningsOnly = !m.warningsOnly
			m.viewport.SetContent(m.content())
			m.viewport.GotoTop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "loading transcript..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

func (m Model) headerView() string {
	title := TitleStyle.Render("rffetap")
	info := fmt.Sprintf("  %s  %d annotations", m.source, len(m.annotations))
	if m.sampleRate > 0 {
		info += fmt.Sprintf("  %d Hz", m.sampleRate)
	}
	return title + HeaderInfoStyle.Render(info)
}

func (m Model) footerView() string {
	status := fmt.Sprintf("%d warnings", m.warningCount())
	if m.warningsOnly {
		status = FilterActiveStyle.Render("[warnings only] ") + status
	}
	return StatusStyle.Render(status) + "\n" + m.help.View(m.keys)
}

func (m Model) warningCount() int {
	n := 0
	for _, a := range m.annotations {
		if a.Kind.Row() == rffe.RowWarnings {
			n++
		}
	}
	return n
}

// content renders the transcript lines under the current filter.
func (m Model) content() string {
	var b strings.Builder
	for _, a := range m.annotations {
		if m.warningsOnly && a.Kind.Row() != rffe.RowWarnings {
			continue
		}
		b.WriteString(m.line(a))
		b.WriteByte('\n')
	}
	if b.Len() == 0 {
		return HeaderInfoStyle.Render("no annotations")
	}
	return b.String()
}

func (m Model) line(a rffe.Annotation) string {
	interval := fmt.Sprintf("%10d..%-10d", a.Start, a.End)
	if m.sampleRate > 0 {
		interval = fmt.Sprintf("%12.6fs", float64(a.Start)/float64(m.sampleRate))
	}
	return fmt.Sprintf("%s  %s %s",
		IntervalStyle.Render(interval),
		kindStyle(a.Kind).Render(fmt.Sprintf("%-8s", a.Kind)),
		FieldStyle.Render(a.Label()),
	)
}

// kindStyle picks the display style for one annotation kind.
func kindStyle(kind rffe.Kind) lipgloss.Style {
	if kind.Row() == rffe.RowWarnings {
		return WarningRowStyle
	}
	switch kind {
	case rffe.KindSSC, rffe.KindRW, rffe.KindRR, rffe.KindR0W,
		rffe.KindERW, rffe.KindERR, rffe.KindERWL, rffe.KindERRL:
		return CommandStyle
	case rffe.KindBusPark:
		return ParkStyle
	default:
		return FieldStyle
	}
}
