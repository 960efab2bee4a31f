package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/muurk/rffetap/internal/rffe"
)

// Color palette for the pretty transcript
var (
	intervalColor = lipgloss.Color("#626262") // gray - sample intervals
	commandColor  = lipgloss.Color("#7D56F4") // purple - command kinds
	fieldColor    = lipgloss.Color("#FFFFFF") // white - field labels
	warningColor  = lipgloss.Color("#FFA500") // orange - warning row
	parkColor     = lipgloss.Color("#43BF6D") // green - bus parks
)

var (
	intervalStyle = lipgloss.NewStyle().
			Foreground(intervalColor)

	commandStyle = lipgloss.NewStyle().
			Foreground(commandColor).
			Bold(true)

	fieldStyle = lipgloss.NewStyle().
			Foreground(fieldColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	parkStyle = lipgloss.NewStyle().
			Foreground(parkColor)
)

// Pretty emits a styled transcript for interactive terminals.
type Pretty struct {
	w          io.Writer
	sampleRate uint64
	width      int
}

// NewPretty creates a styled renderer sized to the terminal.
func NewPretty(w io.Writer, sampleRate uint64) *Pretty {
	return &Pretty{w: w, sampleRate: sampleRate, width: terminalWidth()}
}

// terminalWidth returns the stdout width with a floor for narrow or
// non-terminal outputs.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return 80
	}
	return width
}

// Render implements Renderer.
func (p *Pretty) Render(a rffe.Annotation) error {
	interval := fmt.Sprintf("%10d..%-10d", a.Start, a.End)
	if p.sampleRate > 0 {
		interval = fmt.Sprintf("%12.6fs", float64(a.Start)/float64(p.sampleRate))
	}

	label := a.Label()
	if avail := p.width - len(interval) - 12; avail > 8 && len(label) > avail {
		label = label[:avail-1] + "…"
	}

	line := fmt.Sprintf("%s  %s %s",
		intervalStyle.Render(interval),
		styleFor(a.Kind).Render(fmt.Sprintf("%-8s", a.Kind)),
		fieldStyle.Render(label),
	)
	_, err := fmt.Fprintln(p.w, line)
	return err
}

// styleFor picks the kind's display style: warnings stand out, command
// kinds and bus parks get their own colors, fields stay plain.
func styleFor(kind rffe.Kind) lipgloss.Style {
	if kind.Row() == rffe.RowWarnings {
		return warningStyle
	}
	switch kind {
	case rffe.KindSSC, rffe.KindRW, rffe.KindRR, rffe.KindR0W,
		rffe.KindERW, rffe.KindERR, rffe.KindERWL, rffe.KindERRL:
		return commandStyle
	case rffe.KindBusPark:
		return parkStyle
	default:
		return fieldStyle
	}
}
