package render

import (
	"fmt"
	"io"

	"github.com/muurk/rffetap/internal/rffe"
)

// Text emits a fixed-column transcript, one annotation per line:
//
//	samples 120..168   [command-data] SA    Slave Address[3:0]: 0A
type Text struct {
	w          io.Writer
	sampleRate uint64
}

// NewText creates a plain-text renderer.
func NewText(w io.Writer, sampleRate uint64) *Text {
	return &Text{w: w, sampleRate: sampleRate}
}

// Render implements Renderer.
func (t *Text) Render(a rffe.Annotation) error {
	var err error
	if t.sampleRate > 0 {
		start := float64(a.Start) / float64(t.sampleRate)
		end := float64(a.End) / float64(t.sampleRate)
		_, err = fmt.Fprintf(t.w, "%12.6fs %12.6fs [%s] %-8s %s\n",
			start, end, a.Kind.Row(), a.Kind, a.Label())
	} else {
		_, err = fmt.Fprintf(t.w, "%10d..%-10d [%s] %-8s %s\n",
			a.Start, a.End, a.Kind.Row(), a.Kind, a.Label())
	}
	return err
}
