package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muurk/rffetap/internal/rffe"
)

// Event is the externally visible form of one annotation, shared by the
// JSON renderer and the WebSocket stream.
type Event struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
	Kind  string `json:"kind"`
	Row   string `json:"row"`
	Label string `json:"label"`
	Short string `json:"short"`
	// StartTime/EndTime are seconds from capture start, present only
	// when the sampling rate is known.
	StartTime *float64 `json:"start_time,omitempty"`
	EndTime   *float64 `json:"end_time,omitempty"`
}

// NewEvent converts an annotation, attaching wall-clock columns when
// sampleRate is non-zero.
func NewEvent(a rffe.Annotation, sampleRate uint64) Event {
	e := Event{
		Start: a.Start,
		End:   a.End,
		Kind:  a.Kind.String(),
		Row:   a.Kind.Row().String(),
		Label: a.Label(),
		Short: a.ShortLabel(),
	}
	if sampleRate > 0 {
		start := float64(a.Start) / float64(sampleRate)
		end := float64(a.End) / float64(sampleRate)
		e.StartTime = &start
		e.EndTime = &end
	}
	return e
}

// Renderer writes annotations one at a time; it is fed directly from a
// decoder sink.
type Renderer interface {
	Render(a rffe.Annotation) error
}

// Sink adapts a Renderer to the decoder's sink interface, retaining the
// first write error.
type Sink struct {
	R   Renderer
	Err error
}

// Annotate implements rffe.Sink.
func (s *Sink) Annotate(a rffe.Annotation) {
	if s.Err != nil {
		return
	}
	s.Err = s.R.Render(a)
}

// New builds the renderer named by format: "jsonl", "text", or
// "pretty".
func New(format string, w io.Writer, sampleRate uint64) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewText(w, sampleRate), nil
	case "jsonl", "json":
		return NewJSONL(w, sampleRate), nil
	case "pretty":
		return NewPretty(w, sampleRate), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
