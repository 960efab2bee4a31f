package render

import (
	"encoding/json"
	"io"

	"github.com/muurk/rffetap/internal/rffe"
)

// JSONL emits one JSON object per annotation per line.
type JSONL struct {
	enc        *json.Encoder
	sampleRate uint64
}

// NewJSONL creates a JSON Lines renderer. sampleRate 0 omits the
// wall-clock columns.
func NewJSONL(w io.Writer, sampleRate uint64) *JSONL {
	return &JSONL{enc: json.NewEncoder(w), sampleRate: sampleRate}
}

// Render implements Renderer.
func (j *JSONL) Render(a rffe.Annotation) error {
	return j.enc.Encode(NewEvent(a, j.sampleRate))
}
