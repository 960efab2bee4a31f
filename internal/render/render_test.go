package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/rffetap/internal/rffe"
)

func sampleAnnotation() rffe.Annotation {
	return rffe.Annotation{
		Start: 120,
		End:   168,
		Kind:  rffe.KindSlaveAddress,
		Labels: []string{
			"Slave Address[3:0]: 0A", "SA[3:0]: 0A", "0A",
		},
	}
}

func TestJSONL(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONL(&buf, 0)
	if err := r.Render(sampleAnnotation()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not one JSON line: %v", err)
	}
	if e.Start != 120 || e.End != 168 {
		t.Errorf("interval = %d..%d, want 120..168", e.Start, e.End)
	}
	if e.Kind != "SA" || e.Row != "command-data" {
		t.Errorf("kind/row = %q/%q, want SA/command-data", e.Kind, e.Row)
	}
	if e.Label != "Slave Address[3:0]: 0A" || e.Short != "0A" {
		t.Errorf("labels = %q/%q", e.Label, e.Short)
	}
	if e.StartTime != nil || e.EndTime != nil {
		t.Error("wall-clock columns present without a sampling rate")
	}
	if strings.Contains(buf.String(), "start_time") {
		t.Error("start_time key emitted without a sampling rate")
	}
}

func TestJSONLWallClock(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONL(&buf, 1_000_000)
	if err := r.Render(sampleAnnotation()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var e Event
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e.StartTime == nil || e.EndTime == nil {
		t.Fatal("wall-clock columns missing")
	}
	if *e.StartTime != 0.00012 {
		t.Errorf("start time = %v, want 0.00012", *e.StartTime)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf, 0)
	if err := r.Render(sampleAnnotation()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	line := buf.String()
	for _, want := range []string{"120", "168", "[command-data]", "SA", "Slave Address[3:0]: 0A"} {
		if !strings.Contains(line, want) {
			t.Errorf("text line %q missing %q", line, want)
		}
	}
}

func TestTextWallClock(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf, 1_000_000)
	if err := r.Render(sampleAnnotation()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "0.000120s") {
		t.Errorf("text line %q missing wall-clock column", buf.String())
	}
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	r := NewPretty(&buf, 0)
	if err := r.Render(sampleAnnotation()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Slave Address[3:0]: 0A") {
		t.Errorf("pretty line %q missing label", buf.String())
	}
}

func TestNewDispatch(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"text", false},
		{"jsonl", false},
		{"json", false},
		{"pretty", false},
		{"xml", true},
	}
	for _, tt := range tests {
		r, err := New(tt.format, &buf, 0)
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q) error = nil, want error", tt.format)
			}
			continue
		}
		if err != nil || r == nil {
			t.Errorf("New(%q) = %v, %v", tt.format, r, err)
		}
	}
}

type failingRenderer struct{ calls int }

func (f *failingRenderer) Render(rffe.Annotation) error {
	f.calls++
	return errors.New("pipe closed")
}

func TestSinkRetainsFirstError(t *testing.T) {
	fr := &failingRenderer{}
	sink := &Sink{R: fr}
	sink.Annotate(sampleAnnotation())
	sink.Annotate(sampleAnnotation())

	if sink.Err == nil {
		t.Fatal("sink error not retained")
	}
	if fr.calls != 1 {
		t.Errorf("renderer called %d times after failure, want 1", fr.calls)
	}
}
