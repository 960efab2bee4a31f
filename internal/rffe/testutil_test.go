package rffe

import (
	"testing"

	"github.com/muurk/rffetap/internal/signal"
)

// waveform synthesizes a two-channel RFFE sample stream for tests. Bits
// are clocked as two high samples followed by two low samples, with data
// changing level on the rising edge, the timing the decoder expects of a
// conforming bus.
type waveform struct {
	samples []signal.Sample
	clk     bool
	data    bool
}

func newWaveform() *waveform {
	return &waveform{}
}

// pos returns the index the next sample will get.
func (w *waveform) pos() uint64 { return uint64(len(w.samples)) }

func (w *waveform) emit(clk, data bool, n int) {
	for i := 0; i < n; i++ {
		w.samples = append(w.samples, signal.Sample{
			Num:   uint64(len(w.samples)),
			Clock: clk,
			Data:  data,
		})
	}
	w.clk, w.data = clk, data
}

// idle holds both lines low.
func (w *waveform) idle(n int) { w.emit(false, false, n) }

// ssc drives the sequence start pulse: data high then low again, clock
// held low throughout.
func (w *waveform) ssc() {
	w.emit(false, true, 2)
	w.emit(false, false, 2)
}

// bit clocks one data bit: data takes its value on the rising edge.
func (w *waveform) bit(b bool) {
	w.emit(true, b, 2)
	w.emit(false, b, 2)
}

// bits clocks a bit string such as "1010", MSB first.
func (w *waveform) bits(s string) {
	for _, c := range s {
		w.bit(c == '1')
	}
}

// glitch toggles the data line during the clock-low phase, the illegal
// jump edge the decoder must flag without disturbing field boundaries.
func (w *waveform) glitch() {
	w.emit(false, !w.data, 1)
	w.emit(false, !w.data, 1)
}

// busPark clocks the park cycle (data driven low) and leaves the bus
// idle.
func (w *waveform) busPark() {
	w.emit(true, false, 2)
	w.emit(false, false, 2)
}

func (w *waveform) source() *signal.SliceSource {
	return signal.NewSliceSource(w.samples)
}

// decode runs a fresh decoder over the waveform and returns its
// annotations along with the final transaction context.
func decode(t *testing.T, w *waveform, opts Options) ([]Annotation, Transaction) {
	t.Helper()
	var sink Collector
	dec, err := New(w.source(), &sink, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	dec.Run()
	return sink.Annotations, dec.Transaction()
}

// kindsOf extracts the kind sequence for order assertions.
func kindsOf(annotations []Annotation) []Kind {
	kinds := make([]Kind, len(annotations))
	for i, a := range annotations {
		kinds[i] = a.Kind
	}
	return kinds
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// countKind counts annotations of one kind.
func countKind(annotations []Annotation, kind Kind) int {
	n := 0
	for _, a := range annotations {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// firstOf returns the first annotation of the given kind.
func firstOf(t *testing.T, annotations []Annotation, kind Kind) Annotation {
	t.Helper()
	for _, a := range annotations {
		if a.Kind == kind {
			return a
		}
	}
	t.Fatalf("no %v annotation in %v", kind, kindsOf(annotations))
	return Annotation{}
}
