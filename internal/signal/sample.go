package signal

// Channel indices on the RFFE bus.
const (
	ChannelClock = 0 // SCLK
	ChannelData  = 1 // SDATA
)

// Sample is one synchronous observation of both bus lines.
type Sample struct {
	// Num is the sample index. Sources must produce strictly increasing
	// indices; the decoder only ever compares consecutive samples.
	Num uint64
	// Clock is the SCLK level.
	Clock bool
	// Data is the SDATA level.
	Data bool
}

// Level returns the level of the given channel.
func (s Sample) Level(channel int) bool {
	if channel == ChannelClock {
		return s.Clock
	}
	return s.Data
}

// Source is a sequential supplier of samples. Next returns false when the
// stream is exhausted; a Source is never restarted.
type Source interface {
	Next() (Sample, bool)
}

// SliceSource replays an in-memory sample slice. It is used by tests and
// by the serve command when replaying a fully loaded capture.
type SliceSource struct {
	samples []Sample
	pos     int
}

// NewSliceSource returns a Source over the given samples.
func NewSliceSource(samples []Sample) *SliceSource {
	return &SliceSource{samples: samples}
}

// Next implements Source.
func (s *SliceSource) Next() (Sample, bool) {
	if s.pos >= len(s.samples) {
		return Sample{}, false
	}
	sample := s.samples[s.pos]
	s.pos++
	return sample, true
}

// Len returns the total number of samples in the source.
func (s *SliceSource) Len() int { return len(s.samples) }
