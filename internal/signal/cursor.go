package signal

// Cursor walks a Source one sample at a time and keeps the previous
// sample's levels so edge conditions can be evaluated. Once a sample has
// been consumed by Wait it cannot be re-examined.
type Cursor struct {
	src      Source
	prev     Sample
	havePrev bool
}

// NewCursor returns a cursor over src positioned before the first sample.
func NewCursor(src Source) *Cursor {
	return &Cursor{src: src}
}

// Wait advances the stream until at least one pattern matches the current
// sample. It returns the set of matched pattern indices and the matching
// sample. ok is false when the source ran out before any pattern matched;
// the decoder treats that as end of capture.
func (c *Cursor) Wait(patterns ...Pattern) (MatchSet, Sample, bool) {
	for {
		cur, ok := c.src.Next()
		if !ok {
			return 0, Sample{}, false
		}

		var matched MatchSet
		for i, p := range patterns {
			clockOK := p.Clock.matches(c.prev.Clock, cur.Clock, c.havePrev)
			dataOK := p.Data.matches(c.prev.Data, cur.Data, c.havePrev)
			if clockOK && dataOK {
				matched |= 1 << uint(i)
			}
		}

		c.prev = cur
		c.havePrev = true

		if matched != 0 {
			return matched, cur, true
		}
	}
}
