package signal

import "fmt"

// Cond is a per-channel match condition. The zero value ignores the
// channel entirely, so a Pattern only constrains the channels it names.
type Cond uint8

const (
	// Any matches regardless of the channel's level or history.
	Any Cond = iota
	// Low matches when the channel level is low.
	Low
	// High matches when the channel level is high.
	High
	// Rising matches a low-to-high transition at this sample.
	Rising
	// Falling matches a high-to-low transition at this sample.
	Falling
	// Edge matches any transition at this sample.
	Edge
)

// String returns the condition name used in logs and test output.
func (c Cond) String() string {
	switch c {
	case Any:
		return "any"
	case Low:
		return "low"
	case High:
		return "high"
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	case Edge:
		return "edge"
	default:
		return fmt.Sprintf("cond(%d)", uint8(c))
	}
}

// Pattern is a pair of conditions, one per channel. A pattern matches a
// sample when both conditions hold for that sample.
type Pattern struct {
	Clock Cond
	Data  Cond
}

// String renders the pattern in a compact {sclk, sdata} form.
func (p Pattern) String() string {
	return fmt.Sprintf("{sclk:%s sdata:%s}", p.Clock, p.Data)
}

// MatchSet reports which patterns of a Wait call matched the returned
// sample. Several patterns may match the same sample; callers pick one
// outcome by testing indices in their own precedence order, index 0
// first.
type MatchSet uint16

// Has reports whether pattern i matched.
func (m MatchSet) Has(i int) bool { return m&(1<<uint(i)) != 0 }

// matches evaluates cond against the current (and previous) level of one
// channel. Edge conditions never match the very first sample of a stream
// because there is no previous level to compare against.
func (c Cond) matches(prev, cur bool, havePrev bool) bool {
	switch c {
	case Any:
		return true
	case Low:
		return !cur
	case High:
		return cur
	case Rising:
		return havePrev && !prev && cur
	case Falling:
		return havePrev && prev && !cur
	case Edge:
		return havePrev && prev != cur
	default:
		return false
	}
}
