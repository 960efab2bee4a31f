// Package signal provides the sample-level primitives the RFFE decoder is
// built on: a pull-based sample source, edge/level pattern matching over a
// two-channel stream, and an MSB-first bit accumulator.
//
// # Samples
//
// A Sample carries a monotonically increasing sample index and the boolean
// levels of the two bus channels (SCLK and SDATA). Sources produce samples
// one at a time; nothing in this package buffers or backtracks.
//
// # Pattern matching
//
// A Pattern describes a per-channel condition: a required level (low/high)
// or a required transition (rising/falling/either edge) relative to the
// previous sample. Cursor.Wait advances the stream until at least one of
// the supplied patterns matches and reports every pattern that matched the
// same sample as a MatchSet bitmask. Callers that care about precedence
// test pattern 0 first; by convention pattern 0 is the "unexpected edge"
// pattern and later patterns are the expected ones.
//
// # Bit accumulation
//
// BitAccumulator shifts bits in MSB-first and remembers the sample index
// where the current field's first bit was observed, because a field's
// annotation starts at its first bit, not at the moment the value becomes
// final.
package signal
