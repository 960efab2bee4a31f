package signal

// BitAccumulator builds an unsigned field value MSB-first. It records the
// sample index at which the current field's first bit was pushed; the
// field annotation starts there rather than at the confirming edge of the
// final bit.
type BitAccumulator struct {
	value uint32
	bits  int
	start uint64
}

// Push shifts bit into the accumulator and returns the value so far. The
// first push after a reset records samplenum as the field start.
func (a *BitAccumulator) Push(bit bool, samplenum uint64) uint32 {
	if a.bits == 0 {
		a.start = samplenum
	}
	a.value <<= 1
	if bit {
		a.value |= 1
	}
	a.bits++
	return a.value
}

// Value returns the accumulated integer.
func (a *BitAccumulator) Value() uint32 { return a.value }

// Len returns the number of bits pushed since the last reset.
func (a *BitAccumulator) Len() int { return a.bits }

// Start returns the sample index of the current field's first bit. Only
// meaningful once at least one bit has been pushed.
func (a *BitAccumulator) Start() uint64 { return a.start }

// Reset clears the accumulator for the next field.
func (a *BitAccumulator) Reset() {
	a.value = 0
	a.bits = 0
	a.start = 0
}
