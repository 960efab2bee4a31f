package rffe

import (
	"errors"
	"fmt"

	"github.com/muurk/rffetap/internal/signal"
)

// state is the decoder's current search target.
type state int

const (
	stateFindSSC state = iota
	stateFindSlaveAddress
	stateFindCommand
	stateFindByteCount
	stateFindAddress
	stateFindData
	stateFindParity
	stateFindBusPark
)

func (s state) String() string {
	switch s {
	case stateFindSSC:
		return "FIND_SSC"
	case stateFindSlaveAddress:
		return "FIND_SLAVE_ADDRESS"
	case stateFindCommand:
		return "FIND_COMMAND"
	case stateFindByteCount:
		return "FIND_BYTE_COUNT"
	case stateFindAddress:
		return "FIND_ADDRESS"
	case stateFindData:
		return "FIND_DATA"
	case stateFindParity:
		return "FIND_PARITY"
	default:
		return "FIND_BUS_PARK"
	}
}

// Wait patterns shared across states. Pattern 0 of a multi-pattern wait
// is always the "unexpected edge" pattern; callers test it first.
var (
	patIllegalEdge = signal.Pattern{Clock: signal.Low, Data: signal.Edge}
	patClockRising = signal.Pattern{Clock: signal.Rising}
	patClockHigh   = signal.Pattern{Clock: signal.High}
)

// Decoder is the RFFE protocol state machine. It pulls samples through a
// signal.Cursor, accumulates field bits, and emits annotations to its
// sink. A Decoder decodes a single stream and is not safe for concurrent
// use.
type Decoder struct {
	cur  *signal.Cursor
	sink Sink
	opts Options

	st  state
	tx  Transaction
	acc signal.BitAccumulator

	// cmdBits counts command bits examined so far; cmdStart is the
	// sample of the first command bit. cmdBit2 is retained because the
	// extended families are told apart by bits 2 and 3 together.
	cmdBits  int
	cmdStart uint64
	cmdBit2  bool

	// busParkStart is where the most recent bus park (or idle interval)
	// began; the next SSC annotation starts there.
	busParkStart uint64
	// fieldEnd is the confirming edge of the last completed field; bus
	// park annotations start there.
	fieldEnd uint64
}

// New creates a Decoder over src emitting to sink. A missing source or
// sink is a configuration error: the decoder has no way to report
// failures once it is running.
func New(src signal.Source, sink Sink, opts Options) (*Decoder, error) {
	if src == nil {
		return nil, errors.New("rffe: nil sample source")
	}
	if sink == nil {
		return nil, errors.New("rffe: nil annotation sink")
	}
	return &Decoder{
		cur:  signal.NewCursor(src),
		sink: sink,
		opts: opts,
		st:   stateFindSSC,
	}, nil
}

// SetSampleRate records the capture's sampling rate. Classification does
// not depend on it; it is kept for sinks.
func (d *Decoder) SetSampleRate(rate uint64) { d.opts.SampleRate = rate }

// SampleRate returns the recorded sampling rate, 0 when unknown.
func (d *Decoder) SampleRate() uint64 { return d.opts.SampleRate }

// Transaction returns a copy of the current transaction context.
func (d *Decoder) Transaction() Transaction { return d.tx }

// Run decodes until the sample source is exhausted. Anomalies never stop
// the run; they are emitted as warning annotations.
func (d *Decoder) Run() {
	for {
		var ok bool
		switch d.st {
		case stateFindSSC:
			ok = d.findSSC()
		case stateFindSlaveAddress:
			ok = d.findSlaveAddress()
		case stateFindCommand:
			ok = d.findCommand()
		case stateFindByteCount:
			ok = d.findByteCount()
		case stateFindAddress:
			ok = d.findAddress()
		case stateFindData:
			ok = d.findData()
		case stateFindParity:
			ok = d.findParity()
		case stateFindBusPark:
			ok = d.findBusPark()
		}
		if !ok {
			return
		}
	}
}

// emit forwards one annotation to the sink. With no explicit labels the
// kind's long/short names are used.
func (d *Decoder) emit(start, end uint64, kind Kind, labels ...string) {
	if len(labels) == 0 {
		labels = []string{kind.Long(), kind.Short()}
	}
	d.sink.Annotate(Annotation{Start: start, End: end, Kind: kind, Labels: labels})
}

// awaitBitEdge waits for the rising clock edge that times the next bit.
// A data edge while the clock is low is a protocol violation: it is
// reported as an Illegal-Jump-Edge interval ending at whatever edge came
// next, and the wait resumes until the genuine rising edge arrives.
func (d *Decoder) awaitBitEdge() (signal.Sample, bool) {
	for {
		m, s, ok := d.cur.Wait(patIllegalEdge, patClockRising)
		if !ok {
			return signal.Sample{}, false
		}
		if m.Has(0) {
			start := s.Num
			m, s, ok = d.cur.Wait(patIllegalEdge, patClockRising)
			if !ok {
				return signal.Sample{}, false
			}
			if m.Has(1) {
				d.emit(start, s.Num, KindIllegalJumpEdge)
				return s, true
			}
			d.emit(start, s.Num, KindIllegalJumpEdge)
			continue
		}
		if m.Has(1) {
			return s, true
		}
	}
}

// field consumes one bit of an accumulating field. When the final bit's
// confirming edge arrives the annotation is emitted, the machine moves to
// next, and the decoded value is returned with done=true.
func (d *Decoder) field(s signal.Sample, kind Kind, next state, width int) (value uint32, done, ok bool) {
	d.acc.Push(s.Data, s.Num)

	if d.acc.Len() < width {
		_, ok = d.awaitBitEdge()
		return 0, false, ok
	}

	end, ok := d.awaitBitEdge()
	if !ok {
		return 0, false, false
	}

	value = d.acc.Value()
	d.fieldEnd = end.Num
	d.emit(d.acc.Start(), end.Num, kind, d.fieldLabels(kind, width, value)...)
	d.acc.Reset()
	d.st = next
	return value, true, true
}

// fieldLabels renders the three label forms of a multi-bit field, e.g.
// "Byte Count[2:0]: 05", "BC[2:0]: 05", "05".
func (d *Decoder) fieldLabels(kind Kind, width int, value uint32) []string {
	display := value
	if kind == KindSlaveAddress && d.opts.AddressFormat == AddressShifted {
		display = value << 4
	}
	hi := width - 1
	return []string{
		fmt.Sprintf("%s[%d:0]: %02X", kind.Long(), hi, display),
		fmt.Sprintf("%s[%d:0]: %02X", kind.Short(), hi, display),
		fmt.Sprintf("%02X", display),
	}
}

// resetTransaction discards the transaction context by value replacement
// and re-arms in next (bus-park search for aborts, SSC search after a
// completed transaction).
func (d *Decoder) resetTransaction(next state) {
	d.tx = Transaction{}
	d.acc.Reset()
	d.cmdBits = 0
	d.cmdBit2 = false
	d.fieldEnd = 0
	d.st = next
}

// findSSC looks for a sequence start: data pulse ending while the clock
// is held low, confirmed by the first clock rise. A clock already high is
// a malformed start.
func (d *Decoder) findSSC() bool {
	m, s, ok := d.cur.Wait(
		signal.Pattern{Clock: signal.High},
		signal.Pattern{Clock: signal.Low, Data: signal.Falling},
	)
	if !ok {
		return false
	}
	if m.Has(0) {
		d.emit(s.Num, s.Num, KindSSCWarning)
		d.st = stateFindBusPark
		return true
	}

	// Data returned low; the first rising clock edge confirms the start.
	m, s, ok = d.cur.Wait(patIllegalEdge, patClockRising)
	if !ok {
		return false
	}
	if m.Has(0) {
		start := s.Num
		m, s, ok = d.cur.Wait(patIllegalEdge, patClockRising)
		if !ok {
			return false
		}
		if m.Has(0) {
			d.emit(start, s.Num, KindIllegalJumpEdge)
			return true // restart the SSC search
		}
		d.emit(start, s.Num, KindIllegalJumpEdge)
	}

	d.emit(d.busParkStart, s.Num, KindSSC)
	d.st = stateFindSlaveAddress
	return true
}

func (d *Decoder) findSlaveAddress() bool {
	_, s, ok := d.cur.Wait(patClockHigh)
	if !ok {
		return false
	}
	_, _, ok = d.field(s, KindSlaveAddress, stateFindCommand, 4)
	return ok
}

// findCommand classifies the command kind bit by bit. Bit 0 selects
// register-0 write outright; bit 1 splits the register and extended
// families; bit 2 resolves register read/write; bits 2+3 resolve the
// extended families, with bit 4 picking the long read/write variant. The
// 0b0001 prefix is reserved and aborts the transaction with a warning.
func (d *Decoder) findCommand() bool {
	_, s, ok := d.cur.Wait(patClockHigh)
	if !ok {
		return false
	}
	bit := s.Data

	switch d.cmdBits {
	case 0:
		d.cmdStart = s.Num
		if bit {
			return d.classify(CmdR0W, stateFindData)
		}
	case 1:
		d.tx.Extended = !bit
	case 2:
		if !d.tx.Extended {
			if bit {
				return d.classify(CmdRR, stateFindAddress)
			}
			return d.classify(CmdRW, stateFindAddress)
		}
		d.cmdBit2 = bit
	case 3:
		if !bit {
			if d.cmdBit2 {
				return d.classify(CmdERR, stateFindByteCount)
			}
			return d.classify(CmdERW, stateFindByteCount)
		}
		if !d.cmdBit2 {
			d.emit(d.cmdStart, s.Num, KindCommandWarning)
			d.resetTransaction(stateFindBusPark)
			return true
		}
	case 4:
		if bit {
			return d.classify(CmdERRL, stateFindByteCount)
		}
		return d.classify(CmdERWL, stateFindByteCount)
	}

	d.cmdBits++
	_, ok = d.awaitBitEdge()
	return ok
}

// classify emits the command annotation once its confirming edge arrives
// and dispatches to the command's first field state.
func (d *Decoder) classify(cmd Command, next state) bool {
	end, ok := d.awaitBitEdge()
	if !ok {
		return false
	}
	d.emit(d.cmdStart, end.Num, cmd.Kind())
	d.tx.Cmd = cmd
	d.cmdBits = 0
	d.st = next
	return true
}

func (d *Decoder) findByteCount() bool {
	_, s, ok := d.cur.Wait(patClockHigh)
	if !ok {
		return false
	}
	width := 3
	if d.tx.Cmd == CmdERW || d.tx.Cmd == CmdERR {
		width = 4
	}
	value, done, ok := d.field(s, KindByteCount, stateFindParity, width)
	if done {
		d.tx.ByteCount = value
		if d.tx.ByteCount == 0 {
			// A zero byte count would leave the data phase empty; treat
			// it as a single-byte transfer.
			d.tx.ByteCount = 1
		}
	}
	return ok
}

func (d *Decoder) findAddress() bool {
	_, s, ok := d.cur.Wait(patClockHigh)
	if !ok {
		return false
	}
	width := 8
	if d.tx.Cmd == CmdRW || d.tx.Cmd == CmdRR {
		width = 5
	}
	_, done, ok := d.field(s, KindAddress, stateFindParity, width)
	if done {
		d.tx.AddressCount++
	}
	return ok
}

func (d *Decoder) findData() bool {
	_, s, ok := d.cur.Wait(patClockHigh)
	if !ok {
		return false
	}

	var width int
	switch d.tx.Cmd {
	case CmdR0W:
		width = 7
	case CmdRW, CmdRR:
		width = 8
	default:
		width = int(d.tx.ByteCount) * 8
	}

	// Extended read data resumes after the first bus park and runs
	// straight into the transaction's final park.
	next := stateFindParity
	if (d.tx.Cmd == CmdERR || d.tx.Cmd == CmdERRL) && d.tx.BusParkCount == 1 {
		next = stateFindBusPark
	}

	_, done, ok := d.field(s, KindData, next, width)
	if done && next == stateFindBusPark {
		d.tx.BusParkCount = 2
	}
	return ok
}

func (d *Decoder) findParity() bool {
	_, s, ok := d.cur.Wait(patClockHigh)
	if !ok {
		return false
	}
	_, done, ok := d.field(s, KindParity, stateFindBusPark, 1)
	if !ok {
		return false
	}
	if done {
		d.tx.ParityCount++
		d.afterParity()
	}
	return true
}

// afterParity dispatches to the next field according to the command kind
// and how many parity bits the transaction has consumed.
func (d *Decoder) afterParity() {
	switch d.tx.Cmd {
	case CmdR0W:
		d.st = stateFindBusPark

	case CmdRW:
		if d.tx.ParityCount == 1 {
			d.st = stateFindData
		} else {
			d.tx.BusParkCount = 1
			d.st = stateFindBusPark
		}

	case CmdRR:
		if d.tx.ParityCount == 1 {
			d.tx.BusParkCount = 1
		} else {
			d.tx.BusParkCount = 2
		}
		d.st = stateFindBusPark

	case CmdERW:
		switch d.tx.ParityCount {
		case 1:
			d.st = stateFindAddress
		case 2:
			d.st = stateFindData
		default:
			d.st = stateFindBusPark
		}

	case CmdERR:
		if d.tx.ParityCount == 1 {
			d.st = stateFindAddress
		} else {
			d.tx.BusParkCount = 1
			d.st = stateFindBusPark
		}

	case CmdERWL:
		switch d.tx.ParityCount {
		case 1, 2:
			d.st = stateFindAddress
		case 3:
			d.st = stateFindData
		default:
			d.st = stateFindBusPark
		}

	case CmdERRL:
		switch d.tx.ParityCount {
		case 1, 2:
			d.st = stateFindAddress
		default:
			d.tx.BusParkCount = 1
			d.st = stateFindBusPark
		}
	}
}

// findBusPark waits for the park condition: data driven low and the clock
// stopped low. With no command classified this is the idle bus; the
// machine watches for the data pulse that re-arms a sequence start.
func (d *Decoder) findBusPark() bool {
	m, s, ok := d.cur.Wait(
		signal.Pattern{Clock: signal.Low, Data: signal.Rising},
		signal.Pattern{Clock: signal.Low, Data: signal.Low},
	)
	if !ok {
		return false
	}
	if m.Has(0) {
		// Data rose mid-park; flag it and see whether the park resumes.
		start := s.Num
		m, s, ok = d.cur.Wait(
			patIllegalEdge,
			signal.Pattern{Clock: signal.Low, Data: signal.Low},
		)
		if !ok {
			return false
		}
		if m.Has(0) {
			d.emit(start, s.Num, KindIllegalJumpEdge)
		}
		if m.Has(1) {
			d.emit(start, s.Num, KindIllegalJumpEdge)
		}
	}
	if !m.Has(1) {
		return true // still not parked; keep searching
	}

	d.busParkStart = s.Num

	if d.tx.Cmd == CmdNone {
		return d.rearmFromIdle()
	}

	d.emit(d.fieldEnd, s.Num, KindBusPark)

	if d.tx.Cmd.IsRead() && d.tx.BusParkCount == 1 {
		// Address phase parked; the slave drives data next.
		d.st = stateFindData
		return true
	}

	d.resetTransaction(stateFindSSC)
	return true
}

// rearmFromIdle watches a parked, idle bus. A data pulse starts the next
// SSC search; a stray clock pulse is a malformed start attempt.
func (d *Decoder) rearmFromIdle() bool {
	m, s, ok := d.cur.Wait(
		signal.Pattern{Clock: signal.Rising, Data: signal.Low},
		signal.Pattern{Clock: signal.Low, Data: signal.Rising},
	)
	if !ok {
		return false
	}
	if m.Has(0) {
		start := s.Num
		m, s, ok = d.cur.Wait(
			signal.Pattern{Clock: signal.Rising, Data: signal.Low},
			signal.Pattern{Clock: signal.Falling, Data: signal.Low},
			signal.Pattern{Clock: signal.Low, Data: signal.Rising},
		)
		if !ok {
			return false
		}
		if m.Has(0) {
			d.emit(start, s.Num, KindSSCWarning)
			d.st = stateFindBusPark
			return true
		}
		if m.Has(1) {
			// The stray pulse ended with data still low; the park
			// effectively restarts here.
			d.busParkStart = s.Num
		}
	}
	d.st = stateFindSSC
	return true
}
