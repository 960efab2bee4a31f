// Package rffe decodes RFFE (RF Front-End control interface) bus
// transcripts into annotated protocol fields.
//
// # Protocol Overview
//
// RFFE is a two-wire, single-master serial bus. A transaction starts with
// a Sequence Start Condition (a data pulse while the clock is held low),
// followed by a 4-bit slave address, a command, and the fields the
// command implies: byte counts, register addresses, data bytes, and
// parity bits, terminated by one or two Bus Park intervals.
//
// Command families:
//   - Register 0 Write (R0W): 7-bit data, one parity, one park.
//   - Register Write/Read (RW/RR): 5-bit address inside the command
//     byte, one data byte; reads park between address and data phases.
//   - Extended Write/Read (ERW/ERR): 4-bit byte count, 8-bit address,
//     byte-count data bytes.
//   - Extended Write/Read Long (ERWL/ERRL): 3-bit byte count, two 8-bit
//     address bytes.
//
// # Decoding model
//
// The Decoder is a bit-synchronous state machine over a signal.Cursor.
// It pulls samples one at a time, never backtracks, and emits labeled
// intervals (Annotations) to a Sink as fields complete. Protocol
// anomalies are annotations too, on a separate warnings row:
//   - Illegal Jump Edge: a data edge during a bit-timing wait window.
//   - Command Warning: an unrecognized command prefix; the transaction
//     is abandoned and the machine re-syncs on the next bus park.
//   - SSC Warning: a malformed start attempt.
//
// Nothing in this package fails at runtime: a decode run ends only when
// the sample source is exhausted.
//
// # Usage
//
//	var sink rffe.Collector
//	dec, err := rffe.New(source, &sink, rffe.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dec.Run()
//	for _, a := range sink.Annotations {
//	    fmt.Printf("%d-%d %s\n", a.Start, a.End, a.Label())
//	}
package rffe
