// Package capture loads two-channel logic captures into sample streams
// the decoder can consume.
//
// Two on-disk formats are supported:
//
//   - CSV: one sample per line as "samplenum,sclk,sdata" or "sclk,sdata".
//     A header line, blank lines, and '#' comments are skipped. Channel
//     values are 0 or 1.
//
//   - Raw packed logic: one byte per sample, with the clock and data
//     channels at configurable bit positions within the byte. This is
//     the layout logic-analyzer dumps commonly use.
//
// Load picks the format from the file extension (.csv for CSV, anything
// else is treated as raw) unless the caller forces one in Options.
package capture
