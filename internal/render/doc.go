// Package render turns decoded annotations into output streams.
//
// Three renderers are provided: JSON Lines for machine consumption,
// plain text for grep-friendly transcripts, and a lipgloss-styled
// pretty form with the warning row color-coded. When the capture's
// sampling rate is known the JSON and text forms add wall-clock
// columns; the decoder itself never uses the rate.
package render
