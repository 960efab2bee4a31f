// Package ui provides the interactive annotation viewer for rffetap.
//
// This package uses Bubble Tea and Lipgloss to render a scrollable
// transcript of decoded annotations. The viewer color-codes command
// kinds, bus parks, and the warning row, and offers a warnings-only
// filter for quickly triaging a noisy capture.
//
// The viewer operates on a fully decoded transcript; it does not decode
// itself. Use internal/rffe with a Collector sink, then hand the
// collected annotations to Run.
package ui
