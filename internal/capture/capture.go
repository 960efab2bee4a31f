package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muurk/rffetap/internal/logging"
	"github.com/muurk/rffetap/internal/signal"
)

// Format identifies a capture file layout.
type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	// FormatCSV is one "sclk,sdata" or "samplenum,sclk,sdata" line per
	// sample.
	FormatCSV
	// FormatRaw is one packed byte per sample.
	FormatRaw
)

// ErrUnknownFormat is returned when a format spelling is not recognized.
var ErrUnknownFormat = errors.New("capture: unknown format")

// ParseFormat maps the CLI spelling to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "csv":
		return FormatCSV, nil
	case "raw", "bin":
		return FormatRaw, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// String returns the CLI spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatRaw:
		return "raw"
	default:
		return "auto"
	}
}

// DetectFormat picks a format from the file extension. Anything that is
// not .csv is treated as a raw dump.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatRaw
}

// Options configures capture loading.
type Options struct {
	// Format forces a file layout; FormatAuto detects by extension.
	Format Format
	// ClockBit and DataBit are the bit positions of the two channels
	// within each raw byte. Ignored for CSV.
	ClockBit uint
	DataBit  uint
}

// DefaultOptions places the clock on bit 0 and data on bit 1, matching
// a two-probe capture on the analyzer's first channels.
func DefaultOptions() Options {
	return Options{Format: FormatAuto, ClockBit: 0, DataBit: 1}
}

// Load reads the capture at path and returns a sample source for it.
func Load(path string, opts Options) (*signal.SliceSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	format := opts.Format
	if format == FormatAuto {
		format = DetectFormat(path)
	}

	var samples []signal.Sample
	switch format {
	case FormatCSV:
		samples, err = ReadCSV(f)
	case FormatRaw:
		samples, err = ReadRaw(f, opts.ClockBit, opts.DataBit)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s capture %s: %w", format, path, err)
	}

	logging.LogCaptureLoaded(path, format.String(), len(samples))
	return signal.NewSliceSource(samples), nil
}
