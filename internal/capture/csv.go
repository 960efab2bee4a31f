package capture

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/muurk/rffetap/internal/signal"
)

// ReadCSV parses a textual capture. Each line carries one sample as
// "sclk,sdata" or "samplenum,sclk,sdata"; a leading samplenum column is
// accepted but samples are renumbered sequentially so the decoder sees a
// gap-free stream. Blank lines, '#' comments, and one header line are
// skipped.
func ReadCSV(r io.Reader) ([]signal.Sample, error) {
	var samples []signal.Sample
	sc := bufio.NewScanner(r)
	lineNum := 0
	headerSkipped := false

	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, ",")
		if len(cols) != 2 && len(cols) != 3 {
			return nil, fmt.Errorf("line %d: want 2 or 3 columns, got %d", lineNum, len(cols))
		}
		clkCol, dataCol := cols[len(cols)-2], cols[len(cols)-1]

		clk, okClk := parseLevel(clkCol)
		data, okData := parseLevel(dataCol)
		if !okClk || !okData {
			if !headerSkipped && len(samples) == 0 {
				headerSkipped = true
				continue
			}
			return nil, fmt.Errorf("line %d: channel values must be 0 or 1", lineNum)
		}

		samples = append(samples, signal.Sample{
			Num:   uint64(len(samples)),
			Clock: clk,
			Data:  data,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

func parseLevel(s string) (bool, bool) {
	switch strings.TrimSpace(s) {
	case "0":
		return false, true
	case "1":
		return true, true
	default:
		return false, false
	}
}
