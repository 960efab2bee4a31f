package capture

import (
	"bufio"
	"fmt"
	"io"

	"github.com/muurk/rffetap/internal/signal"
)

// ReadRaw parses a packed logic dump: one byte per sample with the clock
// and data channels at the given bit positions.
func ReadRaw(r io.Reader, clockBit, dataBit uint) ([]signal.Sample, error) {
	if clockBit > 7 || dataBit > 7 {
		return nil, fmt.Errorf("channel bits must be 0-7, got clock=%d data=%d", clockBit, dataBit)
	}
	if clockBit == dataBit {
		return nil, fmt.Errorf("clock and data cannot share bit %d", clockBit)
	}

	var samples []signal.Sample
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		samples = append(samples, signal.Sample{
			Num:   uint64(len(samples)),
			Clock: b&(1<<clockBit) != 0,
			Data:  b&(1<<dataBit) != 0,
		})
	}
}
