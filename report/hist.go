package report

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
)

// histBuckets is a tradeoff between resolution and terminal height.
const histBuckets = 20

// WriteHistogram prints a terminal histogram of read lengths across the
// whole run. Only meaningful for per-read input; callers pass nil lengths
// for aggregate reports and nothing is printed.
func WriteHistogram(w io.Writer, lengths []int64) error {
	if len(lengths) == 0 {
		return nil
	}

	data := make([]float64, len(lengths))
	for i, l := range lengths {
		data[i] = float64(l)
	}

	h := histogram.Hist(histBuckets, data)
	if err := histogram.Fprint(w, h, histogram.Linear(40)); err != nil {
		return pfx.Err(err)
	}
	return nil
}
