package nanocov

import (
	"bytes"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiterBytes sniffs the most likely field delimiter of an
// in-memory delimited file. Sample sheets arrive both comma- and
// tab-separated depending on which LIMS exported them; when the detector
// cannot decide, comma wins.
func DetermineDelimiterBytes(b []byte) rune {
	candidates := detector.New().DetectDelimiter(bytes.NewReader(b), '"')
	if len(candidates) == 0 || len(candidates[0]) == 0 {
		return ','
	}
	return rune(candidates[0][0])
}
