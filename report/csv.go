package report

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"

	"nanocov/covstats"
)

// WriteCSV renders the report as CSV for downstream tooling. Same rows and
// formatting as the table, no orphan section.
func WriteCSV(w io.Writer, results []covstats.CoverageResult, opts Options) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header(opts)); err != nil {
		return pfx.Err(err)
	}
	for _, r := range results {
		if !opts.keep(r) {
			continue
		}
		if err := cw.Write(row(r)); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}
	return nil
}
