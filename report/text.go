// Package report renders coverage results. It is purely presentation: all
// numbers arrive precomputed and are only formatted here.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"nanocov/covstats"
)

// Options controls rendering, not computation.
type Options struct {
	// ThresholdBP labels the qualification column.
	ThresholdBP int64
	// Below, when positive, restricts output to samples whose coverage is
	// under the given value (the "what still needs sequencing" view).
	Below float64
}

func (o Options) keep(r covstats.CoverageResult) bool {
	return o.Below <= 0 || r.CoverageX < o.Below
}

func (o Options) pctLabel() string {
	kb := strconv.FormatFloat(float64(o.ThresholdBP)/1000, 'g', -1, 64)
	return fmt.Sprintf("%%reads>=%skb", kb)
}

func header(o Options) []string {
	return []string{
		"sample", "barcode", "cov", "total_bases", "reads",
		"mean_len", "median_len", "n50", o.pctLabel(),
	}
}

func row(r covstats.CoverageResult) []string {
	out := []string{
		r.SampleID,
		r.Barcode,
		formatCoverage(r.CoverageX),
		strconv.FormatInt(r.TotalBases, 10),
		strconv.FormatInt(r.ReadCount, 10),
		strconv.FormatFloat(r.MeanReadLength, 'f', 1, 64),
	}
	if r.HasDistribution {
		out = append(out,
			strconv.FormatFloat(r.MedianReadLength, 'f', 1, 64),
			strconv.FormatInt(r.N50, 10),
			strconv.FormatFloat(r.PctReadsAboveThreshold, 'f', 2, 64),
		)
	} else {
		out = append(out, "n/a", "n/a", "n/a")
	}
	return out
}

// formatCoverage keeps four significant digits, so low-yield samples
// (0.0036x) stay readable next to deep ones (312.5x).
func formatCoverage(c float64) string {
	return strconv.FormatFloat(c, 'g', 4, 64)
}

var colWidths = []int{-20, -14, 10, 14, 10, 10, 12, 10, 14}

// WriteTable renders the fixed-width report table, one row per sample sheet
// entry in sheet order, followed by orphan warnings for data that matched
// no sheet entry. Output is deterministic for identical inputs.
func WriteTable(w io.Writer, results []covstats.CoverageResult, orphans map[string]covstats.SampleStats, opts Options) error {
	if err := writeFixed(w, header(opts)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, divider()); err != nil {
		return err
	}

	for _, r := range results {
		if !opts.keep(r) {
			continue
		}
		if err := writeFixed(w, row(r)); err != nil {
			return err
		}
	}

	return writeOrphans(w, orphans)
}

func writeFixed(w io.Writer, cols []string) error {
	for i, c := range cols {
		if i > 0 {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%*s", colWidths[i], c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func divider() string {
	n := len(colWidths) - 1
	for _, w := range colWidths {
		if w < 0 {
			n -= w
		} else {
			n += w
		}
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = '-'
	}
	return string(out)
}

// OrphanLines renders one warning line per orphan sample, in stable sorted
// order. Shared between the table's warning section and the log output, so
// machine-readable modes still surface orphans on stderr.
func OrphanLines(orphans map[string]covstats.SampleStats) []string {
	keys := lo.Keys(orphans)
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		st := orphans[k]
		name := k
		if name == "" {
			name = "(unbarcoded)"
		}
		lines = append(lines, fmt.Sprintf("%s: %d reads, %d bases", name, st.ReadCount, st.TotalBases))
	}
	return lines
}

func writeOrphans(w io.Writer, orphans map[string]covstats.SampleStats) error {
	lines := OrphanLines(orphans)
	if len(lines) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nWarning: %d barcode(s) in input absent from the sample sheet:\n", len(lines)); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "  %s\n", l); err != nil {
			return err
		}
	}
	return nil
}
