package report

import (
	"github.com/carbocation/pfx"
	"github.com/xuri/excelize/v2"

	"nanocov/covstats"
)

const xlsxSheet = "coverage"

// WriteXLSX writes the report to an xlsx workbook for the production
// tracking spreadsheet. Numeric columns stay numeric so the sheet can be
// sorted and filtered; unavailable distribution metrics become "n/a".
func WriteXLSX(path string, results []covstats.CoverageResult, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return pfx.Err(err)
	}

	head := lift(header(opts))
	if err := f.SetSheetRow(xlsxSheet, "A1", &head); err != nil {
		return pfx.Err(err)
	}

	rowNum := 2
	for _, r := range results {
		if !opts.keep(r) {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return pfx.Err(err)
		}

		vals := []interface{}{
			r.SampleID, r.Barcode, r.CoverageX, r.TotalBases, r.ReadCount, r.MeanReadLength,
		}
		if r.HasDistribution {
			vals = append(vals, r.MedianReadLength, r.N50, r.PctReadsAboveThreshold)
		} else {
			vals = append(vals, "n/a", "n/a", "n/a")
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &vals); err != nil {
			return pfx.Err(err)
		}
		rowNum++
	}

	if err := f.SaveAs(path); err != nil {
		return pfx.Err(err)
	}
	return nil
}

func lift(cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}
