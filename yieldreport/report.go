// Package yieldreport parses the aggregate run report the sequencer writes
// at the end of acquisition. The report carries only pre-summarized
// per-barcode yield totals, so no read-length distribution can be derived
// from it.
package yieldreport

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/carbocation/pfx"

	"nanocov"
)

// Totals is the per-sample yield the report provides.
type Totals struct {
	Bases int64
	Reads int64
}

// Report is a parsed run report.
type Report struct {
	// ExperimentID is the protocol group id the run was started under,
	// used to cross-check the sample sheet.
	ExperimentID string

	totals map[string]Totals
}

// Totals returns the per-barcode yield totals.
func (r *Report) Totals() map[string]Totals { return r.totals }

// TotalsFor returns the totals for one barcode, or ErrUnknownSample if the
// report never mentions it.
func (r *Report) TotalsFor(barcode string) (Totals, error) {
	t, ok := r.totals[barcode]
	if !ok {
		return Totals{}, fmt.Errorf("%w: %q not in run report", nanocov.ErrUnknownSample, barcode)
	}
	return t, nil
}

// The report nests yield numbers as decimal strings in recent sequencer
// releases and as plain numbers in older ones.
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*n = flexInt(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

type reportJSON struct {
	ProtocolRunInfo struct {
		UserInfo struct {
			ProtocolGroupID string `json:"protocol_group_id"`
		} `json:"user_info"`
	} `json:"protocol_run_info"`
	Acquisitions []struct {
		AcquisitionOutput []struct {
			Type string `json:"type"`
			Plot []struct {
				Snapshots []barcodeSeries `json:"snapshots"`
			} `json:"plot"`
		} `json:"acquisition_output"`
	} `json:"acquisitions"`
}

type barcodeSeries struct {
	Filtering []struct {
		BarcodeName string `json:"barcode_name"`
	} `json:"filtering"`
	Snapshots []struct {
		YieldSummary struct {
			BasecalledPassBases     flexInt `json:"basecalled_pass_bases"`
			BasecalledPassReadCount flexInt `json:"basecalled_pass_read_count"`
		} `json:"yield_summary"`
	} `json:"snapshots"`
}

// Load reads and parses the run report at path.
func Load(path string) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return Parse(b)
}

// Parse parses an in-memory run report. The last snapshot of each barcode
// series holds that barcode's final yield for the acquisition; totals
// accumulate across acquisitions (a run restarted after a pause produces
// several).
func Parse(b []byte) (*Report, error) {
	var raw reportJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", nanocov.ErrMalformedInput, err)
	}
	if len(raw.Acquisitions) == 0 {
		return nil, fmt.Errorf("%w: run report has no acquisitions", nanocov.ErrMalformedInput)
	}

	rep := &Report{
		ExperimentID: raw.ProtocolRunInfo.UserInfo.ProtocolGroupID,
		totals:       make(map[string]Totals),
	}

	for _, acq := range raw.Acquisitions {
		for _, out := range acq.AcquisitionOutput {
			if out.Type != "SplitByBarcode" {
				continue
			}
			if len(out.Plot) == 0 {
				continue
			}
			for _, series := range out.Plot[0].Snapshots {
				name := barcodeOf(series)
				if name == "" || len(series.Snapshots) == 0 {
					continue
				}
				last := series.Snapshots[len(series.Snapshots)-1]
				t := rep.totals[name]
				t.Bases += int64(last.YieldSummary.BasecalledPassBases)
				t.Reads += int64(last.YieldSummary.BasecalledPassReadCount)
				rep.totals[name] = t
			}
		}
	}

	return rep, nil
}

func barcodeOf(series barcodeSeries) string {
	for _, f := range series.Filtering {
		if f.BarcodeName != "" {
			return f.BarcodeName
		}
	}
	return ""
}
