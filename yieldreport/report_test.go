package yieldreport

import (
	"errors"
	"testing"

	"nanocov"
)

// Two acquisitions so the per-barcode totals have to accumulate, with yield
// numbers as the decimal strings recent sequencer releases write.
const fixture = `{
  "protocol_run_info": {
    "user_info": {"protocol_group_id": "RUN_42"}
  },
  "acquisitions": [
    {
      "acquisition_output": [
        {
          "type": "SplitByBarcode",
          "plot": [
            {
              "snapshots": [
                {
                  "filtering": [{"barcode_name": "barcode01"}],
                  "snapshots": [
                    {"yield_summary": {"basecalled_pass_bases": "1000", "basecalled_pass_read_count": "10"}},
                    {"yield_summary": {"basecalled_pass_bases": "5000000", "basecalled_pass_read_count": "600"}}
                  ]
                },
                {
                  "filtering": [{"barcode_name": "barcode02"}],
                  "snapshots": [
                    {"yield_summary": {"basecalled_pass_bases": "2500000", "basecalled_pass_read_count": "300"}}
                  ]
                }
              ]
            }
          ]
        }
      ]
    },
    {
      "acquisition_output": [
        {
          "type": "SplitByBarcode",
          "plot": [
            {
              "snapshots": [
                {
                  "filtering": [{"barcode_name": "barcode01"}],
                  "snapshots": [
                    {"yield_summary": {"basecalled_pass_bases": 1000000, "basecalled_pass_read_count": 100}}
                  ]
                }
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func TestParse(t *testing.T) {
	rep, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatal(err)
	}

	if rep.ExperimentID != "RUN_42" {
		t.Fatalf("experiment id: got %q", rep.ExperimentID)
	}

	// Only the last snapshot of each series counts, summed across the two
	// acquisitions.
	t1, err := rep.TotalsFor("barcode01")
	if err != nil {
		t.Fatal(err)
	}
	if t1.Bases != 6000000 || t1.Reads != 700 {
		t.Fatalf("barcode01 totals: got %+v", t1)
	}

	t2, err := rep.TotalsFor("barcode02")
	if err != nil {
		t.Fatal(err)
	}
	if t2.Bases != 2500000 || t2.Reads != 300 {
		t.Fatalf("barcode02 totals: got %+v", t2)
	}
}

func TestUnknownSample(t *testing.T) {
	rep, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := rep.TotalsFor("barcode99"); !errors.Is(err, nanocov.ErrUnknownSample) {
		t.Fatalf("got %v, want ErrUnknownSample", err)
	}
}

func TestMalformed(t *testing.T) {
	for _, in := range []string{
		"not json at all",
		`{"acquisitions": []}`,
		`{"protocol_run_info": {}}`,
	} {
		if _, err := Parse([]byte(in)); !errors.Is(err, nanocov.ErrMalformedInput) {
			t.Fatalf("input %q: got %v, want ErrMalformedInput", in, err)
		}
	}
}
