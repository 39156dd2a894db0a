package samplesheet

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	meta := RunMetadata{
		ExperimentID: "TEST_RUN_01",
		FlowCellID:   "FLOWCELL_123",
		PositionID:   "P1",
		Kit:          "KIT_123",
	}
	entries := []SheetEntry{
		{
			SampleID:  "SAMPLE_01",
			BarcodeI7: "NB01",
			Taxon:     "E. coli",
			IsUrgent:  true,
		},
	}

	out, err := Generate(meta, entries)
	if err != nil {
		t.Fatal(err)
	}

	rows, header := parseBack(t, out)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	for _, v := range []struct{ col, want string }{
		{"experiment_id", "TEST_RUN_01"},
		{"flow_cell_id", "FLOWCELL_123"},
		{"flow_cell_product_code", DefaultFlowCellProductCode},
		{"alias", "SAMPLE_01"},
		{"sample_id", ""},
		{"type", "test_sample"},
		{"barcode", "barcode01"},
		{"cntn_cf_taxon", "E. coli"},
		{"cntn_cf_isUrgent", "true"},
		{"cntn_cf_lowMaterial", "false"},
	} {
		if got := row[header[v.col]]; got != v.want {
			t.Fatalf("column %s: got %q, want %q", v.col, got, v.want)
		}
	}
}

func TestBarcodeName(t *testing.T) {
	for _, v := range []struct {
		i7, fallback, want string
	}{
		{"NB01", "", "barcode01"},
		{"NB1", "", "barcode01"},
		{"BC12", "", "barcode12"},
		{"NBxx", "", "NBxx"},
		{"A701", "barcode05", "barcode05"},
		{"", "barcode09", "barcode09"},
	} {
		if got := barcodeName(v.i7, v.fallback); got != v.want {
			t.Fatalf("barcodeName(%q, %q): got %q, want %q", v.i7, v.fallback, got, v.want)
		}
	}
}

func parseBack(t *testing.T, out string) ([][]string, map[string]int) {
	t.Helper()

	all, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 1 {
		t.Fatal("no header row")
	}

	header := make(map[string]int, len(all[0]))
	for i, col := range all[0] {
		header[col] = i
	}
	return all[1:], header
}
