package samplesheet

import (
	"errors"
	"testing"

	"nanocov"
)

func TestParseCommaSheet(t *testing.T) {
	sheet := "alias,barcode,genome_size_bp,experiment_id\n" +
		"S1,barcode01,5000000,RUN_42\n" +
		"S2,barcode02,2800000,RUN_42\n"

	reg, err := Parse([]byte(sheet))
	if err != nil {
		t.Fatal(err)
	}

	if reg.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", reg.Len())
	}

	samples := reg.Samples()
	if samples[0].ID != "S1" || samples[1].ID != "S2" {
		t.Fatalf("sheet order not preserved: %+v", samples)
	}
	if samples[0].GenomeSizeBP != 5000000 {
		t.Fatalf("genome size: got %d", samples[0].GenomeSizeBP)
	}
	if reg.ExperimentID() != "RUN_42" {
		t.Fatalf("experiment id: got %q", reg.ExperimentID())
	}

	s, ok := reg.Lookup("barcode02")
	if !ok || s.ID != "S2" {
		t.Fatalf("lookup by barcode failed: %+v ok=%v", s, ok)
	}
}

func TestParseTabSheetMegabases(t *testing.T) {
	sheet := "sample_id\tbarcode\tcntn_cf_genomeSizeMb\tcntn_cf_taxon\n" +
		"S1\tbarcode01\t5.2\tE. coli\n" +
		"S2\tbarcode02\t2.8\tS. aureus\n"

	reg, err := Parse([]byte(sheet))
	if err != nil {
		t.Fatal(err)
	}

	s, ok := reg.Lookup("barcode01")
	if !ok {
		t.Fatal("barcode01 not found")
	}
	if s.GenomeSizeBP != 5200000 {
		t.Fatalf("Mb conversion: got %d, want 5200000", s.GenomeSizeBP)
	}
}

func TestParseUnbarcodedKeysOnID(t *testing.T) {
	sheet := "sample_id,genome_size_bp,experiment_id\n" +
		"S1,1000000,RUN_1\n"

	reg, err := Parse([]byte(sheet))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := reg.Lookup("S1"); !ok {
		t.Fatal("unbarcoded sample should be keyed by its id")
	}
}

func TestParseErrors(t *testing.T) {
	for _, v := range []struct {
		name  string
		sheet string
		want  error
	}{
		{
			name:  "duplicate id",
			sheet: "alias,barcode,genome_size_bp\nS1,barcode01,1000\nS1,barcode02,1000\n",
			want:  nanocov.ErrDuplicateSample,
		},
		{
			name:  "duplicate barcode",
			sheet: "alias,barcode,genome_size_bp\nS1,barcode01,1000\nS2,barcode01,1000\n",
			want:  nanocov.ErrDuplicateSample,
		},
		{
			name:  "non-numeric genome size",
			sheet: "alias,barcode,genome_size_bp\nS1,barcode01,big\n",
			want:  nanocov.ErrInvalidGenomeSize,
		},
		{
			name:  "zero genome size",
			sheet: "alias,barcode,genome_size_bp\nS1,barcode01,0\n",
			want:  nanocov.ErrInvalidGenomeSize,
		},
		{
			name:  "negative megabases",
			sheet: "alias,barcode,cntn_cf_genomeSizeMb\nS1,barcode01,-2.5\n",
			want:  nanocov.ErrInvalidGenomeSize,
		},
		{
			name:  "no id column",
			sheet: "who,barcode,genome_size_bp\nS1,barcode01,1000\n",
			want:  nanocov.ErrUnrecognizedFormat,
		},
		{
			name:  "no genome size column",
			sheet: "alias,barcode,notes\nS1,barcode01,hello\n",
			want:  nanocov.ErrUnrecognizedFormat,
		},
		{
			name:  "empty sample id",
			sheet: "alias,barcode,genome_size_bp\n,barcode01,1000\n",
			want:  nanocov.ErrMalformedInput,
		},
	} {
		_, err := Parse([]byte(v.sheet))
		if !errors.Is(err, v.want) {
			t.Fatalf("%s: got %v, want %v", v.name, err, v.want)
		}
	}
}
