// Package samplesheet loads the per-run sample sheet that maps each sample
// to its expected genome size, and can generate MinKNOW-style sample sheets
// from LIMS exports.
package samplesheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"nanocov"
)

// Sample is one sample sheet row. Loaded once, immutable afterward.
type Sample struct {
	ID           string
	GenomeSizeBP int64
	Barcode      string
	ExperimentID string
}

// Key returns the identifier reads are attributed under: the barcode when
// the run is multiplexed, otherwise the sample id itself.
func (s Sample) Key() string {
	if s.Barcode != "" {
		return s.Barcode
	}
	return s.ID
}

// Registry is the loaded sample sheet. Samples keep the order they appear
// in the file, which is also the order of the final report.
type Registry struct {
	samples []Sample
	byKey   map[string]int
}

// Samples returns the sheet rows in file order. The slice is shared; do not
// mutate it.
func (r *Registry) Samples() []Sample { return r.samples }

// Len returns the number of samples in the sheet.
func (r *Registry) Len() int { return len(r.samples) }

// Lookup finds the sample a read key (barcode or sample id) belongs to.
func (r *Registry) Lookup(key string) (Sample, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Sample{}, false
	}
	return r.samples[i], true
}

// ExperimentID returns the sheet's experiment id (the first non-empty one).
func (r *Registry) ExperimentID() string {
	for _, s := range r.samples {
		if s.ExperimentID != "" {
			return s.ExperimentID
		}
	}
	return ""
}

// sheetRow carries every recognized column spelling. LIMS exports use the
// cntn_cf_* names; hand-written sheets use the plain ones.
type sheetRow struct {
	SampleID     string `csv:"sample_id"`
	Alias        string `csv:"alias"`
	Sample       string `csv:"sample"`
	GenomeSizeBP string `csv:"genome_size_bp"`
	GenomeSizeMB string `csv:"cntn_cf_genomeSizeMb"`
	Barcode      string `csv:"barcode"`
	Lane         string `csv:"lane"`
	ExperimentID string `csv:"experiment_id"`
}

var idHeaders = []string{"sample_id", "alias", "sample"}

// Load reads and parses the sample sheet at path. The load is atomic: any
// structural problem, duplicate id, or bad genome size fails the whole
// sheet and no partial registry is returned.
func Load(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	return Parse(b)
}

// Parse parses an in-memory sample sheet. The delimiter is sniffed, so
// comma- and tab-separated sheets both work.
func Parse(b []byte) (*Registry, error) {
	delim := nanocov.DetermineDelimiterBytes(b)

	header, err := readHeader(b, delim)
	if err != nil {
		return nil, err
	}

	idCol := ""
	for _, h := range idHeaders {
		if header[h] {
			idCol = h
			break
		}
	}
	sizeBP := header["genome_size_bp"]
	sizeMB := header["cntn_cf_genomeSizeMb"]
	if idCol == "" || (!sizeBP && !sizeMB) {
		return nil, fmt.Errorf("%w: sample sheet needs a sample id column (%v) and a genome size column (genome_size_bp or cntn_cf_genomeSizeMb)",
			nanocov.ErrUnrecognizedFormat, idHeaders)
	}

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.LazyQuotes = true
		return r
	})

	rows := []*sheetRow{}
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", nanocov.ErrMalformedInput, err)
	}

	reg := &Registry{byKey: make(map[string]int, len(rows))}
	seenID := make(map[string]bool, len(rows))
	expID := ""

	for i, row := range rows {
		s := Sample{
			Barcode:      row.Barcode,
			ExperimentID: row.ExperimentID,
		}
		if s.Barcode == "" {
			// Some facilities label demultiplexed output by lane instead.
			s.Barcode = row.Lane
		}
		switch idCol {
		case "sample_id":
			s.ID = row.SampleID
		case "alias":
			s.ID = row.Alias
		case "sample":
			s.ID = row.Sample
		}
		if s.ID == "" {
			return nil, fmt.Errorf("%w: row %d has no sample id", nanocov.ErrMalformedInput, i+1)
		}

		s.GenomeSizeBP, err = genomeSize(row, sizeBP)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", s.ID, err)
		}

		if seenID[s.ID] {
			return nil, fmt.Errorf("%w: sample id %q", nanocov.ErrDuplicateSample, s.ID)
		}
		seenID[s.ID] = true
		if _, dup := reg.byKey[s.Key()]; dup {
			return nil, fmt.Errorf("%w: barcode %q", nanocov.ErrDuplicateSample, s.Key())
		}

		if s.ExperimentID != "" {
			if expID == "" {
				expID = s.ExperimentID
			} else if expID != s.ExperimentID {
				log.Printf("Warning: multiple experiment ids in sample sheet: %s, %s", expID, s.ExperimentID)
			}
		}

		reg.byKey[s.Key()] = len(reg.samples)
		reg.samples = append(reg.samples, s)
	}

	return reg, nil
}

func readHeader(b []byte, delim rune) (map[string]bool, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.Comma = delim
	r.LazyQuotes = true

	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sample sheet header: %v", nanocov.ErrMalformedInput, err)
	}

	header := make(map[string]bool, len(row))
	for _, col := range row {
		header[col] = true
	}
	return header, nil
}

func genomeSize(row *sheetRow, preferBP bool) (int64, error) {
	if preferBP {
		bp, err := strconv.ParseInt(row.GenomeSizeBP, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", nanocov.ErrInvalidGenomeSize, row.GenomeSizeBP)
		}
		if bp <= 0 {
			return 0, fmt.Errorf("%w: %d bp", nanocov.ErrInvalidGenomeSize, bp)
		}
		return bp, nil
	}

	mb, err := strconv.ParseFloat(row.GenomeSizeMB, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", nanocov.ErrInvalidGenomeSize, row.GenomeSizeMB)
	}
	if mb <= 0 {
		return 0, fmt.Errorf("%w: %g Mb", nanocov.ErrInvalidGenomeSize, mb)
	}
	return int64(math.Round(mb * 1e6)), nil
}
