// Package seqsummary streams per-read records out of a basecaller
// sequencing summary (tab-separated, one header row, one row per read).
// Summaries routinely run to tens of gigabytes, so the reader holds one
// line at a time and never buffers the file.
package seqsummary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"

	"nanocov"
)

// Column names the basecaller writes. Only the length column is mandatory;
// unbarcoded runs have no barcode_arrangement and old summaries may lack
// passes_filtering.
const (
	lengthCol  = "sequence_length_template"
	barcodeCol = "barcode_arrangement"
	qcCol      = "passes_filtering"
)

// Reader yields one ReadRecord per summary row. It is lazy, finite and
// non-restartable: once Next has returned io.EOF the only valid call is
// Close.
type Reader struct {
	closer io.Closer
	sc     *bufio.Scanner

	lenIdx int
	bcIdx  int // -1 when the run is not barcoded
	qcIdx  int // -1 when the summary predates filtering

	skipped int64
}

// Open opens the summary at path and validates its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := New(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// New wraps an already-open summary stream. The header row is consumed
// immediately; an unrecognizable header is fatal.
func New(in io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(in)
	// Summary rows are wide (dozens of columns); allow long lines.
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, pfx.Err(err)
		}
		return nil, fmt.Errorf("%w: empty sequencing summary", nanocov.ErrUnrecognizedFormat)
	}

	r := &Reader{sc: sc, lenIdx: -1, bcIdx: -1, qcIdx: -1}
	for i, col := range strings.Split(sc.Text(), "\t") {
		switch col {
		case lengthCol:
			r.lenIdx = i
		case barcodeCol:
			r.bcIdx = i
		case qcCol:
			r.qcIdx = i
		}
	}
	if r.lenIdx < 0 {
		return nil, fmt.Errorf("%w: sequencing summary header has no %s column", nanocov.ErrUnrecognizedFormat, lengthCol)
	}
	return r, nil
}

// Next returns the next read. Rows that cannot be parsed are skipped and
// tallied, never fatal. Returns io.EOF when the summary is exhausted.
func (r *Reader) Next() (nanocov.ReadRecord, error) {
	for r.sc.Scan() {
		fields := strings.Split(r.sc.Text(), "\t")

		if r.lenIdx >= len(fields) {
			r.skipped++
			continue
		}
		length, err := strconv.ParseInt(fields[r.lenIdx], 10, 64)
		if err != nil || length < 0 {
			r.skipped++
			continue
		}

		rec := nanocov.ReadRecord{LengthBP: length, QCPass: true}
		if r.bcIdx >= 0 && r.bcIdx < len(fields) {
			rec.Sample = fields[r.bcIdx]
		}
		if r.qcIdx >= 0 && r.qcIdx < len(fields) {
			rec.QCPass = strings.EqualFold(fields[r.qcIdx], "TRUE")
		}
		return rec, nil
	}

	if err := r.sc.Err(); err != nil {
		return nanocov.ReadRecord{}, pfx.Err(err)
	}
	return nanocov.ReadRecord{}, io.EOF
}

// Skipped reports how many rows were dropped as unparseable.
func (r *Reader) Skipped() int64 { return r.skipped }

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
