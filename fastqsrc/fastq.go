// Package fastqsrc adapts basecalled FASTQ output into the read stream the
// aggregator consumes, for runs where no sequencing summary was kept.
// FASTQ carries no barcode assignment, so every read lands on the
// unbarcoded sample.
package fastqsrc

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/carbocation/pfx"

	"nanocov"
)

// Reader yields one ReadRecord per FASTQ record.
type Reader struct {
	sc      *seqio.Scanner
	closers []io.Closer
}

// Open opens the FASTQ at path, transparently decompressing .gz files.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var in io.Reader = f
	closers := []io.Closer{f}
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		in = gz
		closers = append([]io.Closer{gz}, closers...)
	}

	r := New(in)
	r.closers = closers
	return r, nil
}

// New wraps an already-open FASTQ stream.
func New(in io.Reader) *Reader {
	t := linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger)
	return &Reader{sc: seqio.NewScanner(fastq.NewReader(in, t))}
}

// Next returns the next read, or io.EOF when the stream ends.
func (r *Reader) Next() (nanocov.ReadRecord, error) {
	if r.sc.Next() {
		return nanocov.ReadRecord{
			LengthBP: int64(r.sc.Seq().Len()),
			QCPass:   true,
		}, nil
	}
	if err := r.sc.Error(); err != nil && err != io.EOF {
		return nanocov.ReadRecord{}, pfx.Err(err)
	}
	return nanocov.ReadRecord{}, io.EOF
}

// Close releases the underlying file and any decompressor.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
