// Package nanocov holds the shared primitives for the run coverage tools:
// the per-read record that the input readers emit and the error taxonomy
// that separates fatal input problems from per-row and per-sample ones.
package nanocov

import "errors"

// ReadRecord is one basecalled read reduced to the fields coverage
// accounting needs. Records are folded into running totals by the
// aggregator and discarded, so memory stays bounded regardless of how
// large the input file is.
type ReadRecord struct {
	// LengthBP is the basecalled read length in base pairs.
	LengthBP int64
	// Sample is the barcode or sample key the read was demultiplexed to.
	// Empty means the run was not barcoded.
	Sample string
	// QCPass reports whether the read passed the basecaller's filtering.
	QCPass bool
}

// ReadSource is a lazy, finite, non-restartable sequence of reads. Next
// returns io.EOF once the input is exhausted; any other error is fatal to
// the run.
type ReadSource interface {
	Next() (ReadRecord, error)
	Close() error
}

// Input error taxonomy. Readers wrap these with context via fmt.Errorf and
// %w so callers can branch with errors.Is.
var (
	// ErrMalformedInput marks a file whose structure cannot be parsed at
	// all (as opposed to single bad rows, which are skipped and tallied).
	ErrMalformedInput = errors.New("malformed input")
	// ErrDuplicateSample marks a sample sheet that repeats a sample id or
	// barcode.
	ErrDuplicateSample = errors.New("duplicate sample")
	// ErrInvalidGenomeSize marks a non-numeric or non-positive expected
	// genome size.
	ErrInvalidGenomeSize = errors.New("invalid genome size")
	// ErrUnrecognizedFormat marks a header that does not look like any
	// supported input format.
	ErrUnrecognizedFormat = errors.New("unrecognized format")
	// ErrUnknownSample marks a lookup for a sample the sheet does not
	// carry.
	ErrUnknownSample = errors.New("unknown sample")
)
