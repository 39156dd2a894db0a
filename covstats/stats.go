// Package covstats folds reads into per-sample statistics and turns them,
// together with the sample sheet, into coverage results.
package covstats

import (
	"io"

	"github.com/carbocation/pfx"

	"nanocov"
)

// DefaultThresholdBP is the read-length cutoff the lab reports against.
const DefaultThresholdBP = 7000

// Config is the explicit aggregation policy. It is passed in rather than
// read from globals so the aggregator can be tested in isolation.
type Config struct {
	// ThresholdBP is the qualification cutoff; a read of exactly this
	// length qualifies. Zero or negative selects DefaultThresholdBP.
	ThresholdBP int64
	// RequireQCPass drops reads that failed basecaller filtering. The
	// default counts every read; whether failed reads belong in totals is
	// still an open call with the wet lab.
	RequireQCPass bool
}

// SampleStats accumulates one sample's running totals. Created on the first
// read attributed to the sample, mutated incrementally, never shared
// across samples.
type SampleStats struct {
	TotalBases          int64
	ReadCount           int64
	BasesAboveThreshold int64
	ReadsAboveThreshold int64
	// Lengths holds every counted read's length, kept only for the
	// median/N50 computation.
	Lengths []int64
	// HasLengths is false when the totals came from an aggregate yield
	// report, where no per-read lengths exist.
	HasLengths bool
	// SkippedQC counts reads dropped under RequireQCPass.
	SkippedQC int64
}

// Merge combines two shards of the same sample. It is commutative and
// associative, so shards may be aggregated in any order.
func (s SampleStats) Merge(o SampleStats) SampleStats {
	s.TotalBases += o.TotalBases
	s.ReadCount += o.ReadCount
	s.BasesAboveThreshold += o.BasesAboveThreshold
	s.ReadsAboveThreshold += o.ReadsAboveThreshold
	s.Lengths = append(s.Lengths, o.Lengths...)
	s.HasLengths = s.HasLengths && o.HasLengths
	s.SkippedQC += o.SkippedQC
	return s
}

// Aggregator folds a read stream (or pre-aggregated totals) into one
// SampleStats per sample key.
type Aggregator struct {
	cfg   Config
	stats map[string]*SampleStats
}

func NewAggregator(cfg Config) *Aggregator {
	if cfg.ThresholdBP <= 0 {
		cfg.ThresholdBP = DefaultThresholdBP
	}
	return &Aggregator{cfg: cfg, stats: make(map[string]*SampleStats)}
}

// Threshold returns the effective cutoff in bp.
func (a *Aggregator) Threshold() int64 { return a.cfg.ThresholdBP }

func (a *Aggregator) get(sample string, perRead bool) *SampleStats {
	st, ok := a.stats[sample]
	if !ok {
		st = &SampleStats{HasLengths: perRead}
		a.stats[sample] = st
	}
	return st
}

// Add folds one read into its sample's totals and discards it.
func (a *Aggregator) Add(rec nanocov.ReadRecord) {
	st := a.get(rec.Sample, true)

	if a.cfg.RequireQCPass && !rec.QCPass {
		st.SkippedQC++
		return
	}

	st.ReadCount++
	st.TotalBases += rec.LengthBP
	if rec.LengthBP >= a.cfg.ThresholdBP {
		st.ReadsAboveThreshold++
		st.BasesAboveThreshold += rec.LengthBP
	}
	st.Lengths = append(st.Lengths, rec.LengthBP)
}

// AddTotals folds a yield report's pre-aggregated totals for one sample.
// Distribution statistics are unavailable on this path.
func (a *Aggregator) AddTotals(sample string, bases, reads int64) {
	st := a.get(sample, false)
	st.TotalBases += bases
	st.ReadCount += reads
	st.HasLengths = false
}

// Consume drains a read source into the aggregator. The source's own error
// (anything but io.EOF) aborts the run.
func (a *Aggregator) Consume(src nanocov.ReadSource) error {
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return pfx.Err(err)
		}
		a.Add(rec)
	}
}

// Stats returns the accumulated per-sample statistics, keyed by barcode or
// sample id.
func (a *Aggregator) Stats() map[string]*SampleStats { return a.stats }

// Lengths returns every counted read length across all samples, for the
// run-level length histogram. Nil when the input had no per-read detail.
func (a *Aggregator) Lengths() []int64 {
	var all []int64
	for _, st := range a.stats {
		if !st.HasLengths {
			return nil
		}
		all = append(all, st.Lengths...)
	}
	return all
}
