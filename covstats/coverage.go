package covstats

import (
	"sort"

	"github.com/montanaflynn/stats"

	"nanocov/samplesheet"
)

// CoverageResult is the final per-sample row. Computed once after all input
// has been consumed; immutable afterward.
type CoverageResult struct {
	SampleID     string
	Barcode      string
	GenomeSizeBP int64

	TotalBases int64
	ReadCount  int64

	// CoverageX is total yield against expected genome size. It is
	// computed from all reads, not only threshold qualifiers: coverage
	// answers "how much was sequenced", the threshold metrics answer
	// "how long were the reads".
	CoverageX float64

	MeanReadLength float64

	// Distribution metrics; meaningful only when HasDistribution is set,
	// which requires per-read input and at least one read.
	MedianReadLength       float64
	N50                    int64
	PctReadsAboveThreshold float64
	HasDistribution        bool
}

// Compute produces exactly one CoverageResult per sample sheet row, in
// sheet order. Samples with no reads get zero totals and unavailable
// distribution metrics rather than being dropped. Stats keyed to samples
// the sheet does not know are returned separately as orphans.
func Compute(reg *samplesheet.Registry, agg *Aggregator) ([]CoverageResult, map[string]SampleStats) {
	results := make([]CoverageResult, 0, reg.Len())
	claimed := make(map[string]bool, reg.Len())

	for _, s := range reg.Samples() {
		key := s.Key()
		claimed[key] = true

		st := agg.stats[key]
		if st == nil && reg.Len() == 1 {
			// Unbarcoded input attributes every read to the empty key; a
			// single-sample sheet claims those reads.
			st = agg.stats[""]
			claimed[""] = true
		}
		if st == nil {
			st = &SampleStats{}
		}
		results = append(results, resultFor(s, st))
	}

	orphans := make(map[string]SampleStats)
	for key, st := range agg.stats {
		if !claimed[key] {
			orphans[key] = *st
		}
	}

	return results, orphans
}

func resultFor(s samplesheet.Sample, st *SampleStats) CoverageResult {
	res := CoverageResult{
		SampleID:     s.ID,
		Barcode:      s.Barcode,
		GenomeSizeBP: s.GenomeSizeBP,
		TotalBases:   st.TotalBases,
		ReadCount:    st.ReadCount,
	}

	if s.GenomeSizeBP > 0 {
		res.CoverageX = float64(st.TotalBases) / float64(s.GenomeSizeBP)
	}
	if st.ReadCount > 0 {
		res.MeanReadLength = float64(st.TotalBases) / float64(st.ReadCount)
	}

	if !st.HasLengths || st.ReadCount == 0 {
		return res
	}

	res.HasDistribution = true
	res.PctReadsAboveThreshold = 100 * float64(st.ReadsAboveThreshold) / float64(st.ReadCount)
	res.N50 = n50(st.Lengths, st.TotalBases)

	med, err := stats.Median(toFloats(st.Lengths))
	if err == nil {
		res.MedianReadLength = med
	}

	return res
}

// n50 is the length at which the descending cumulative length sum first
// reaches half of the total yield.
func n50(lengths []int64, totalBases int64) int64 {
	if len(lengths) == 0 {
		return 0
	}

	sorted := append([]int64(nil), lengths...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	var csum int64
	for _, l := range sorted {
		csum += l
		if 2*csum >= totalBases {
			return l
		}
	}
	return sorted[len(sorted)-1]
}

func toFloats(v []int64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
