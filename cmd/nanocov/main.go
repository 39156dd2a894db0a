// nanocov computes per-sample genome coverage and read length statistics
// for a sequencing run, joining the run's output against its sample sheet.
// Input is exactly one of: a per-read sequencing summary (--summary), an
// aggregate run report (--json), or basecalled reads (--fastq).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"nanocov"
	"nanocov/buildinfo"
	"nanocov/covstats"
	"nanocov/fastqsrc"
	"nanocov/report"
	"nanocov/samplesheet"
	"nanocov/seqsummary"
	"nanocov/yieldreport"
)

func main() {
	var (
		summaryPath = flag.String("summary", "", "per-read sequencing summary (TSV)")
		jsonPath    = flag.String("json", "", "aggregate run report (JSON)")
		fastqPath   = flag.String("fastq", "", "basecalled reads (FASTQ, optionally gzipped)")
		threshold   = flag.Int64("threshold", covstats.DefaultThresholdBP, "read length qualification cutoff in bp")
		qcPassOnly  = flag.Bool("qc-pass-only", false, "count only reads that passed basecaller filtering")
		asCSV       = flag.Bool("csv", false, "emit CSV instead of a table")
		xlsxPath    = flag.String("xlsx", "", "also write the report to this xlsx workbook")
		showHist    = flag.Bool("hist", false, "print a read length histogram (per-read input only)")
		below       = flag.Float64("below", 0, "only report samples with coverage below this value")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nanocov [flags] <samplesheet>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	buildinfo.LogToStderr()

	// The input mode must be unambiguous before any file is touched.
	if err := validateSources(*summaryPath, *jsonPath, *fastqPath); err != nil {
		log.Fatalln(err)
	}

	reg, err := samplesheet.Load(nanocov.ExpandHome(flag.Arg(0)))
	if err != nil {
		log.Fatalln(err)
	}

	agg := covstats.NewAggregator(covstats.Config{
		ThresholdBP:   *threshold,
		RequireQCPass: *qcPassOnly,
	})

	switch {
	case *summaryPath != "":
		r, err := seqsummary.Open(nanocov.ExpandHome(*summaryPath))
		if err != nil {
			log.Fatalln(err)
		}
		if err := agg.Consume(r); err != nil {
			r.Close()
			log.Fatalln(err)
		}
		if n := r.Skipped(); n > 0 {
			log.Printf("Warning: skipped %d unparseable summary line(s)", n)
		}
		r.Close()

	case *fastqPath != "":
		r, err := fastqsrc.Open(nanocov.ExpandHome(*fastqPath))
		if err != nil {
			log.Fatalln(err)
		}
		if err := agg.Consume(r); err != nil {
			r.Close()
			log.Fatalln(err)
		}
		r.Close()

	case *jsonPath != "":
		rep, err := yieldreport.Load(nanocov.ExpandHome(*jsonPath))
		if err != nil {
			log.Fatalln(err)
		}
		if err := checkExperimentID(reg.ExperimentID(), rep.ExperimentID); err != nil {
			log.Fatalln(err)
		}
		for barcode, t := range rep.Totals() {
			agg.AddTotals(barcode, t.Bases, t.Reads)
		}
	}

	results, orphans := covstats.Compute(reg, agg)
	if len(orphans) > 0 {
		log.Printf("Warning: %d barcode(s) in input absent from the sample sheet:", len(orphans))
		for _, l := range report.OrphanLines(orphans) {
			log.Printf("  %s", l)
		}
	}
	opts := report.Options{ThresholdBP: agg.Threshold(), Below: *below}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *asCSV {
		err = report.WriteCSV(out, results, opts)
	} else {
		err = report.WriteTable(out, results, orphans, opts)
	}
	if err != nil {
		log.Fatalln(err)
	}

	if *showHist {
		if err := report.WriteHistogram(out, agg.Lengths()); err != nil {
			log.Fatalln(err)
		}
	}

	if *xlsxPath != "" {
		if err := report.WriteXLSX(*xlsxPath, results, opts); err != nil {
			log.Fatalln(err)
		}
	}
}
