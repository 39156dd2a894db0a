package main

import (
	"errors"
	"fmt"
)

var errSourceRequired = errors.New("exactly one of --summary, --json, or --fastq is required")

// validateSources enforces the single-input-mode contract. It looks only at
// the flag values, so a bad invocation fails before any file is opened.
func validateSources(summary, json, fastq string) error {
	n := 0
	for _, p := range []string{summary, json, fastq} {
		if p != "" {
			n++
		}
	}
	if n != 1 {
		return errSourceRequired
	}
	return nil
}

// checkExperimentID guards against pairing a sample sheet with the wrong
// run's report. Either side may be unlabelled; only a disagreement between
// two labelled sides is an error.
func checkExperimentID(sheet, report string) error {
	if sheet == "" || report == "" || sheet == report {
		return nil
	}
	return fmt.Errorf("run mismatch: sample sheet experiment_id %q != report protocol_group_id %q", sheet, report)
}
