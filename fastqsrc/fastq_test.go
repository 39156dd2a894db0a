package fastqsrc

import (
	"io"
	"strings"
	"testing"
)

const fixture = "@read1\n" +
	"ACGT\n" +
	"+\n" +
	"IIII\n" +
	"@read2\n" +
	"ACGTACGT\n" +
	"+\n" +
	"IIIIIIII\n"

func TestNext(t *testing.T) {
	r := New(strings.NewReader(fixture))

	var lengths []int64
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if rec.Sample != "" {
			t.Fatalf("fastq reads carry no barcode, got %q", rec.Sample)
		}
		if !rec.QCPass {
			t.Fatal("fastq reads count as passing")
		}
		lengths = append(lengths, rec.LengthBP)
	}

	if len(lengths) != 2 || lengths[0] != 4 || lengths[1] != 8 {
		t.Fatalf("lengths: got %v, want [4 8]", lengths)
	}
}

func TestEmptyInput(t *testing.T) {
	r := New(strings.NewReader(""))
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}
