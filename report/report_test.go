package report_test

import (
	"bytes"
	"testing"

	"github.com/sarchlab/procsim/report"
)

func TestReporterEmitsTabSeparatedLines(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf)

	r.Emit(1, report.Fetched, 1)
	r.Emit(5, report.StateUpdate, 1)
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := "1\tFETCHED\t1\n5\tSTATE UPDATE\t1\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReporterBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf)

	r.Emit(1, report.Dispatched, 2)
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes written before Flush, got %d", buf.Len())
	}

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected bytes written after Flush")
	}
}
