package stats_test

import (
	"testing"

	"github.com/sarchlab/procsim/stats"
)

func TestReportBeforeCycleCountIsZeroed(t *testing.T) {
	a := stats.New()
	r := a.Report()

	if r.CycleCount != 0 || r.AvgInstFired != 0 {
		t.Errorf("got %+v, want zeroed report", r)
	}
}

func TestAccumulatorDerivesAverages(t *testing.T) {
	a := stats.New()

	a.SampleDispatchSize(0)
	a.SampleDispatchSize(2)
	a.SampleDispatchSize(4)
	a.RecordFired()
	a.RecordFired()
	a.RecordRetired()
	a.SetCycleCount(3)

	r := a.Report()

	if r.AvgInstFired != 2.0/3.0 {
		t.Errorf("AvgInstFired = %v, want %v", r.AvgInstFired, 2.0/3.0)
	}
	if r.AvgInstRetired != 1.0/3.0 {
		t.Errorf("AvgInstRetired = %v, want %v", r.AvgInstRetired, 1.0/3.0)
	}
	if r.AvgDispSize != 2.0 {
		t.Errorf("AvgDispSize = %v, want 2.0", r.AvgDispSize)
	}
	if r.MaxDispSize != 4 {
		t.Errorf("MaxDispSize = %d, want 4", r.MaxDispSize)
	}
	if r.RetiredInstructions != 1 {
		t.Errorf("RetiredInstructions = %d, want 1", r.RetiredInstructions)
	}
}

func TestTotalRetired(t *testing.T) {
	a := stats.New()
	a.RecordRetired()
	a.RecordRetired()

	if got := a.TotalRetired(); got != 2 {
		t.Errorf("TotalRetired() = %d, want 2", got)
	}
}
