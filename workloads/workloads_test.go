package workloads_test

import (
	"bytes"
	"testing"

	"github.com/sarchlab/procsim/config"
	"github.com/sarchlab/procsim/report"
	"github.com/sarchlab/procsim/sim"
	"github.com/sarchlab/procsim/trace"
	"github.com/sarchlab/procsim/workloads"
)

func TestAllRunToCompletion(t *testing.T) {
	for _, w := range workloads.All() {
		t.Run(w.Name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if w.MinK0 > cfg.K0 {
				cfg.K0 = w.MinK0
			}
			if w.MinK1 > cfg.K1 {
				cfg.K1 = w.MinK1
			}
			if w.MinK2 > cfg.K2 {
				cfg.K2 = w.MinK2
			}

			s := sim.New(cfg, trace.NewSliceReader(w.Entries), report.New(&bytes.Buffer{}))
			rep := s.Run()

			if rep.RetiredInstructions != uint64(len(w.Entries)) {
				t.Errorf("%s: retired %d instructions, want %d", w.Name, rep.RetiredInstructions, len(w.Entries))
			}
			if rep.CycleCount == 0 {
				t.Errorf("%s: cycle count is 0", w.Name)
			}
		})
	}
}

func TestNamesAreUniqueAndNonEmpty(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range workloads.All() {
		if w.Name == "" {
			t.Error("workload with empty Name")
		}
		if w.Description == "" {
			t.Errorf("workload %q has empty Description", w.Name)
		}
		if seen[w.Name] {
			t.Errorf("duplicate workload name %q", w.Name)
		}
		seen[w.Name] = true
	}
}
