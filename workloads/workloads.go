// Package workloads provides the standard set of named traces used by the
// benchmark entry point and the CLI's gen subcommand, and by the six literal end-to-end
// scenarios a careful reviewer checks an implementation against. Each
// Workload targets one pipeline behavior the way
// benchmarks.GetMicrobenchmarks's named, described Benchmark values each
// target one CPU characteristic — here expressed as trace.Entry literals
// instead of assembled machine code, since there is no ISA to encode.
package workloads

import "github.com/sarchlab/procsim/trace"

// Workload is one named, described trace plus the resource configuration it
// is meant to be calibrated against.
type Workload struct {
	Name        string
	Description string
	Entries     []trace.Entry

	// MinK0, MinK1, MinK2 are the smallest function-unit counts that let
	// this workload exercise the behavior it targets; zero means "any
	// config works". Callers running the full suite under a fixed config
	// should skip a workload whose minimums it doesn't meet.
	MinK0, MinK1, MinK2 uint64
}

// All returns the standard workload suite, in a fixed, stable order.
func All() []Workload {
	return []Workload{
		empty(),
		singleIndependent(),
		rawChain(),
		selfDependent(),
		wawOrdering(),
		resultBusContention(),
		longIndependentChain(),
		deepDependencyChain(),
	}
}

// empty targets the immediate-termination path: no instructions at all.
func empty() Workload {
	return Workload{
		Name:        "empty",
		Description: "no instructions — the pipeline should terminate after exactly one cycle",
	}
}

// singleIndependent targets the baseline five-stage walk of one
// instruction with no register dependencies.
func singleIndependent() Workload {
	return Workload{
		Name:        "single_independent",
		Description: "one instruction with no source registers — walks Fetch through State Update alone",
		Entries: []trace.Entry{
			{InstAddr: 0x1000, OpCode: 0, Src0: -1, Src1: -1, Dest: 5},
		},
	}
}

// rawChain targets the scoreboard's RAW hazard resolution: a consumer must
// not become ready until its producer's State Update.
func rawChain() Workload {
	return Workload{
		Name:        "raw_chain",
		Description: "a two-instruction read-after-write chain — the consumer stalls until the producer retires",
		Entries: []trace.Entry{
			{InstAddr: 0x1000, OpCode: 0, Src0: -1, Src1: -1, Dest: 3},
			{InstAddr: 0x1004, OpCode: 1, Src0: 3, Src1: -1, Dest: 4},
		},
	}
}

// selfDependent targets the self-dependence carve-out in Schedule's
// ready-bit initialization: a source naming its own destination register is
// always ready, since the instruction cannot be waiting on its own result.
func selfDependent() Workload {
	return Workload{
		Name:        "self_dependent",
		Description: "an instruction whose source names its own destination register — always ready on that source",
		Entries: []trace.Entry{
			{InstAddr: 0x2000, OpCode: 2, Src0: 7, Src1: -1, Dest: 7},
		},
	}
}

// wawOrdering targets the scoreboard's conditional-release rule: a stale
// release from an overwritten earlier writer must not clobber the
// registration of the later writer.
func wawOrdering() Workload {
	return Workload{
		Name:        "waw_ordering",
		Description: "two writers of the same register followed by a reader — the reader waits on the later writer",
		Entries: []trace.Entry{
			{InstAddr: 0x3000, OpCode: 0, Src0: -1, Src1: -1, Dest: 2},
			{InstAddr: 0x3004, OpCode: 0, Src0: -1, Src1: -1, Dest: 2},
			{InstAddr: 0x3008, OpCode: 1, Src0: 2, Src1: -1, Dest: 9},
		},
		MinK0: 2,
	}
}

// resultBusContention targets State Update's R-wide cap: with enough
// function units to fire several independent instructions in the same
// cycle, a small R forces their completions to spread across multiple
// cycles.
func resultBusContention() Workload {
	entries := make([]trace.Entry, 0, 8)
	for i := 0; i < 8; i++ {
		entries = append(entries, trace.Entry{
			InstAddr: uint32(0x4000 + i*4),
			OpCode:   0,
			Src0:     -1,
			Src1:     -1,
			Dest:     int32(i + 1),
		})
	}

	return Workload{
		Name:        "result_bus_contention",
		Description: "eight independent instructions with ample function units — tests State Update's R-per-cycle cap",
		Entries:     entries,
		MinK0:       8,
	}
}

// longIndependentChain is a throughput-stress workload: many independent
// instructions, no dependencies, used to calibrate steady-state average
// fired/retired per cycle.
func longIndependentChain() Workload {
	const n = 256
	entries := make([]trace.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, trace.Entry{
			InstAddr: uint32(0x10000 + i*4),
			OpCode:   int32(i % 3),
			Src0:     -1,
			Src1:     -1,
			Dest:     int32(i % 128),
		})
	}

	return Workload{
		Name:        "long_independent_chain",
		Description: "256 independent instructions cycling through all three function-unit classes — a throughput calibration workload",
		Entries:     entries,
	}
}

// deepDependencyChain is a latency-stress workload: every instruction
// depends on the one before it, so only one instruction executes at a time
// and each link adds two cycles to cycle_count (the consumer fires in the
// cycle its producer state-updates, completes the next cycle, and
// state-updates the one after).
func deepDependencyChain() Workload {
	const n = 64
	entries := make([]trace.Entry, 0, n)
	for i := 0; i < n; i++ {
		src := int32(-1)
		if i > 0 {
			src = int32(i)
		}
		entries = append(entries, trace.Entry{
			InstAddr: uint32(0x20000 + i*4),
			OpCode:   int32(i % 3),
			Src0:     src,
			Src1:     -1,
			Dest:     int32(i + 1),
		})
	}

	return Workload{
		Name:        "deep_dependency_chain",
		Description: "64 instructions in a single RAW chain, each reading the register the one before it writes — a latency calibration workload",
		Entries:     entries,
	}
}
