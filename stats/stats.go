// Package stats implements the statistics accumulator: running sums and
// maxima over cycles, and the final three headline averages.
package stats

// Accumulator collects the raw counters the driver updates every cycle.
// The final report's averages are derived from these at Complete time, the
// way timing/pipeline.Statistics.CPI() derives a ratio from raw counters
// rather than maintaining a running average directly.
type Accumulator struct {
	totalFired        uint64
	totalRetired      uint64
	totalDispatchSize uint64
	maxDispatchSize   uint64
	cycleCount        uint64
}

// New returns a zeroed Accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// SampleDispatchSize records the dispatch-queue occupancy sampled at the
// start of a cycle, before that cycle's Schedule/Dispatch phases can change
// it.
func (a *Accumulator) SampleDispatchSize(size uint64) {
	a.totalDispatchSize += size
	if size > a.maxDispatchSize {
		a.maxDispatchSize = size
	}
}

// RecordFired increments the fired counter, once per instruction that wins
// a function unit in the Fire phase.
func (a *Accumulator) RecordFired() {
	a.totalFired++
}

// RecordRetired increments the retired counter, once per instruction that
// completes State Update.
func (a *Accumulator) RecordRetired() {
	a.totalRetired++
}

// SetCycleCount stamps the terminal cycle count, once the driver loop
// exits.
func (a *Accumulator) SetCycleCount(cycles uint64) {
	a.cycleCount = cycles
}

// TotalRetired returns the raw retired-instruction count.
func (a *Accumulator) TotalRetired() uint64 {
	return a.totalRetired
}

// Report is the final summary of one simulation run: the three headline
// averages plus the maximum dispatch-queue size and the raw totals.
type Report struct {
	AvgInstFired        float64
	AvgInstRetired      float64
	AvgDispSize         float64
	MaxDispSize         uint64
	RetiredInstructions uint64
	CycleCount          uint64

	// RunID identifies which run produced this report. Stamped by the
	// caller that holds the run identifier; the accumulator itself has no
	// notion of it.
	RunID string
}

// Report computes the final statistics. Calling it before SetCycleCount
// returns CycleCount 0 and zero averages (never NaN), since the averages
// below divide by the cycle count; MaxDispSize and RetiredInstructions are
// still filled in from the counters.
func (a *Accumulator) Report() Report {
	cycles := a.cycleCount
	if cycles == 0 {
		return Report{
			MaxDispSize:         a.maxDispatchSize,
			RetiredInstructions: a.totalRetired,
			CycleCount:          0,
		}
	}

	return Report{
		AvgInstFired:        float64(a.totalFired) / float64(cycles),
		AvgInstRetired:      float64(a.totalRetired) / float64(cycles),
		AvgDispSize:         float64(a.totalDispatchSize) / float64(cycles),
		MaxDispSize:         a.maxDispatchSize,
		RetiredInstructions: a.totalRetired,
		CycleCount:          cycles,
	}
}
