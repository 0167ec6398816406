// Package sim implements the pipeline driver: the cycle loop that
// orchestrates Fetch, Dispatch, Schedule, Fire/Execute, Complete and State
// Update across two half-cycle phases per cycle. Simulator is an explicit
// value whose methods mutate its own fields — no package-level mutable
// state, unlike the file-scope globals in original_source/procsim.cpp.
package sim

import (
	"github.com/rs/xid"

	"github.com/sarchlab/procsim/config"
	"github.com/sarchlab/procsim/dispatchq"
	"github.com/sarchlab/procsim/funcunit"
	"github.com/sarchlab/procsim/instr"
	"github.com/sarchlab/procsim/report"
	"github.com/sarchlab/procsim/rs"
	"github.com/sarchlab/procsim/scoreboard"
	"github.com/sarchlab/procsim/stats"
	"github.com/sarchlab/procsim/trace"
)

// ProgressFunc is invoked once per cycle, after Fetch, with the cycle
// number, the reservation station's current occupancy and capacity, and
// the dispatch queue's current length. It is the hook the CLI uses to
// reproduce original_source/procsim.cpp's every-10000-cycles
// "Cycle N: RS=x/y, DQ=z" stderr line — the driver itself never writes to
// any diagnostic stream.
type ProgressFunc func(cycle uint64, rsLen, rsCap, dqLen int)

// Option configures a Simulator at construction time, the same
// functional-options shape timing/pipeline.PipelineOption uses for
// WithSyscallHandler / WithLatencyTable.
type Option func(*Simulator)

// WithProgressHook installs a per-cycle progress callback.
func WithProgressHook(fn ProgressFunc) Option {
	return func(s *Simulator) { s.progress = fn }
}

// Simulator holds all pipeline state: the scoreboard, function-unit pools,
// reservation station, dispatch queue, fetch buffer, and the counters
// needed to assign tags and advance cycles. Construct with New.
type Simulator struct {
	cfg *config.SimulatorConfig

	reader   trace.Reader
	reporter *report.Reporter
	accum    *stats.Accumulator
	progress ProgressFunc

	scoreboard *scoreboard.Scoreboard
	funcUnits  *funcunit.Pool
	station    *rs.Station
	dispatchQ  *dispatchq.Queue
	fetchBuf   []*instr.Record

	cycle        uint64
	nextTag      uint64
	doneFetching bool

	// RunID is a sortable, globally-unique identifier stamped at
	// construction time, surfaced in the final report so repeated runs in
	// a saved log can be told apart.
	RunID string
}

// New constructs a Simulator ready to Run. cfg must already satisfy
// Validate; New panics if it does not.
func New(cfg *config.SimulatorConfig, reader trace.Reader, reporter *report.Reporter, opts ...Option) *Simulator {
	if err := cfg.Validate(); err != nil {
		panic("sim: invalid configuration: " + err.Error())
	}

	s := &Simulator{
		cfg:        cfg,
		reader:     reader,
		reporter:   reporter,
		accum:      stats.New(),
		scoreboard: scoreboard.New(),
		funcUnits:  funcunit.New(int(cfg.K0), int(cfg.K1), int(cfg.K2)),
		station:    rs.New(int(cfg.RSSize())),
		dispatchQ:  dispatchq.New(),
		nextTag:    1,
		RunID:      xid.New().String(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Cycle returns the current cycle number.
func (s *Simulator) Cycle() uint64 {
	return s.cycle
}

// Done reports whether the pipeline has drained: fetch is finished and the
// fetch buffer, dispatch queue, and reservation station are all empty.
func (s *Simulator) Done() bool {
	return s.doneFetching && len(s.fetchBuf) == 0 && s.dispatchQ.Empty() && s.station.Len() == 0
}

// Run advances the simulator one cycle at a time until Done, flushes the
// event reporter, and returns the final statistics report. It combines the
// roles of run_proc and complete_proc in original_source/procsim.cpp.
func (s *Simulator) Run() stats.Report {
	for !s.Done() {
		s.Tick()
	}

	if s.reporter != nil {
		_ = s.reporter.Flush()
	}

	s.accum.SetCycleCount(s.cycle)
	rep := s.accum.Report()
	rep.RunID = s.RunID
	return rep
}

// Tick advances the simulator by exactly one cycle, running both
// half-cycles of the pipeline in order. It is exposed directly so tests
// and the CLI can step the simulator incrementally.
func (s *Simulator) Tick() {
	s.cycle++

	// Dispatch-queue occupancy is sampled at the start of the cycle,
	// before this cycle's Schedule/Dispatch phases can change it.
	s.accum.SampleDispatchSize(uint64(s.dispatchQ.Len()))

	toRetire := s.phaseStateUpdate()
	s.phaseCompleteExecution()
	s.phaseReadyPropagation()
	s.phaseFire()

	s.phaseSchedule()
	s.phaseDispatch()
	s.phaseEvict(toRetire)
	s.phaseFetch()
}

// emit is a nil-safe wrapper so a Simulator built with a nil reporter (rare,
// mostly for internal benchmarking) doesn't need a nil check at every call
// site.
func (s *Simulator) emit(stage report.Stage, tag uint64) {
	if s.reporter != nil {
		s.reporter.Emit(s.cycle, stage, tag)
	}
}
