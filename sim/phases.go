package sim

import (
	"sort"

	"github.com/sarchlab/procsim/instr"
	"github.com/sarchlab/procsim/report"
	"github.com/sarchlab/procsim/trace"
)

// phaseStateUpdate is first-half step (a). It selects up to cfg.R
// execution-complete, not-yet-retired RS entries, ordered by
// (complete_cycle, tag) ascending, releases their function unit and
// (conditionally) their destination register, stamps state_update_cycle,
// and returns their tags for eviction in step (g). The RS entry itself is
// not removed here — it stays in the RS, and counts toward its capacity,
// until step (g), after this cycle's Schedule has run.
func (s *Simulator) phaseStateUpdate() []uint64 {
	var candidates []*instr.Record
	s.station.Each(func(rec *instr.Record) {
		if rec.ExecutionComplete && rec.StateUpdateCycle == instr.Unset {
			candidates = append(candidates, rec)
		}
	})

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CompleteCycle != candidates[j].CompleteCycle {
			return candidates[i].CompleteCycle < candidates[j].CompleteCycle
		}
		return candidates[i].Tag < candidates[j].Tag
	})

	if uint64(len(candidates)) > s.cfg.R {
		candidates = candidates[:s.cfg.R]
	}

	retired := make([]uint64, 0, len(candidates))
	for _, rec := range candidates {
		s.funcUnits.Release(int(rec.FUClass))
		if rec.DestReg != instr.None {
			s.scoreboard.Release(rec.DestReg, rec.Tag)
		}
		rec.StateUpdateCycle = s.cycle
		s.accum.RecordRetired()
		s.emit(report.StateUpdate, rec.Tag)
		retired = append(retired, rec.Tag)
	}

	return retired
}

// phaseCompleteExecution is first-half step (b): any fired, not-yet-complete
// entry whose execute_cycle is strictly before the current cycle completes
// now (single-cycle execute latency, spec invariant P1).
func (s *Simulator) phaseCompleteExecution() {
	var completing []*instr.Record
	s.station.Each(func(rec *instr.Record) {
		if rec.Fired && !rec.ExecutionComplete && rec.ExecuteCycle < s.cycle {
			completing = append(completing, rec)
		}
	})

	sort.Slice(completing, func(i, j int) bool { return completing[i].Tag < completing[j].Tag })

	for _, rec := range completing {
		rec.CompleteCycle = s.cycle
		rec.ExecutionComplete = true
		s.emit(report.Executed, rec.Tag)
	}
}

// phaseReadyPropagation is first-half step (c): every not-yet-fired RS
// entry re-checks each not-yet-ready source against the scoreboard. A
// source becomes ready the instant the scoreboard reports it so — which
// may be the same cycle its producer's State Update ran, since (a)
// precedes (c) within the same first half.
func (s *Simulator) phaseReadyPropagation() {
	s.station.Each(func(rec *instr.Record) {
		if rec.Fired {
			return
		}
		for i := 0; i < 2; i++ {
			if rec.SrcReady[i] {
				continue
			}
			if s.scoreboard.IsReady(rec.SrcReg[i]) {
				rec.SrcReady[i] = true
			}
		}
	})
}

// phaseFire is first-half step (d): every not-yet-fired, all-sources-ready
// RS entry, processed in tag order, attempts to acquire a function unit of
// its class. No event is emitted on firing alone — only Complete
// Execution, one cycle later at minimum, reports EXECUTED.
func (s *Simulator) phaseFire() {
	var ready []*instr.Record
	s.station.Each(func(rec *instr.Record) {
		if !rec.Fired && rec.AllSourcesReady() {
			ready = append(ready, rec)
		}
	})

	sort.Slice(ready, func(i, j int) bool { return ready[i].Tag < ready[j].Tag })

	for _, rec := range ready {
		if s.funcUnits.Acquire(int(rec.FUClass)) {
			rec.Fired = true
			rec.ExecuteCycle = s.cycle
			s.accum.RecordFired()
		}
	}
}

// phaseSchedule is second-half step (e): while the dispatch queue is
// non-empty and the RS has room, pop the head, initialize its
// source-ready bits against the scoreboard (a source is ready if its
// register is none, if it names its own destination register — a
// self-dependent instruction is always ready on that source — or if the
// scoreboard currently reports it ready), and push it into the RS.
func (s *Simulator) phaseSchedule() {
	for !s.dispatchQ.Empty() && s.station.Len() < s.station.Capacity() {
		rec := s.dispatchQ.PopFront()
		rec.ScheduleCycle = s.cycle

		for i := 0; i < 2; i++ {
			src := rec.SrcReg[i]
			switch {
			case src == instr.None:
				rec.SrcReady[i] = true
			case src == rec.DestReg:
				rec.SrcReady[i] = true
			default:
				rec.SrcReady[i] = s.scoreboard.IsReady(src)
			}
		}

		s.station.Add(rec)
		s.emit(report.Scheduled, rec.Tag)
	}
}

// phaseDispatch is second-half step (f): every entry currently in the
// fetch buffer (filled by the previous cycle's Fetch) claims its
// destination register on the scoreboard and moves to the dispatch queue.
func (s *Simulator) phaseDispatch() {
	for _, rec := range s.fetchBuf {
		rec.DispatchCycle = s.cycle
		if rec.DestReg != instr.None {
			s.scoreboard.Claim(rec.DestReg, rec.Tag)
		}
		s.dispatchQ.PushBack(rec)
		s.emit(report.Dispatched, rec.Tag)
	}
	s.fetchBuf = s.fetchBuf[:0]
}

// phaseEvict is second-half step (g): remove the tags State Update
// selected this cycle from the RS, freeing their slots for Schedule in
// later cycles.
func (s *Simulator) phaseEvict(tags []uint64) {
	for _, tag := range tags {
		s.station.Remove(tag)
	}
}

// phaseFetch is second-half step (h): read up to cfg.F fresh entries into
// the (now-empty) fetch buffer, assigning each a new monotonically
// increasing tag. The first failed read marks done_fetching and stops
// fetching for the rest of the run; the progress hook, if any, fires once
// per cycle regardless of whether Fetch itself produced anything.
func (s *Simulator) phaseFetch() {
	if !s.doneFetching {
		for i := uint64(0); i < s.cfg.F; i++ {
			var entry trace.Entry
			if !s.reader.Read(&entry) {
				s.doneFetching = true
				break
			}

			rec := instr.New(s.nextTag, entry.InstAddr, entry.OpCode, entry.Src0, entry.Src1, entry.Dest)
			s.nextTag++
			rec.FetchCycle = s.cycle
			s.fetchBuf = append(s.fetchBuf, rec)
			s.emit(report.Fetched, rec.Tag)
		}
	}

	if s.progress != nil {
		s.progress(s.cycle, s.station.Len(), s.station.Capacity(), s.dispatchQ.Len())
	}
}
