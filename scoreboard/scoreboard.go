// Package scoreboard tracks, for every architectural register, the tag of
// the most recently dispatched in-flight instruction that will write it.
// It resolves RAW hazards and, via its conditional release rule, WAW
// ordering.
package scoreboard

import "github.com/sarchlab/procsim/instr"

// ready is the scoreboard's internal sentinel for "no pending writer",
// distinct from instr.None which is a register-slot sentinel, not a tag.
const ready = 0

// Scoreboard is a fixed-size register -> pending-writer-tag map. The zero
// value is not usable; construct with New.
type Scoreboard struct {
	writer [instr.NumRegs]uint64
}

// New returns a Scoreboard with every register initially ready.
func New() *Scoreboard {
	return &Scoreboard{}
}

// Claim unconditionally records tag as the pending writer of reg. A later
// claim on the same register always overwrites an earlier one, so the
// scoreboard always names the latest dispatched writer, resolving WAW.
func (s *Scoreboard) Claim(reg int32, tag uint64) {
	s.writer[reg] = tag
}

// Release clears reg back to ready, but only if tag is still the register's
// recorded writer. If a later Dispatch has since overwritten the entry with
// a newer tag, that later claim is left untouched — this is what prevents a
// late State Update from clobbering a later Dispatch's claim.
func (s *Scoreboard) Release(reg int32, tag uint64) {
	if s.writer[reg] == tag {
		s.writer[reg] = ready
	}
}

// IsReady reports whether reg currently has no pending writer.
func (s *Scoreboard) IsReady(reg int32) bool {
	return s.writer[reg] == ready
}

// Writer returns the tag of the register's pending writer, or 0 if ready.
// Exposed for diagnostics and tests; the driver only needs IsReady.
func (s *Scoreboard) Writer(reg int32) uint64 {
	return s.writer[reg]
}
