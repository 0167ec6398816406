// Package instr defines the per-instruction record that flows through the
// pipeline driver, and the small set of sentinels the rest of the module
// uses to talk about registers and stage timestamps.
package instr

import "fmt"

// None is the sentinel register index meaning "no register" for a source or
// destination slot. It is also a valid op-code value meaning "use FU class 1".
const None int32 = -1

// Unset is the sentinel cycle value for a stage timestamp that has not
// happened yet.
const Unset uint64 = 0

// NumRegs is the size of the architectural register file.
const NumRegs = 128

// FUClass identifies one of the three function-unit classes.
type FUClass int

// The three function-unit classes an instruction can be scheduled onto.
const (
	FUClass0 FUClass = 0
	FUClass1 FUClass = 1
	FUClass2 FUClass = 2
)

// ResolveFUClass maps a trace op-code to the function-unit class that will
// execute it. An op-code of None (-1) is remapped to class 1. Any other
// value outside {-1,0,1,2} is undefined input and is a defect in the trace
// reader, not a runtime condition.
func ResolveFUClass(opCode int32) FUClass {
	if opCode == None {
		return FUClass1
	}

	switch opCode {
	case 0:
		return FUClass0
	case 1:
		return FUClass1
	case 2:
		return FUClass2
	default:
		panic(fmt.Sprintf("instr: op-code %d is outside {-1,0,1,2}", opCode))
	}
}

// Record is one in-flight instruction. Fields mirror proc_inst_t in
// original_source/procsim.hpp, with stage timestamps defaulting to Unset;
// register slots take the values passed to New.
type Record struct {
	// Tag is the monotonically assigned, 1-based sequence number.
	Tag uint64

	// InstAddr is the opaque originating address, reported only.
	InstAddr uint32

	// OpCode is the raw trace op-code, in {-1, 0, 1, 2}.
	OpCode int32

	// SrcReg holds the two source register indices, each None or in [0,128).
	SrcReg [2]int32

	// DestReg is the destination register index, None or in [0,128).
	DestReg int32

	// FUClass is the resolved function-unit class for this instruction.
	FUClass FUClass

	// Stage timestamps, each Unset until the stage runs.
	FetchCycle       uint64
	DispatchCycle    uint64
	ScheduleCycle    uint64
	ExecuteCycle     uint64
	CompleteCycle    uint64
	StateUpdateCycle uint64

	// SrcReady holds the two source-operand ready bits. Once set, a bit is
	// never cleared again — readiness is sticky.
	SrcReady [2]bool

	// Fired is true once the instruction has been issued to a function
	// unit.
	Fired bool

	// ExecutionComplete is true once the one-cycle execution latency has
	// elapsed, independent of whether a result bus was available yet.
	ExecutionComplete bool
}

// New creates a fresh Record for the given tag and trace fields, with all
// stage timestamps Unset and both control flags false, ready for Fetch.
func New(tag uint64, instAddr uint32, opCode int32, src0, src1, dest int32) *Record {
	return &Record{
		Tag:      tag,
		InstAddr: instAddr,
		OpCode:   opCode,
		SrcReg:   [2]int32{src0, src1},
		DestReg:  dest,
		FUClass:  ResolveFUClass(opCode),
	}
}

// AllSourcesReady reports whether both source operands are ready to read.
func (r *Record) AllSourcesReady() bool {
	return r.SrcReady[0] && r.SrcReady[1]
}
