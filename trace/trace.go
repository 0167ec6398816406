// Package trace implements the external trace-reader collaborator (spec
// §1, §6): a boolean-returning pull interface over decoded instruction
// records, plus a line-oriented file implementation and an in-memory slice
// implementation for tests and for the workloads package.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is one decoded instruction record as read from the trace: op-code
// in {-1,0,1,2}, each register in {-1} ∪ [0,128).
type Entry struct {
	InstAddr uint32
	OpCode   int32
	Src0     int32
	Src1     int32
	Dest     int32
}

// Reader is the pull interface Fetch uses: each call either populates next
// with a fresh entry and returns true, or returns false on end-of-trace. A
// malformed or short read is indistinguishable from clean end-of-trace at
// this boundary — Read never returns an error.
type Reader interface {
	Read(next *Entry) bool
}

// SliceReader replays a fixed, in-memory list of entries — the trace
// reader used by tests and by the workloads package, which builds traces
// as Go literals instead of files.
type SliceReader struct {
	entries []Entry
	pos     int
}

// NewSliceReader returns a Reader that yields entries in order, then
// signals end-of-trace.
func NewSliceReader(entries []Entry) *SliceReader {
	return &SliceReader{entries: entries}
}

// Read implements Reader.
func (r *SliceReader) Read(next *Entry) bool {
	if r.pos >= len(r.entries) {
		return false
	}
	*next = r.entries[r.pos]
	r.pos++
	return true
}

// FileReader reads whitespace-separated trace lines from an underlying
// io.Reader: "<instruction_address-hex> <op_code> <src0> <src1> <dest>",
// one instruction per line, matching the field order and sentinel
// convention of proc_inst_t in original_source/procsim.hpp. Blank lines
// and lines starting with '#' are skipped, the same convention the pack's
// other trace-driven simulators (e.g. the dynamic-scheduling reference in
// other_examples) use for commentable trace files.
type FileReader struct {
	scanner *bufio.Scanner
}

// NewFileReader wraps r as a FileReader.
func NewFileReader(r io.Reader) *FileReader {
	return &FileReader{scanner: bufio.NewScanner(r)}
}

// OpenFileReader opens path and wraps it as a FileReader. The caller owns
// the returned file's lifetime via the returned io.Closer.
func OpenFileReader(path string) (*FileReader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	return NewFileReader(f), f, nil
}

// Read implements Reader. Any parse failure is folded into a false return,
// identical to a clean end-of-trace.
func (r *FileReader) Read(next *Entry) bool {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 5 {
			return false
		}

		addr, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 32)
		if err != nil {
			return false
		}
		op, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return false
		}
		src0, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return false
		}
		src1, err := strconv.ParseInt(fields[3], 10, 32)
		if err != nil {
			return false
		}
		dest, err := strconv.ParseInt(fields[4], 10, 32)
		if err != nil {
			return false
		}

		next.InstAddr = uint32(addr)
		next.OpCode = int32(op)
		next.Src0 = int32(src0)
		next.Src1 = int32(src1)
		next.Dest = int32(dest)
		return true
	}
	return false
}

// WriteTrace writes entries to w in the FileReader's line format, for the
// "procsim gen" CLI subcommand and for this package's round-trip test.
func WriteTrace(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "0x%x %d %d %d %d\n", e.InstAddr, e.OpCode, e.Src0, e.Src1, e.Dest); err != nil {
			return fmt.Errorf("failed to write trace entry: %w", err)
		}
	}
	return bw.Flush()
}
