// Package dispatchq implements the unbounded FIFO dispatch queue that sits
// between Dispatch and Schedule. Arrival order equals tag order because
// dispatch is in-order, but the queue itself only promises FIFO — it does
// not depend on tags being contiguous or even present.
package dispatchq

import "github.com/sarchlab/procsim/instr"

// Queue is an unbounded FIFO of *instr.Record, implemented as a
// slice-backed ring buffer — the idiomatic Go replacement for
// original_source/procsim.cpp's std::deque<proc_inst_t>.
type Queue struct {
	buf   []*instr.Record
	head  int
	count int
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{buf: make([]*instr.Record, 8)}
}

// Len returns the number of entries currently queued.
func (q *Queue) Len() int {
	return q.count
}

// Empty reports whether the queue holds no entries.
func (q *Queue) Empty() bool {
	return q.count == 0
}

// PushBack appends rec to the tail of the queue.
func (q *Queue) PushBack(rec *instr.Record) {
	if q.count == len(q.buf) {
		q.grow()
	}
	tail := (q.head + q.count) % len(q.buf)
	q.buf[tail] = rec
	q.count++
}

// PopFront removes and returns the head of the queue. It panics if the
// queue is empty; callers must check Empty first — the driver's phase
// loops only pop while non-empty.
func (q *Queue) PopFront() *instr.Record {
	if q.count == 0 {
		panic("dispatchq: PopFront called on an empty queue")
	}
	rec := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return rec
}

// Each calls fn once per entry, from head to tail.
func (q *Queue) Each(fn func(*instr.Record)) {
	for i := 0; i < q.count; i++ {
		fn(q.buf[(q.head+i)%len(q.buf)])
	}
}

func (q *Queue) grow() {
	newBuf := make([]*instr.Record, len(q.buf)*2)
	for i := 0; i < q.count; i++ {
		newBuf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = newBuf
	q.head = 0
}
