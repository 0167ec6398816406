// Package rs implements the reservation station: a bounded, unordered
// multiset of in-flight instruction records. Storage is an index-stable
// arena with a free-list, addressed by tag through a side table — chosen
// over re-resolving entries by a tag scan every phase, or taking raw
// pointers into a growable slice, which would invalidate on reallocation.
package rs

import "github.com/sarchlab/procsim/instr"

// Station is a fixed-capacity, tag-addressed container of *instr.Record.
// The zero value is not usable; construct with New.
type Station struct {
	capacity int
	slots    []*instr.Record // index-stable arena; nil means free
	free     []int           // free slot indices
	byTag    map[uint64]int  // tag -> slot index
}

// New creates a Station with the given capacity (2*(k0+k1+k2)).
func New(capacity int) *Station {
	free := make([]int, capacity)
	for i := range free {
		free[i] = capacity - 1 - i // pop from the end; order is irrelevant
	}
	return &Station{
		capacity: capacity,
		slots:    make([]*instr.Record, capacity),
		free:     free,
		byTag:    make(map[uint64]int, capacity),
	}
}

// Len returns the number of entries currently held.
func (s *Station) Len() int {
	return len(s.byTag)
}

// Capacity returns the station's fixed capacity.
func (s *Station) Capacity() int {
	return s.capacity
}

// Full reports whether the station is at capacity.
func (s *Station) Full() bool {
	return s.Len() >= s.capacity
}

// Add inserts rec, indexed by its tag. It panics if the station is full or
// the tag is already present — both are programming defects given the
// driver's phase ordering, never a runtime condition.
func (s *Station) Add(rec *instr.Record) {
	if s.Full() {
		panic("rs: Add called on a full station")
	}
	if _, exists := s.byTag[rec.Tag]; exists {
		panic("rs: Add called with a tag already present")
	}

	slot := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]
	s.slots[slot] = rec
	s.byTag[rec.Tag] = slot
}

// Remove evicts the entry with the given tag. It is a no-op if the tag is
// not present, so callers can remove a batch of tags without checking
// membership first.
func (s *Station) Remove(tag uint64) {
	slot, ok := s.byTag[tag]
	if !ok {
		return
	}
	s.slots[slot] = nil
	s.free = append(s.free, slot)
	delete(s.byTag, tag)
}

// Get returns the entry with the given tag, and whether it was found.
func (s *Station) Get(tag uint64) (*instr.Record, bool) {
	slot, ok := s.byTag[tag]
	if !ok {
		return nil, false
	}
	return s.slots[slot], true
}

// Each calls fn once for every entry currently held. Iteration order is
// unspecified — the order of physical storage is irrelevant; callers that
// need tag order must sort themselves.
func (s *Station) Each(fn func(*instr.Record)) {
	for _, slot := range s.byTag {
		fn(s.slots[slot])
	}
}

// All returns every entry currently held, in unspecified order.
func (s *Station) All() []*instr.Record {
	out := make([]*instr.Record, 0, len(s.byTag))
	for _, slot := range s.byTag {
		out = append(out, s.slots[slot])
	}
	return out
}
