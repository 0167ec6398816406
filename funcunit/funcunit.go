// Package funcunit models the three independent pools of anonymous
// function units. Units within a class are interchangeable: allocation
// returns success/failure and occupies any free slot, release frees any
// occupied slot of that class. No binding between a specific unit and the
// instruction occupying it is preserved.
package funcunit

import "math/bits"

// maxUnitsPerClass bounds a class to fit in one uint64 occupancy bitmap,
// which comfortably covers any realistic k0/k1/k2 configuration.
const maxUnitsPerClass = 64

// classPool tracks one function-unit class as a bitmap: bit i set means
// slot i is occupied. Free-slot lookup and release are both O(1) via
// math/bits, the same bitmap-based approach the reference out-of-order
// prototypes in the wider example pack use for parallel slot lookups.
type classPool struct {
	size     int
	occupied uint64
}

func newClassPool(size int) classPool {
	if size > maxUnitsPerClass {
		panic("funcunit: class size exceeds maxUnitsPerClass")
	}
	return classPool{size: size}
}

func (p *classPool) acquire() bool {
	free := ^p.occupied
	if p.size < 64 {
		free &= (uint64(1) << uint(p.size)) - 1
	}
	if free == 0 {
		return false
	}
	slot := bits.TrailingZeros64(free)
	p.occupied |= uint64(1) << uint(slot)
	return true
}

// release frees an arbitrary occupied slot; no binding between instruction
// and slot is preserved.
func (p *classPool) release() {
	if p.occupied == 0 {
		return
	}
	slot := bits.TrailingZeros64(p.occupied)
	p.occupied &^= uint64(1) << uint(slot)
}

func (p *classPool) occupiedCount() int {
	return bits.OnesCount64(p.occupied)
}

// Pool holds the three function-unit classes, sized k0, k1, k2.
type Pool struct {
	classes [3]classPool
}

// New creates a Pool with k0, k1, k2 units in classes 0, 1, 2 respectively,
// all initially free.
func New(k0, k1, k2 int) *Pool {
	return &Pool{
		classes: [3]classPool{
			newClassPool(k0),
			newClassPool(k1),
			newClassPool(k2),
		},
	}
}

// Acquire attempts to reserve one free unit of the given class. It reports
// whether a unit was available.
func (p *Pool) Acquire(class int) bool {
	return p.classes[class].acquire()
}

// Release frees one occupied unit of the given class. Releasing a class
// with nothing occupied is a no-op.
func (p *Pool) Release(class int) {
	p.classes[class].release()
}

// OccupiedCount returns how many units of the given class are currently in
// use. The driver releases a unit in State Update, so this is the number of
// fired instructions of that class that have not yet completed State Update.
func (p *Pool) OccupiedCount(class int) int {
	return p.classes[class].occupiedCount()
}

// Size returns the configured unit count of the given class.
func (p *Pool) Size(class int) int {
	return p.classes[class].size
}
