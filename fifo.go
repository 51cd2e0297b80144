// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

import (
	"code.hybscloud.com/atomix"
)

// FIFO is a dual-clock single-producer single-consumer bounded queue.
//
// The producer and consumer run on independent, unrelated tick sources
// (two goroutines with no shared scheduler). Each side owns a free-running
// pointer of ADDR_WIDTH+1 bits; the extra bit disambiguates full from
// empty across index wraparound. Pointers cross to the opposite domain
// Gray-encoded through a multi-stage capture pipeline, so the opposite
// side always sees some value the pointer genuinely held, delayed by a
// bounded number of its own ticks.
//
// Flags are derived conservatively from the stale observed pointer:
// Full may assert up to the observer latency later than the queue actually
// drained, and Empty may assert up to the observer latency later than the
// queue actually filled, but Full never reads false at capacity and Empty
// never reads false on an empty queue. Every producer-side call advances
// one write-domain tick and every consumer-side call advances one
// read-domain tick, so polling a flag makes cross-domain progress visible.
//
// Memory: O(depth) with minimal per-slot overhead
type FIFO[T any] struct {
	_        pad
	wrPub    atomix.Uint64 // Producer publishes {generation, gray wr_ptr} here
	_        pad
	rdPub    atomix.Uint64 // Consumer publishes {generation, gray rd_ptr} here
	_        pad
	resetGen atomix.Uint64 // Joint reset generation, bumped by Reset
	_        pad
	w        controller // Write-domain state, producer context only
	_        pad
	r        controller // Read-domain state, consumer context only
	_        pad
	buffer  []T
	depth   uint64
	mask    uint64 // depth - 1, slot index mask
	ptrMask uint64 // 2*depth - 1, pointer width ADDR_WIDTH+1
	reserve uint64
}

// controller is the domain-local half of the queue: the pointer the domain
// owns, its decoded view of the other domain's pointer, the capture
// pipeline, and the reset sequencer. Only the owning context touches it.
type controller struct {
	ptr      uint64
	observed uint64
	obs      observer
	rst      resetSeq
}

// NewFIFO creates a dual-clock SPSC queue with the given depth.
// Depth must be a power of two >= 2. Reserve defaults to 0 (ProgFull
// coincides with Full) and the observer pipeline to 2 capture stages;
// use the Builder to configure either.
func NewFIFO[T any](depth int) *FIFO[T] {
	return newFIFO[T](depth, 0, defaultStages)
}

func newFIFO[T any](depth, reserve, stages int) *FIFO[T] {
	validateDepth(depth)
	if reserve < 0 || reserve >= depth {
		panic("cdcq: reserve must be in [0, depth)")
	}
	validateStages(stages)

	d := uint64(depth)
	q := &FIFO[T]{
		buffer:  make([]T, d),
		depth:   d,
		mask:    d - 1,
		ptrMask: 2*d - 1,
		reserve: uint64(reserve),
	}
	q.w = controller{obs: newObserver(stages), rst: resetSeq{state: resetReleased}}
	q.r = controller{obs: newObserver(stages), rst: resetSeq{state: resetReleased}}
	return q
}

// writeTick advances one write-domain tick: reset sequencing first, then
// one capture-pipeline shift of the consumer's published pointer.
func (q *FIFO[T]) writeTick() {
	gen := q.resetGen.Load()
	q.w.rst.step(gen)
	if q.w.rst.state == resetHold {
		q.w.ptr = 0
		q.w.observed = 0
		q.w.obs.flush()
		q.wrPub.StoreRelease(packPointer(gen, 0))
		return
	}
	raw := q.w.obs.shift(q.rdPub.LoadAcquire())
	q.w.observed = unpackPointer(raw, q.w.rst.gen) & q.ptrMask
}

// readTick is the read-domain mirror of writeTick.
func (q *FIFO[T]) readTick() {
	gen := q.resetGen.Load()
	q.r.rst.step(gen)
	if q.r.rst.state == resetHold {
		q.r.ptr = 0
		q.r.observed = 0
		q.r.obs.flush()
		q.rdPub.StoreRelease(packPointer(gen, 0))
		return
	}
	raw := q.r.obs.shift(q.wrPub.LoadAcquire())
	q.r.observed = unpackPointer(raw, q.r.rst.gen) & q.ptrMask
}

// writeOccupancy computes occupancy from the producer's view. The observed
// read pointer lags, so the result overestimates true occupancy and never
// underestimates it: Full is conservative, overflow is impossible.
func (q *FIFO[T]) writeOccupancy() uint64 {
	return (q.w.ptr - q.w.observed) & q.ptrMask
}

// Write adds an element to the queue (producer context only).
// Returns ErrWouldBlock if the queue is full or a reset is sequencing;
// the rejected element is dropped and no state is mutated.
func (q *FIFO[T]) Write(elem *T) error {
	q.writeTick()
	if q.w.rst.held() {
		return ErrWouldBlock
	}
	if q.writeOccupancy() >= q.depth {
		return ErrWouldBlock
	}

	q.buffer[q.w.ptr&q.mask] = *elem
	q.w.ptr = (q.w.ptr + 1) & q.ptrMask
	q.wrPub.StoreRelease(packPointer(q.w.rst.gen, GrayEncode(q.w.ptr)))
	return nil
}

// Full reports whether the queue has reached capacity from the producer's
// view (producer context only). Forced true while the write domain is in
// reset.
func (q *FIFO[T]) Full() bool {
	q.writeTick()
	if q.w.rst.held() {
		return true
	}
	return q.writeOccupancy() >= q.depth
}

// ProgFull reports whether remaining space has shrunk to the reserve
// margin (producer context only). ProgFull is implied by Full and is
// forced true while the write domain is in reset. With reserve 0 it
// coincides with Full.
func (q *FIFO[T]) ProgFull() bool {
	q.writeTick()
	if q.w.rst.held() {
		return true
	}
	return q.depth-q.writeOccupancy() <= q.reserve
}

// Read removes and returns the oldest element (consumer context only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty or a reset is
// sequencing; no state is mutated on rejection.
func (q *FIFO[T]) Read() (T, error) {
	q.readTick()
	var zero T
	if q.r.rst.held() {
		return zero, ErrWouldBlock
	}
	if q.r.observed == q.r.ptr {
		return zero, ErrWouldBlock
	}

	elem := q.buffer[q.r.ptr&q.mask]
	q.buffer[q.r.ptr&q.mask] = zero
	q.r.ptr = (q.r.ptr + 1) & q.ptrMask
	q.rdPub.StoreRelease(packPointer(q.r.rst.gen, GrayEncode(q.r.ptr)))
	return elem, nil
}

// Empty reports whether the queue is empty from the consumer's view
// (consumer context only). Forced true while the read domain is in reset.
// The observed write pointer lags, so Empty may persist up to the observer
// latency after a write, but never reads false on an empty queue.
func (q *FIFO[T]) Empty() bool {
	q.readTick()
	if q.r.rst.held() {
		return true
	}
	return q.r.observed == q.r.ptr
}

// HasData reports whether at least one element is readable
// (consumer context only). Always the negation of Empty.
func (q *FIFO[T]) HasData() bool {
	return !q.Empty()
}

// Reset asserts the joint reset. Callable from either context or an
// external supervisor. Each domain independently sequences HOLD →
// COUNTING → RELEASED on its own subsequent ticks; until a domain has
// released, its flags are forced (Full / Empty) and its operations are
// refused. After both domains release, occupancy is zero and both
// pointers sit at a consistent joint zero.
func (q *FIFO[T]) Reset() {
	q.resetGen.Add(1)
}

// Cap returns the queue depth.
func (q *FIFO[T]) Cap() int {
	return int(q.depth)
}

// Reserve returns the ProgFull margin.
func (q *FIFO[T]) Reserve() int {
	return int(q.reserve)
}

// Stages returns the number of observer capture stages per domain.
func (q *FIFO[T]) Stages() int {
	return q.w.obs.depth()
}
