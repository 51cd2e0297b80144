// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// FWFT wraps a base queue with a one-entry look-ahead register so the next
// element is visible before an explicit Read (first-word-fall-through).
//
// Every consumer-side call runs one adapter step: if the look-ahead
// register is invalid and the base queue has data, the base queue is
// popped into the register. Empty and HasData reflect the register's
// validity, not the base queue's. A Read that finds the register valid
// returns its contents and immediately refills from the base queue, so
// back-to-back reads see zero additional latency while the base can keep
// up.
//
// The look-ahead register is read-domain state: only the consumer context
// may call Read, Peek, Empty, and HasData. Producer-side calls pass
// through to the base queue.
type FWFT[T any] struct {
	q     *FIFO[T]
	la    T
	valid bool
	gen   uint64 // read-domain reset generation the register was loaded under
}

// NewFWFT creates a first-word-fall-through dual-clock SPSC queue with the
// given depth. Depth must be a power of two >= 2.
func NewFWFT[T any](depth int) *FWFT[T] {
	return &FWFT[T]{q: NewFIFO[T](depth)}
}

// step advances one adapter step on the consumer context: tick the base
// read domain, drop the look-ahead register if a reset swept through since
// it was loaded, and refill it when invalid.
func (f *FWFT[T]) step() {
	if f.valid {
		// Tick the base read domain so reset sequencing and pointer
		// observation keep making progress while the register is occupied.
		f.q.HasData()
	} else if v, err := f.q.Read(); err == nil {
		f.la, f.valid = v, true
		f.gen = f.q.r.rst.gen
	}
	if g := f.q.r.rst.gen; g != f.gen {
		var zero T
		f.la, f.valid = zero, false
		f.gen = g
	}
}

// Read removes and returns the look-ahead element (consumer context only).
// Returns (zero-value, ErrWouldBlock) if no element has fallen through.
func (f *FWFT[T]) Read() (T, error) {
	f.step()
	if !f.valid {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := f.la
	var zero T
	f.la, f.valid = zero, false
	f.step()
	return elem, nil
}

// Peek returns the look-ahead element without consuming it
// (consumer context only).
func (f *FWFT[T]) Peek() (T, error) {
	f.step()
	if !f.valid {
		var zero T
		return zero, ErrWouldBlock
	}
	return f.la, nil
}

// Empty reports whether the look-ahead register is invalid
// (consumer context only).
func (f *FWFT[T]) Empty() bool {
	f.step()
	return !f.valid
}

// HasData reports whether the look-ahead register holds an element
// (consumer context only). Always the negation of Empty.
func (f *FWFT[T]) HasData() bool {
	return !f.Empty()
}

// Write adds an element to the base queue (producer context only).
func (f *FWFT[T]) Write(elem *T) error {
	return f.q.Write(elem)
}

// Full reports whether the base queue is full (producer context only).
func (f *FWFT[T]) Full() bool {
	return f.q.Full()
}

// ProgFull reports whether the base queue's remaining space has shrunk to
// the reserve margin (producer context only).
func (f *FWFT[T]) ProgFull() bool {
	return f.q.ProgFull()
}

// Reset asserts the joint reset on the base queue. The look-ahead register
// is dropped by the consumer context on its next call, as part of read-
// domain reset sequencing.
func (f *FWFT[T]) Reset() {
	f.q.Reset()
}

// Cap returns the base queue depth. The look-ahead register holds one
// additional in-flight element once loaded.
func (f *FWFT[T]) Cap() int {
	return f.q.Cap()
}
