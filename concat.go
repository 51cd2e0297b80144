// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// Concat is a width-conversion adapter that accumulates ratio narrow
// writes into one wide transfer on an inner dual-clock queue
// (narrow write side, wide read side).
//
// Values travel as uint64 words: a narrow write carries narrowBits
// significant bits, a wide read carries narrowBits*ratio. The first write
// of a group lands in the least-significant narrow slot of the wide word,
// the last write in the most-significant slot. Partial groups are never
// forwarded and are invisible to the reader.
//
// Backpressure is conservative: narrow writes are refused whenever the
// inner wide queue is full, so a completed group always has a slot waiting
// and accumulated values are never dropped by a rejected forward.
type Concat struct {
	q          *FIFO[uint64]
	narrowBits uint64
	ratio      uint64
	acc        uint64 // partial wide word, write-domain state
	sub        uint64 // group sub-index in [0, ratio)
	gen        uint64 // write-domain reset generation of the accumulation
}

// NewConcat creates a Concat adapter. narrowBits is the narrow payload
// width in bits, ratio the number of narrow writes per wide word
// (a power of two >= 2, with narrowBits*ratio <= 64), depth the inner
// wide queue depth (a power of two >= 2).
func NewConcat(narrowBits, ratio, depth int) *Concat {
	return newConcat(narrowBits, ratio, depth, 0, defaultStages)
}

func newConcat(narrowBits, ratio, depth, reserve, stages int) *Concat {
	validateRatio(narrowBits, ratio)
	return &Concat{
		q:          newFIFO[uint64](depth, reserve, stages),
		narrowBits: uint64(narrowBits),
		ratio:      uint64(ratio),
	}
}

// narrowMask is the mask of one narrow slot. narrowBits is at most 32
// (ratio >= 2 and narrowBits*ratio <= 64), so the shift cannot overflow.
func (a *Concat) narrowMask() uint64 {
	return 1<<a.narrowBits - 1
}

// syncGen drops a partial accumulation when the write domain sequenced
// through a reset since the group started.
func (a *Concat) syncGen() {
	if g := a.q.w.rst.gen; g != a.gen {
		a.gen = g
		a.acc, a.sub = 0, 0
	}
}

// Write shifts a narrow value into the current group (producer context
// only). The write that completes a group forwards the accumulated wide
// word to the inner queue. Returns ErrWouldBlock while the inner queue is
// full or a reset is sequencing; the rejected value is dropped and the
// accumulation is unchanged.
func (a *Concat) Write(v uint64) error {
	if a.q.Full() {
		a.syncGen()
		return ErrWouldBlock
	}
	a.syncGen()
	a.acc |= (v & a.narrowMask()) << (a.sub * a.narrowBits)
	a.sub++
	if a.sub == a.ratio {
		wide := a.acc
		a.acc, a.sub = 0, 0
		// Cannot be refused for capacity: the inner queue was not full on
		// this tick and only the consumer moves its pointer. A reset
		// arriving between the check and the forward drops the group,
		// which reset clears anyway.
		return a.q.Write(&wide)
	}
	return nil
}

// Full reports whether narrow writes would be refused (producer context
// only). Conservative: asserted whenever the inner wide queue is full,
// regardless of group progress.
func (a *Concat) Full() bool {
	full := a.q.Full()
	a.syncGen()
	return full
}

// ProgFull reports whether the inner wide queue's remaining space has
// shrunk to the reserve margin (producer context only).
func (a *Concat) ProgFull() bool {
	prog := a.q.ProgFull()
	a.syncGen()
	return prog
}

// Read removes and returns the oldest wide word (consumer context only).
func (a *Concat) Read() (uint64, error) {
	return a.q.Read()
}

// Empty reports whether no complete wide word is visible
// (consumer context only). Partial accumulations do not count.
func (a *Concat) Empty() bool {
	return a.q.Empty()
}

// HasData reports whether a complete wide word is readable
// (consumer context only).
func (a *Concat) HasData() bool {
	return a.q.HasData()
}

// Reset asserts the joint reset. The partial accumulation is dropped by
// the producer context on its next call, as part of write-domain reset
// sequencing.
func (a *Concat) Reset() {
	a.q.Reset()
}

// Cap returns the inner wide queue depth.
func (a *Concat) Cap() int {
	return a.q.Cap()
}

// Ratio returns the number of narrow writes per wide word.
func (a *Concat) Ratio() int {
	return int(a.ratio)
}
