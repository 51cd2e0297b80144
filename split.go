// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// Split is a width-conversion adapter that decomposes one wide transfer
// into ratio narrow reads over an inner dual-clock queue
// (wide write side, narrow read side).
//
// Values travel as uint64 words: a wide write carries narrowBits*ratio
// significant bits, a narrow read carries narrowBits. Slices come out
// least-significant first: read i of a word yields bits
// [i*narrowBits, (i+1)*narrowBits). After the last slice of a word is
// served, the next wide word is fetched from the inner queue eagerly so
// HasData reflects it without an extra consumer call.
type Split struct {
	q          *FIFO[uint64]
	narrowBits uint64
	ratio      uint64
	cur        uint64 // wide word being decomposed, read-domain state
	sub        uint64 // slice sub-index in [0, ratio)
	valid      bool
	gen        uint64 // read-domain reset generation the word was loaded under
}

// NewSplit creates a Split adapter. narrowBits is the narrow payload width
// in bits, ratio the number of narrow reads per wide word (a power of two
// >= 2, with narrowBits*ratio <= 64), depth the inner wide queue depth
// (a power of two >= 2).
func NewSplit(narrowBits, ratio, depth int) *Split {
	return newSplit(narrowBits, ratio, depth, 0, defaultStages)
}

func newSplit(narrowBits, ratio, depth, reserve, stages int) *Split {
	validateRatio(narrowBits, ratio)
	return &Split{
		q:          newFIFO[uint64](depth, reserve, stages),
		narrowBits: uint64(narrowBits),
		ratio:      uint64(ratio),
	}
}

// narrowMask is the mask of one narrow slice. narrowBits is at most 32
// (ratio >= 2 and narrowBits*ratio <= 64), so the shift cannot overflow.
func (s *Split) narrowMask() uint64 {
	return 1<<s.narrowBits - 1
}

// step advances one adapter step on the consumer context: tick the inner
// read domain, drop the buffered word if a reset swept through, and fetch
// the next wide word when none is buffered.
func (s *Split) step() {
	if s.valid {
		s.q.HasData()
	} else if w, err := s.q.Read(); err == nil {
		s.cur, s.valid, s.sub = w, true, 0
		s.gen = s.q.r.rst.gen
	}
	if g := s.q.r.rst.gen; g != s.gen {
		s.cur, s.valid, s.sub = 0, false, 0
		s.gen = g
	}
}

// Read removes and returns the next narrow slice (consumer context only).
// Returns (0, ErrWouldBlock) if no wide word is buffered.
func (s *Split) Read() (uint64, error) {
	s.step()
	if !s.valid {
		return 0, ErrWouldBlock
	}
	v := s.cur >> (s.sub * s.narrowBits) & s.narrowMask()
	s.sub++
	if s.sub == s.ratio {
		s.cur, s.valid, s.sub = 0, false, 0
		s.step()
	}
	return v, nil
}

// Empty reports whether no narrow slice is readable
// (consumer context only).
func (s *Split) Empty() bool {
	s.step()
	return !s.valid
}

// HasData reports whether a narrow slice is readable
// (consumer context only). Always the negation of Empty.
func (s *Split) HasData() bool {
	return !s.Empty()
}

// Write adds one wide word to the inner queue (producer context only).
func (s *Split) Write(v uint64) error {
	return s.q.Write(&v)
}

// Full reports whether the inner wide queue is full
// (producer context only).
func (s *Split) Full() bool {
	return s.q.Full()
}

// ProgFull reports whether the inner wide queue's remaining space has
// shrunk to the reserve margin (producer context only).
func (s *Split) ProgFull() bool {
	return s.q.ProgFull()
}

// Reset asserts the joint reset. The buffered wide word is dropped by the
// consumer context on its next call, as part of read-domain reset
// sequencing.
func (s *Split) Reset() {
	s.q.Reset()
}

// Cap returns the inner wide queue depth.
func (s *Split) Cap() int {
	return s.q.Cap()
}

// Ratio returns the number of narrow reads per wide word.
func (s *Split) Ratio() int {
	return int(s.ratio)
}
