// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// resetHoldoffTicks is the number of domain ticks a side keeps its local
// reset asserted after the joint reset has been observed, so that both
// domains are guaranteed to overlap in the reset window even when their
// tick rates differ wildly.
const resetHoldoffTicks = 8

type resetState uint8

const (
	// resetHold: the joint reset assertion has just been observed.
	// Pointers are forced to zero, flags are forced (full / empty).
	resetHold resetState = iota
	// resetCounting: assertion released, local holdoff countdown running.
	// Flags remain forced.
	resetCounting
	// resetReleased: countdown exhausted, the domain operates normally.
	resetReleased
)

// resetSeq is the per-domain reset sequencer. Each domain owns one and
// steps it exactly once per domain tick. The joint reset is a generation
// counter: a generation change observed from any state returns the
// sequencer to resetHold.
type resetSeq struct {
	state resetState
	count int
	gen   uint64 // last joint generation this domain sequenced
}

// step advances the sequencer one domain tick against the current joint
// generation. It reports whether the local reset is asserted after the
// tick. Immediately after a tick that entered resetHold, state reads
// resetHold; callers use that to flush domain-local pointer state.
func (s *resetSeq) step(gen uint64) bool {
	if gen != s.gen {
		s.gen = gen
		s.state = resetHold
		return true
	}
	switch s.state {
	case resetHold:
		// The joint reset is pulse-shaped: one observed assertion tick,
		// then the holdoff countdown runs with reset still asserted.
		s.count = resetHoldoffTicks
		s.state = resetCounting
	case resetCounting:
		s.count--
		if s.count <= 0 {
			s.state = resetReleased
		}
	}
	return s.state != resetReleased
}

// held reports whether the local reset is currently asserted.
func (s *resetSeq) held() bool {
	return s.state != resetReleased
}
