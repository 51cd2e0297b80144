// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// Cross-domain pointer publication.
//
// Each side of the queue owns one published word: the low 32 bits carry the
// Gray-encoded pointer, the high 32 bits carry the reset generation the
// pointer belongs to. The owner release-stores the word after every pointer
// change; the opposite domain acquire-loads it once per tick through a
// capture pipeline (observer) before trusting it.
//
// The generation tag is the software realization of the joint-zero reset
// contract: a word published under a different generation decodes as
// pointer zero, so a domain that has already sequenced through reset never
// acts on the other domain's pre-reset pointer.

// packPointer packs a reset generation and a Gray-encoded pointer into one
// publishable word. The pointer must fit in 32 bits (depth <= 1<<31).
func packPointer(gen uint64, gray uint64) uint64 {
	return gen<<32 | gray
}

// unpackPointer decodes a captured word back to a binary pointer.
// Words tagged with a foreign generation decode as zero.
func unpackPointer(raw uint64, gen uint64) uint64 {
	if raw>>32 != gen&0xffffffff {
		return 0
	}
	return GrayDecode(raw & 0xffffffff)
}

// observer is the capture pipeline a domain runs over the other domain's
// published word. It models a multi-stage synchronizer: a sample taken at
// tick t leaves the pipeline at tick t+len(stage), so the observed pointer
// lags the published one by a bounded number of observer-domain ticks.
//
// The pipeline is domain-local state. Only the owning context may call
// shift and flush.
type observer struct {
	stage []uint64
}

func newObserver(stages int) observer {
	return observer{stage: make([]uint64, stages)}
}

// shift advances the pipeline one tick: raw enters the first stage and the
// word leaving the final stage is returned.
func (o *observer) shift(raw uint64) uint64 {
	out := o.stage[len(o.stage)-1]
	copy(o.stage[1:], o.stage[:len(o.stage)-1])
	o.stage[0] = raw
	return out
}

// flush clears all capture stages. Called on reset entry so no pre-reset
// sample survives the holdoff window.
func (o *observer) flush() {
	clear(o.stage)
}

// depth returns the number of capture stages.
func (o *observer) depth() int {
	return len(o.stage)
}
