// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// Construction parameters are fixed for the life of an instance and are
// validated hard: a misconfigured queue is the one failure this package
// reports, and it reports it before any operation is possible.
type Options struct {
	// Depth of the storage array (power of two >= 2).
	depth int

	// ProgFull margin in [0, depth). 0 makes ProgFull coincide with Full.
	reserve int

	// Observer capture stages per domain in [2, 8]. More stages model a
	// longer synchronizer chain: higher flag staleness, same contracts.
	stages int
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Base queue with an early-warning margin of 16 slots
//	q := cdcq.Build[Frame](cdcq.New(1024).Reserve(16))
//
//	// FWFT queue observed through a 4-stage synchronizer
//	q := cdcq.BuildFWFT[Sample](cdcq.New(256).Stages(4))
//
//	// Four 8-bit writes per 32-bit read
//	q := cdcq.New(64).BuildConcat(8, 4)
type Builder struct {
	opts Options
}

// New creates a queue builder with the given storage depth.
//
// Depth must be a power of two >= 2 (the pointer arithmetic relies on a
// power-of-two wrap); anything else panics. Reserve defaults to 0 and the
// observer pipeline to 2 capture stages.
func New(depth int) *Builder {
	validateDepth(depth)
	return &Builder{opts: Options{depth: depth, stages: defaultStages}}
}

// Reserve sets the ProgFull margin: ProgFull asserts once remaining space
// is <= n. Must be in [0, depth); panics otherwise.
func (b *Builder) Reserve(n int) *Builder {
	if n < 0 || n >= b.opts.depth {
		panic("cdcq: reserve must be in [0, depth)")
	}
	b.opts.reserve = n
	return b
}

// Stages sets the number of observer capture stages per domain, modeling
// the synchronizer chain length. Must be in [2, 8]; panics otherwise.
// Longer chains increase flag staleness but never violate the
// conservative-flag contracts.
func (b *Builder) Stages(n int) *Builder {
	validateStages(n)
	b.opts.stages = n
	return b
}

// Build creates a dual-clock SPSC queue from the builder configuration.
func Build[T any](b *Builder) *FIFO[T] {
	return newFIFO[T](b.opts.depth, b.opts.reserve, b.opts.stages)
}

// BuildFWFT creates a first-word-fall-through queue from the builder
// configuration.
func BuildFWFT[T any](b *Builder) *FWFT[T] {
	return &FWFT[T]{q: Build[T](b)}
}

// BuildConcat creates a Concat width adapter (narrow write side, wide
// read side) whose inner wide queue uses the builder configuration.
// narrowBits is the narrow payload width in bits; ratio the number of
// narrow writes per wide word (power of two >= 2, narrowBits*ratio <= 64).
func (b *Builder) BuildConcat(narrowBits, ratio int) *Concat {
	return newConcat(narrowBits, ratio, b.opts.depth, b.opts.reserve, b.opts.stages)
}

// BuildSplit creates a Split width adapter (wide write side, narrow read
// side) whose inner wide queue uses the builder configuration.
// narrowBits is the narrow payload width in bits; ratio the number of
// narrow reads per wide word (power of two >= 2, narrowBits*ratio <= 64).
func (b *Builder) BuildSplit(narrowBits, ratio int) *Split {
	return newSplit(narrowBits, ratio, b.opts.depth, b.opts.reserve, b.opts.stages)
}

// defaultStages is the observer pipeline length used by the direct
// constructors: the canonical 2-stage synchronizer.
const defaultStages = 2

// maxDepth bounds the storage depth so a Gray-encoded pointer of
// ADDR_WIDTH+1 bits fits the 32 pointer bits of the published word
// (and the depth itself fits int on 32-bit platforms).
const maxDepth = 1 << 30

func validateDepth(depth int) {
	if depth < 2 || depth&(depth-1) != 0 {
		panic("cdcq: depth must be a power of two >= 2")
	}
	if depth > maxDepth {
		panic("cdcq: depth must be <= 1<<30")
	}
}

func validateStages(stages int) {
	if stages < 2 || stages > 8 {
		panic("cdcq: stages must be in [2, 8]")
	}
}

func validateRatio(narrowBits, ratio int) {
	if narrowBits < 1 {
		panic("cdcq: narrow width must be >= 1 bit")
	}
	if ratio < 2 || ratio&(ratio-1) != 0 {
		panic("cdcq: ratio must be a power of two >= 2")
	}
	if narrowBits*ratio > 64 {
		panic("cdcq: narrowBits*ratio must be <= 64")
	}
}

// pad is cache line padding to prevent false sharing between the
// producer-owned, consumer-owned, and published fields.
type pad [64]byte
