// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cdcq provides dual-clock (asynchronous) bounded FIFO queues.
//
// The queues move data between two independently-timed execution
// contexts — a producer and a consumer with no shared scheduler and no
// ordering guarantee between their ticks. The hard part is not the ring
// buffer; it is making a counter that one side mutates continuously
// visible to the other side with bounded staleness and without ever
// exposing a value the counter never held. The package solves it the way
// asynchronous FIFO hardware does: pointers cross Gray-encoded through a
// multi-stage capture pipeline, and the full/empty flags are derived
// conservatively from the stale observed pointer.
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := cdcq.NewFIFO[Frame](1024)   // base dual-clock SPSC queue
//	q := cdcq.NewFWFT[Sample](256)   // first-word-fall-through variant
//	q := cdcq.NewConcat(8, 4, 64)    // 4 byte-wide writes per 32-bit read
//	q := cdcq.NewSplit(8, 4, 64)     // 32-bit write, 4 byte-wide reads
//
// Builder API for configured instances:
//
//	q := cdcq.Build[Frame](cdcq.New(1024).Reserve(16))   // early ProgFull
//	q := cdcq.BuildFWFT[Sample](cdcq.New(256).Stages(4)) // longer synchronizer
//
// # Basic Usage
//
// All queues share the same non-blocking surface:
//
//	// Producer context
//	v := Frame{...}
//	if err := q.Write(&v); cdcq.IsWouldBlock(err) {
//	    // Queue full - poll Full() / back off
//	}
//
//	// Consumer context
//	elem, err := q.Read()
//	if cdcq.IsWouldBlock(err) {
//	    // Queue empty - poll HasData() / back off
//	}
//
// # Clock Domain Model
//
// Each side of a queue is a clock domain. A domain ticks once per call
// made from its context: Write, Full, and ProgFull tick the write domain;
// Read, Empty, and HasData tick the read domain. A tick steps the
// domain's reset sequencer and shifts its observer pipeline, which
// captures the opposite domain's published pointer.
//
// Published pointers are Gray-encoded, so consecutive publications differ
// in exactly one bit, and the observer pipeline delays a captured value
// by the configured number of capture stages (2 by default, up to 8 via
// Stages). The consequences callers must expect:
//
//   - After a Write, the consumer's Empty stays true for up to its
//     observer latency. Poll; HasData going true is the arrival signal.
//   - After a Read, the producer's Full stays true for up to its observer
//     latency. Poll before declaring the queue stuck.
//   - Flags never err in the dangerous direction: Full never reads false
//     at capacity, Empty never reads false on an empty queue.
//
// The pipeline length is a construction parameter precisely so tests can
// sweep the visibility latency; correctness must not depend on it.
//
// # Backpressure
//
// Write and Read never suspend. Combine with adaptive backoff from iox:
//
//	backoff := iox.Backoff{}
//	for q.Write(&v) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
//
// Overflow and underflow are policy, not faults: a Write against a full
// queue returns ErrWouldBlock and drops the element without touching any
// state; a Read against an empty queue returns ErrWouldBlock and touches
// nothing. Callers must check the returns.
//
// # Reset
//
// Reset asserts a joint reset observed independently by both domains.
// Each domain sequences HOLD → COUNTING (8 of its own ticks) → RELEASED;
// until released, its pointers are forced to zero, Full/Empty are forced,
// and operations are refused. Because the domains release independently,
// drive both sides (poll a flag per side) after Reset and wait for
// Full to release before resuming traffic:
//
//	q.Reset()
//	for q.Full() {        // producer context: released when false
//	}
//	for range 16 {        // consumer context: Empty is forced true
//	    q.Empty()         // during reset, so tick past the holdoff
//	}                     // instead of waiting on the flag value
//
// # First-Word-Fall-Through
//
// FWFT wraps a base queue with a one-entry look-ahead register owned by
// the read domain. The next element is visible via Peek before any Read,
// and HasData/Empty reflect the register, not the base queue. Back-to-
// back reads are refilled in the same call when the base queue can keep
// up.
//
// # Width Adapters
//
// Concat accumulates ratio narrow writes into one wide word (the first
// write of a group lands in the least-significant slot); partial groups
// are invisible to the reader. Split decomposes one wide write into ratio
// narrow reads, least-significant slice first. Both are thin layers over
// a base queue and add no new cross-domain paths.
//
//	c := cdcq.NewConcat(8, 4, 64)
//	c.Write(0xA0); c.Write(0xA1); c.Write(0xA2) // nothing visible yet
//	c.Write(0xA3)                               // one wide word visible
//	w, _ := c.Read()                            // w == 0xA3A2A1A0
//
// # Error Handling
//
// Queues return [ErrWouldBlock] when operations cannot proceed. The error
// is sourced from [code.hybscloud.com/iox] for ecosystem consistency, and
// the iox classification helpers are re-exported:
//
//	cdcq.IsWouldBlock(err)  // true if queue full/empty/in reset
//	cdcq.IsSemantic(err)    // true if control flow signal
//	cdcq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// Construction-time misconfiguration (non-power-of-two depth or ratio,
// reserve >= depth, zero width, stages out of range) panics before any
// operation is possible. There are no other failure paths.
//
// # Thread Safety
//
// The queues are strictly single-producer single-consumer, per side:
// exactly one goroutine may call the producer surface (Write, Full,
// ProgFull) and exactly one goroutine the consumer surface (Read, Empty,
// HasData, Peek). The flag queries mutate domain-local state (they tick
// the domain), so even read-only use of a flag belongs to its owning
// context. Reset alone may be called from anywhere. Violating the
// discipline causes undefined behavior including data corruption.
//
// # Race Detection
//
// Go's race detector cannot observe the happens-before edge established
// by the release-store/acquire-load pair on the published pointer word,
// and reports false positives on the storage array of generic [T] queues
// under concurrent load. The algorithm is the hardware-proven asynchronous
// FIFO discipline: a slot is written strictly before the write pointer
// publication that makes it readable, and read strictly before the read
// pointer publication that makes it writable again.
//
// Tests incompatible with race detection are skipped via [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions in spin loops.
package cdcq
