// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// Queue is the combined producer-consumer interface for a dual-clock FIFO.
//
// Queue provides non-blocking Write and Read plus the per-domain flag
// queries. Both operations return ErrWouldBlock when they cannot proceed
// (queue full, queue empty, or a reset sequencing through the domain).
//
// The interface intentionally excludes a length query: an exact count
// does not exist in a dual-clock queue — each domain only ever holds a
// boundedly-stale view of the other domain's pointer. Track counts in
// application logic when needed.
//
// Example:
//
//	q := cdcq.NewFIFO[int](1024)
//
//	// Producer context
//	val := 42
//	if err := q.Write(&val); err != nil {
//	    // Queue full - handle backpressure
//	}
//
//	// Consumer context
//	elem, err := q.Read()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
	Reset()
}

// Producer is the write-domain interface. Only the single producer
// context may call any of its methods; each call advances one
// write-domain tick.
//
// The element is passed by pointer to avoid copying large structs. The
// queue stores a copy of the pointed-to value, so the original can be
// modified after Write returns.
type Producer[T any] interface {
	// Write adds an element to the queue (non-blocking).
	// The element is copied into the queue's storage array.
	// Returns nil on acceptance, ErrWouldBlock if the queue is full or
	// the write domain is sequencing a reset. A rejected element is
	// dropped silently: no pointer moves, no slot is touched.
	Write(elem *T) error

	// Full reports whether occupancy has reached depth from the
	// producer's (conservative, boundedly-stale) view. Forced true
	// during write-domain reset.
	Full() bool

	// ProgFull reports whether remaining space has shrunk to the
	// reserve margin. Implied by Full; forced true during write-domain
	// reset.
	ProgFull() bool
}

// Consumer is the read-domain interface. Only the single consumer context
// may call any of its methods; each call advances one read-domain tick.
type Consumer[T any] interface {
	// Read removes and returns the oldest element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty or the
	// read domain is sequencing a reset. A rejected read mutates no
	// state.
	Read() (T, error)

	// Empty reports whether no element is visible from the consumer's
	// (conservative, boundedly-stale) view. Forced true during
	// read-domain reset.
	Empty() bool

	// HasData reports whether at least one element is readable.
	// Always the negation of Empty.
	HasData() bool
}

// WordQueue is the combined interface for the width-conversion adapters,
// which move bit-packed uint64 words instead of generic elements.
//
// Concat implements it with a narrow write side and a wide read side;
// Split with a wide write side and a narrow read side.
type WordQueue interface {
	WordProducer
	WordConsumer
	Cap() int
	Reset()
}

// WordProducer is the write-domain interface of a width adapter.
// Words are passed by value, mirroring how the queue family handles
// machine-word payloads.
type WordProducer interface {
	// Write adds a word to the queue (non-blocking).
	// Returns ErrWouldBlock if writes are refused (inner queue full or
	// write-domain reset sequencing).
	Write(v uint64) error

	// Full reports whether writes would be refused.
	Full() bool

	// ProgFull reports whether remaining space has shrunk to the
	// reserve margin.
	ProgFull() bool
}

// WordConsumer is the read-domain interface of a width adapter.
type WordConsumer interface {
	// Read removes and returns the next word (non-blocking).
	// Returns (0, ErrWouldBlock) if nothing is readable.
	Read() (uint64, error)

	// Empty reports whether nothing is readable.
	Empty() bool

	// HasData reports whether a word is readable.
	// Always the negation of Empty.
	HasData() bool
}
