// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq_test

import (
	"testing"

	"code.hybscloud.com/cdcq"
)

// =============================================================================
// Builder API
// =============================================================================

// Interface satisfaction (compile-time).
var (
	_ cdcq.Queue[int] = (*cdcq.FIFO[int])(nil)
	_ cdcq.Queue[int] = (*cdcq.FWFT[int])(nil)
	_ cdcq.WordQueue  = (*cdcq.Concat)(nil)
	_ cdcq.WordQueue  = (*cdcq.Split)(nil)
)

// TestBuilderAPI exercises every build path with non-default
// configuration and verifies the parameters stick.
func TestBuilderAPI(t *testing.T) {
	q := cdcq.Build[int](cdcq.New(16).Reserve(4).Stages(3))
	if q.Cap() != 16 {
		t.Fatalf("Cap: got %d, want 16", q.Cap())
	}
	if q.Reserve() != 4 {
		t.Fatalf("Reserve: got %d, want 4", q.Reserve())
	}
	if q.Stages() != 3 {
		t.Fatalf("Stages: got %d, want 3", q.Stages())
	}

	f := cdcq.BuildFWFT[string](cdcq.New(8).Stages(5))
	if f.Cap() != 8 {
		t.Fatalf("FWFT Cap: got %d, want 8", f.Cap())
	}

	c := cdcq.New(4).Reserve(1).BuildConcat(8, 4)
	if c.Cap() != 4 || c.Ratio() != 4 {
		t.Fatalf("Concat Cap/Ratio: got %d/%d, want 4/4", c.Cap(), c.Ratio())
	}

	s := cdcq.New(4).Stages(4).BuildSplit(16, 2)
	if s.Cap() != 4 || s.Ratio() != 2 {
		t.Fatalf("Split Cap/Ratio: got %d/%d, want 4/2", s.Cap(), s.Ratio())
	}
}

// TestDirectConstructorDefaults verifies the direct constructors apply
// the documented defaults: reserve 0, 2 capture stages.
func TestDirectConstructorDefaults(t *testing.T) {
	q := cdcq.NewFIFO[int](32)
	if q.Reserve() != 0 {
		t.Fatalf("Reserve default: got %d, want 0", q.Reserve())
	}
	if q.Stages() != 2 {
		t.Fatalf("Stages default: got %d, want 2", q.Stages())
	}
}

// =============================================================================
// Construction Failures
//
// Misconfiguration is the one hard failure in the package, reported
// before any operation is possible.
// =============================================================================

// mustPanic runs f and fails the test unless it panics.
func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	f()
}

// TestPanicOnBadDepth covers non-power-of-two, undersized, and oversized
// depths across all constructors.
func TestPanicOnBadDepth(t *testing.T) {
	for _, depth := range []int{-1, 0, 1, 3, 6, 1000} {
		mustPanic(t, "NewFIFO", func() { cdcq.NewFIFO[int](depth) })
		mustPanic(t, "NewFWFT", func() { cdcq.NewFWFT[int](depth) })
		mustPanic(t, "New", func() { cdcq.New(depth) })
		mustPanic(t, "NewConcat", func() { cdcq.NewConcat(8, 2, depth) })
		mustPanic(t, "NewSplit", func() { cdcq.NewSplit(8, 2, depth) })
	}
}

// TestPanicOnBadReserve covers reserve outside [0, depth).
func TestPanicOnBadReserve(t *testing.T) {
	mustPanic(t, "negative", func() { cdcq.New(8).Reserve(-1) })
	mustPanic(t, "equal to depth", func() { cdcq.New(8).Reserve(8) })
	mustPanic(t, "above depth", func() { cdcq.New(8).Reserve(9) })

	// Boundary: depth-1 is the largest valid margin.
	if q := cdcq.Build[int](cdcq.New(8).Reserve(7)); q.Reserve() != 7 {
		t.Fatalf("Reserve(7): got %d", q.Reserve())
	}
}

// TestPanicOnBadStages covers capture stage counts outside [2, 8].
func TestPanicOnBadStages(t *testing.T) {
	for _, stages := range []int{-1, 0, 1, 9, 100} {
		mustPanic(t, "Stages", func() { cdcq.New(8).Stages(stages) })
	}
	for _, stages := range []int{2, 8} {
		if q := cdcq.Build[int](cdcq.New(8).Stages(stages)); q.Stages() != stages {
			t.Fatalf("Stages(%d): got %d", stages, q.Stages())
		}
	}
}

// TestPanicOnBadRatio covers width adapter misconfiguration: zero width,
// non-power-of-two or undersized ratio, and accumulator overflow.
func TestPanicOnBadRatio(t *testing.T) {
	mustPanic(t, "zero width", func() { cdcq.NewConcat(0, 4, 4) })
	mustPanic(t, "ratio 1", func() { cdcq.NewConcat(8, 1, 4) })
	mustPanic(t, "ratio 3", func() { cdcq.NewConcat(8, 3, 4) })
	mustPanic(t, "overflow", func() { cdcq.NewConcat(32, 4, 4) })
	mustPanic(t, "split zero width", func() { cdcq.NewSplit(0, 4, 4) })
	mustPanic(t, "split ratio 3", func() { cdcq.NewSplit(8, 3, 4) })
	mustPanic(t, "split overflow", func() { cdcq.NewSplit(17, 4, 4) })

	// Boundary: exactly 64 accumulated bits is valid.
	if a := cdcq.NewConcat(16, 4, 4); a.Ratio() != 4 {
		t.Fatalf("NewConcat(16, 4): Ratio got %d", a.Ratio())
	}
}

// TestMinimumDepth verifies the smallest legal queue (depth 2,
// ADDR_WIDTH 1) works end to end.
func TestMinimumDepth(t *testing.T) {
	q := cdcq.NewFIFO[int](2)

	for i := range 2 {
		v := i
		if err := q.Write(&v); err != nil {
			t.Fatalf("Write(%d): %v", i, err)
		}
	}
	if !q.Full() {
		t.Fatal("Full at depth 2: got false")
	}
	for i := range 2 {
		if got := pollRead[int](t, q); got != i {
			t.Fatalf("Read(%d): got %d, want %d", i, got, i)
		}
	}
	if !q.Empty() {
		t.Fatal("Empty after drain: got false")
	}
}
