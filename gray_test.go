// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq_test

import (
	"math/bits"
	"testing"

	"code.hybscloud.com/cdcq"
)

// =============================================================================
// Gray Codec
// =============================================================================

// TestGrayRoundTrip verifies GrayDecode inverts GrayEncode.
func TestGrayRoundTrip(t *testing.T) {
	for n := uint64(0); n < 1<<16; n++ {
		if got := cdcq.GrayDecode(cdcq.GrayEncode(n)); got != n {
			t.Fatalf("round trip %d: got %d", n, got)
		}
	}

	// Spot-check wide values including the top bit.
	wide := []uint64{1<<32 - 1, 1 << 32, 1<<63 - 1, 1 << 63, ^uint64(0)}
	for _, n := range wide {
		if got := cdcq.GrayDecode(cdcq.GrayEncode(n)); got != n {
			t.Fatalf("round trip %#x: got %#x", n, got)
		}
	}
}

// TestGrayAdjacency verifies the single-bit-change property: consecutive
// encodings differ in exactly one bit. This is what makes a Gray-coded
// pointer safe to capture from a foreign clock domain.
func TestGrayAdjacency(t *testing.T) {
	prev := cdcq.GrayEncode(0)
	for n := uint64(1); n < 1<<16; n++ {
		cur := cdcq.GrayEncode(n)
		if d := bits.OnesCount64(prev ^ cur); d != 1 {
			t.Fatalf("encode(%d) -> encode(%d): %d bits changed, want 1", n-1, n, d)
		}
		prev = cur
	}
}

// TestGrayAdjacencyAtWrap verifies the property holds across a
// power-of-two wrap, which is where a dual-clock pointer of
// ADDR_WIDTH+1 bits rolls over.
func TestGrayAdjacencyAtWrap(t *testing.T) {
	for _, width := range []uint{2, 3, 4, 5, 8, 16, 32} {
		mask := uint64(1)<<width - 1
		last := cdcq.GrayEncode(mask)
		first := cdcq.GrayEncode(0)
		if d := bits.OnesCount64(last ^ first); d != 1 {
			t.Fatalf("width %d wrap: %d bits changed, want 1", width, d)
		}
	}
}
