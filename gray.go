// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cdcq

// GrayEncode converts a binary value to its Gray-code representation.
//
// The defining property is single-bit adjacency: GrayEncode(n) and
// GrayEncode(n+1) differ in exactly one bit for every n. The property also
// holds across a power-of-two wrap (GrayEncode(2^k-1) and GrayEncode(0)
// differ in exactly one bit), which is what makes Gray-coded pointers safe
// to sample from a foreign clock domain: a capture that races an in-flight
// increment resolves to either the old or the new value, never a third.
func GrayEncode(b uint64) uint64 {
	return b ^ (b >> 1)
}

// GrayDecode converts a Gray-code value back to binary.
// Inverse of GrayEncode: GrayDecode(GrayEncode(n)) == n for all n.
func GrayDecode(g uint64) uint64 {
	g ^= g >> 32
	g ^= g >> 16
	g ^= g >> 8
	g ^= g >> 4
	g ^= g >> 2
	g ^= g >> 1
	return g
}
