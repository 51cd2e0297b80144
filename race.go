// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package cdcq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent producer/consumer tests on the generic
// [T] queue variants, which trigger false positives because the detector
// cannot track the happens-before edge established by the published
// pointer's release-store/acquire-load pair.
const RaceEnabled = true
