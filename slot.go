// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package opentimers

// slot is one entry of the fixed-capacity virtual timer table (§3, §4.2).
// ticks_remaining is a plain saturating uint64 counter, not a wraparound
// hal.Ticks: it is always a countdown relative to the slot's own prior
// value, never compared against another slot's absolute reading, so no
// wraparound-safe comparison is needed (§3 invariant 5: "Tick arithmetic
// is saturating/unsigned; ticks_remaining is never negative").
type slot struct {
	periodTicks    uint64
	ticksRemaining uint64
	kind           Kind
	callback       func()
	state          slotState
}

func (s *slot) isRunning() bool {
	return s.state.has(sActive)
}

func (s *slot) hasExpired() bool {
	return s.state.has(sExpired)
}

// satSub subtracts b from a, saturating at 0 instead of wrapping.
func satSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}
