// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package opentimers

// dispatch is registered as the hal.Timer callback (§4.3): it runs every
// time the hardware comparator matches, interpreting current_timeout as
// the amount of hardware time that just elapsed, and executes the four
// ordered phases verbatim from spec.md §4.3.
//
// The lock is released for the duration of each individual callback
// invocation (phase 2) and re-acquired immediately after, the same way
// the teacher's processExpired() unlocks around t.f(...): it is what lets
// a callback legally call Start/Stop/SetPeriod (including on its own
// slot) without deadlocking against this same dispatch pass, while still
// serializing against any other foreground caller for the rest of the
// dispatch.
func (m *Manager) dispatch() {
	m.lock()

	elapsed := m.currentTimeout

	// Phase 1 -- mark expired.
	for i := range m.slots {
		sl := &m.slots[i]
		if !sl.isRunning() {
			continue
		}
		if sl.ticksRemaining <= elapsed {
			sl.state.set(sExpired)
		} else {
			sl.ticksRemaining = satSub(sl.ticksRemaining, elapsed)
		}
	}

	// Phase 2 -- dispatch callbacks, in ascending slot-index order.
	for i := range m.slots {
		sl := &m.slots[i]
		if !sl.hasExpired() {
			continue
		}
		sl.state.clear(sExpired)

		cb := sl.callback
		if sl.kind == Periodic {
			sl.ticksRemaining = sl.periodTicks
		} else {
			sl.state.clear(sActive)
			sl.callback = nil
		}

		if cb != nil {
			m.unlock()
			cb()
			m.lock()
		}
	}

	// Phase 3 -- compute next deadline.
	minTicks, found := m.minRemaining()

	// Phase 4 -- re-arm.
	if found {
		m.currentTimeout = minTicks
		if err := m.timer.ScheduleIn(m.newTicks(minTicks)); err != nil {
			BUG("dispatch: ScheduleIn(%d) failed: %s\n", minTicks, err)
		}
	} else {
		m.running = false
	}

	m.unlock()
}

// minRemaining scans all running slots for the minimum ticks_remaining,
// ties broken by lowest slot index (the scan order already gives that:
// the first slot seen at the minimum value wins because later equal
// values fail the strict "<" comparison below).
func (m *Manager) minRemaining() (uint64, bool) {
	var min uint64
	found := false
	for i := range m.slots {
		sl := &m.slots[i]
		if !sl.isRunning() {
			continue
		}
		if !found || sl.ticksRemaining < min {
			min = sl.ticksRemaining
			found = true
		}
	}
	return min, found
}
