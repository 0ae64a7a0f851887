// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package opentimers

import "time"

// Start allocates the lowest-index free slot, arms it for duration (whole
// milliseconds times PortTicsPerMs, any sub-millisecond remainder dropped; a
// duration under one millisecond is armed for one tick and fires on the very
// next dispatcher tick), and returns its SlotID (§4.4 opentimers_start()). callback runs on
// whatever goroutine drives the underlying hal.Timer; it may itself call
// Start/Stop/SetPeriod, including on the slot it was invoked for.
//
// If the table is full, ErrTooManyTimers is returned and InvalidSlotID. If
// duration cannot be represented in the configured counter width,
// ErrTicksOverflow is returned instead.
func (m *Manager) Start(duration time.Duration, kind Kind, callback func()) (SlotID, error) {
	if callback == nil {
		return InvalidSlotID, ErrNilCallback
	}
	ticks, err := m.cfg.ticksFor(duration)
	if err != nil {
		return InvalidSlotID, err
	}

	m.lock()
	defer m.unlock()

	idx := m.lowestFreeSlot()
	if idx < 0 {
		return InvalidSlotID, ErrTooManyTimers
	}

	sl := &m.slots[idx]
	sl.state.reset()
	sl.periodTicks = ticks
	sl.ticksRemaining = ticks
	sl.kind = kind
	sl.callback = callback
	sl.state.set(sActive)

	switch {
	case !m.running:
		// Subsystem was idle: this slot becomes the sole deadline.
		m.timer.Reset()
		if err := m.timer.ScheduleIn(m.newTicks(ticks)); err != nil {
			BUG("Start: ScheduleIn(%d) failed: %s\n", ticks, err)
		}
		m.currentTimeout = ticks
		m.running = true
	case ticks < m.currentTimeout:
		// New slot expires sooner than the currently armed deadline. Per
		// §4.4 this is an approximation: other running slots' ticks_remaining
		// are not adjusted for the ticks that already elapsed since the
		// previous arm. The next dispatch pass subtracts only this new
		// currentTimeout from them, so those elapsed ticks are never
		// accounted for and the other slots fire that much later.
		if err := m.timer.ScheduleIn(m.newTicks(ticks)); err != nil {
			BUG("Start: ScheduleIn(%d) failed: %s\n", ticks, err)
		}
		m.currentTimeout = ticks
	}

	return SlotID(idx), nil
}

// Stop idles slot id, suppressing its callback if the dispatcher has
// already marked it expired but not yet reached it in this tick's phase 2
// (§4.4 opentimers_stop()). It does not recompute the armed deadline --
// an already-armed-too-early comparator still fires, and that dispatch
// pass simply finds one fewer running slot. Stop on an unknown or already
// idle id is a no-op; it never returns an error, matching the teacher's
// fire-and-forget Del() semantics for an unknown timer id.
func (m *Manager) Stop(id SlotID) {
	m.lock()
	defer m.unlock()

	if int(id) < 0 || int(id) >= len(m.slots) {
		return
	}
	sl := &m.slots[id]
	sl.state.clear(sActive | sExpired)
	sl.callback = nil
}

// SetPeriod overwrites the reload value of a running periodic (or oneshot)
// slot without touching its current ticks_remaining (§4.4
// opentimers_set_period()): the timer in flight still fires at its
// originally scheduled time, and the new period only takes effect starting
// with its next reload. A stopped or unknown id is silently ignored; a
// period that does not fit the configured counter width is ignored too,
// after being logged at ERR level.
func (m *Manager) SetPeriod(id SlotID, newPeriod time.Duration) {
	ticks, err := m.cfg.ticksFor(newPeriod)
	if err != nil {
		if ERRon() {
			ERR("SetPeriod(%d, %s): %s\n", id, newPeriod, err)
		}
		return
	}

	m.lock()
	defer m.unlock()

	if int(id) < 0 || int(id) >= len(m.slots) {
		return
	}
	sl := &m.slots[id]
	if !sl.isRunning() {
		return
	}
	sl.periodTicks = ticks
}
