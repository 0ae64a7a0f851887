// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package opentimers multiplexes an arbitrary bounded number of one-shot
// or periodic logical timers onto a single hardware comparator (hal.Timer).
// It is the Go expression of OpenWSN's opentimers module: application code
// calls Start/Stop/SetPeriod; a dispatcher, driven by the hardware
// callback, advances the table and re-arms the comparator.
package opentimers

import (
	"sync"

	"github.com/openwsn-go/opentimers/hal"
)

// Manager is the process-wide virtual timer table plus the hardware timer
// it multiplexes onto. §9 calls for exactly one instance per device,
// constructed via an explicit init function and never torn down; New is
// that entry point -- callers are expected to construct exactly one
// Manager (typically held by the board package) rather than several
// competing for the same hal.Timer.
type Manager struct {
	mu sync.Mutex

	cfg   Config
	timer hal.Timer

	slots []slot

	running        bool
	currentTimeout uint64
}

// New constructs a Manager (≅ opentimers_init()), validates cfg, and
// registers the dispatcher as timer's callback. timer must not yet be
// started/armed by the caller.
func New(cfg Config, timer hal.Timer) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if timer == nil {
		return nil, ErrInvalidConfig
	}
	if timer.Width() != cfg.PortTimerWidth {
		return nil, ErrInvalidConfig
	}
	m := &Manager{
		cfg:   cfg,
		timer: timer,
		slots: make([]slot, cfg.MaxNumTimers),
	}
	timer.RegisterCallback(m.dispatch)
	return m, nil
}

func (m *Manager) lock()   { m.mu.Lock() }
func (m *Manager) unlock() { m.mu.Unlock() }

// now returns the hardware timer's current hal.Ticks reading unchanged; New
// has already checked that its width equals cfg.PortTimerWidth.
func (m *Manager) now() hal.Ticks {
	return m.timer.Now()
}

func (m *Manager) newTicks(v uint64) hal.Ticks {
	return hal.NewTicks(m.cfg.PortTimerWidth, v)
}

// lowestFreeSlot returns the lowest-indexed idle slot, or -1 if the table
// is full. Invariant 3 in §8 (the returned id after a successful Start is
// the lowest free index) depends on this scanning from index 0 up.
func (m *Manager) lowestFreeSlot() int {
	for i := range m.slots {
		if !m.slots[i].isRunning() {
			return i
		}
	}
	return -1
}
