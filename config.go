// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package opentimers

import (
	"time"

	"github.com/openwsn-go/opentimers/hal"
)

// Config carries the platform constants spec.md §6 names as board
// compile-time constants (PORT_TICS_PER_MS, PORT_TIMER_WIDTH,
// MAX_NUM_TIMERS). A Go module has no preprocessor, so these are a plain
// struct validated once at New().
type Config struct {
	// PortTicsPerMs is the number of hardware ticks per millisecond.
	PortTicsPerMs uint64
	// PortTimerWidth is the bit width of the underlying free-running
	// counter (typically 16 or 32).
	PortTimerWidth uint8
	// MaxNumTimers is the fixed capacity of the virtual timer table
	// (typically 8-16).
	MaxNumTimers int
}

// DefaultConfig is a reasonable starting point for host simulation: a
// millisecond tick resolution on a 32-bit counter with 16 timer slots.
var DefaultConfig = Config{
	PortTicsPerMs:  1,
	PortTimerWidth: 32,
	MaxNumTimers:   16,
}

// Validate checks the configuration is internally consistent: a non-zero
// PortTicsPerMs, a PortTimerWidth within [hal.MinWidth, hal.MaxWidth] and a
// positive MaxNumTimers. It does not check ms->ticks overflow; ticksFor
// rejects an overflowing duration at each conversion instead.
func (c Config) Validate() error {
	if c.PortTicsPerMs == 0 {
		return ErrInvalidConfig
	}
	if c.PortTimerWidth < hal.MinWidth || c.PortTimerWidth > hal.MaxWidth {
		return ErrInvalidConfig
	}
	if c.MaxNumTimers <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// maxTicks returns the largest tick value representable by the configured
// counter width.
func (c Config) maxTicks() uint64 {
	return hal.WidthMask(c.PortTimerWidth)
}

// ticksFor converts a duration to hardware ticks, counting only whole
// milliseconds and rounding a sub-millisecond or zero duration up to 1 tick
// (a timer armed for "no time at all" must
// still satisfy the HAL's non-zero delta contract; it then fires on the
// very next dispatcher tick, per spec.md §8's zero-duration boundary
// case). It returns ErrTicksOverflow if the result does not fit in the
// configured counter width -- the conversion itself is otherwise exactly
// duration_ms * PORT_TICS_PER_MS from spec.md §4.4.
func (c Config) ticksFor(d time.Duration) (uint64, error) {
	ms := uint64(d / time.Millisecond)
	if ms != 0 && c.PortTicsPerMs > (^uint64(0))/ms {
		return 0, ErrTicksOverflow
	}
	ticks := ms * c.PortTicsPerMs
	if ticks > c.maxTicks() {
		return 0, ErrTicksOverflow
	}
	if ticks == 0 {
		ticks = 1
	}
	return ticks, nil
}
