// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package board

import (
	"github.com/openwsn-go/opentimers"
	"github.com/openwsn-go/opentimers/hal"
)

// Debug pin indices, matching the single pin spec.md §4.5 names ("raise a
// debug pin" on ISR entry/exit).
const (
	DebugPinISR = iota
)

// Config lists the BSP modules a given board wires, plus the opentimers
// Config and hal.Timer it multiplexes onto. Different boards share the
// same Bringup sequence over different peripheral sets -- a TelosB-shaped
// Config supplies Radio/RadioTimer/SPI, a minimal host-simulation Config
// leaves them nil and gets Noop stand-ins, matching board.c across the
// two original boards retrieved in the pack (TelosB/MSP430, K20/ARM).
type Config struct {
	Timer     hal.Timer
	TimerCfg  opentimers.Config
	LEDs      LEDs
	UART      UART
	SPI       SPI
	Radio     Radio
	RadioTmr  RadioTimer
	DebugPins DebugPins
	Sleeper   Sleeper
}

// withDefaults fills every nil BSP module with its Noop/Fake stand-in so
// Bringup never nil-derefs a board that only cares about a subset of
// peripherals.
func (c Config) withDefaults() Config {
	if c.LEDs == nil {
		c.LEDs = NoopLEDs{}
	}
	if c.UART == nil {
		c.UART = NoopUART{}
	}
	if c.SPI == nil {
		c.SPI = NoopSPI{}
	}
	if c.Radio == nil {
		c.Radio = NoopRadio{}
	}
	if c.RadioTmr == nil {
		c.RadioTmr = NoopRadioTimer{}
	}
	if c.DebugPins == nil {
		c.DebugPins = NoopDebugPins{}
	}
	if c.Sleeper == nil {
		c.Sleeper = NewChanSleeper()
	}
	return c
}
