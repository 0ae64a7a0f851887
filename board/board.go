// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package board performs spec.md §4.5's bring-up sequence (watchdog,
// clock tree, GPIO, per-module init, unmask interrupts) and supplies the
// outer main loop: sleep until woken by an ISR, then loop. It is the
// glue between the hal.Timer port and the opentimers Manager on one
// side, and the remaining BSP peripherals on the other.
package board

import (
	"context"
	"errors"

	"github.com/openwsn-go/opentimers"
)

// ErrNoTimer is returned by Bringup when Config.Timer is nil: opentimers
// has nothing to multiplex onto without a hardware timer port.
var ErrNoTimer = errors.New("board: Config.Timer must not be nil")

// Board is a brought-up device: its timer subsystem plus the BSP modules
// Bringup initialised.
type Board struct {
	cfg    Config
	Timers *opentimers.Manager
}

// Bringup performs the module-init sequence of spec.md §4.5 in order and
// returns a Board with its dispatcher already unmasked (the hardware
// timer armed and able to fire). Peripherals left nil in cfg get their
// Noop stand-in (see Config.withDefaults) so a minimal host-simulation
// Config -- just a Timer and a TimerCfg -- is enough to bring a board up.
func Bringup(cfg Config) (*Board, error) {
	cfg = cfg.withDefaults()
	if cfg.Timer == nil {
		return nil, ErrNoTimer
	}

	// Disabling the watchdog, configuring the clock tree and GPIO for
	// peripheral control lines are board-specific register pokes with no
	// host-simulation equivalent; bring-up's remaining steps are the ones
	// that have a concrete Go-testable shape.
	cfg.DebugPins.Init()
	cfg.LEDs.Init()
	cfg.UART.Init()
	cfg.SPI.Init()
	cfg.Radio.Init()
	cfg.RadioTmr.Init()

	isr := &isrWrapper{
		Timer:   cfg.Timer,
		pins:    cfg.DebugPins,
		sleeper: cfg.Sleeper,
	}
	mgr, err := opentimers.New(cfg.TimerCfg, isr)
	if err != nil {
		return nil, err
	}

	if starter, ok := cfg.Timer.(interface{ Start() }); ok {
		starter.Start() // unmask global interrupts: arm the hardware timer's own driving loop
	}

	return &Board{cfg: cfg, Timers: mgr}, nil
}

// Run is the outer main loop (§4.5, §5): sleep until an ISR wakes the
// board, then loop. It returns once ctx is cancelled, after one last
// harmless wake to unblock the sleep primitive.
func (b *Board) Run(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(stopped)
		b.cfg.Sleeper.Wake()
	}()

	for {
		b.cfg.Sleeper.Sleep()
		select {
		case <-stopped:
			if shutter, ok := b.cfg.Timer.(interface{ Shutdown() }); ok {
				shutter.Shutdown()
			}
			return
		default:
		}
	}
}
