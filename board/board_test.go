package board

import (
	"context"
	"testing"
	"time"

	"github.com/openwsn-go/opentimers"
	"github.com/openwsn-go/opentimers/hal"
)

func TestBringupRejectsNilTimer(t *testing.T) {
	_, err := Bringup(Config{TimerCfg: opentimers.DefaultConfig})
	if err != ErrNoTimer {
		t.Fatalf("expected ErrNoTimer, got %v\n", err)
	}
}

func TestBringupInitialisesBSPModules(t *testing.T) {
	leds := &countingLEDs{}
	ft := hal.NewFakeTimer(32)
	b, err := Bringup(Config{
		Timer:    ft,
		TimerCfg: opentimers.Config{PortTicsPerMs: 1, PortTimerWidth: 32, MaxNumTimers: 4},
		LEDs:     leds,
	})
	if err != nil {
		t.Fatalf("Bringup: %s\n", err)
	}
	if leds.inits != 1 {
		t.Fatalf("expected LEDs.Init called once, got %d\n", leds.inits)
	}
	if b.Timers == nil {
		t.Fatalf("expected a non-nil opentimers.Manager\n")
	}
}

// A timer firing raises the debug pin, runs the dispatcher, clears the
// pin, and wakes the sleeper so Run's loop observes the firing.
func TestISRWrapperRaisesDebugPinAndWakes(t *testing.T) {
	pins := &recordingPins{}
	sleeper := NewChanSleeper()
	ft := hal.NewFakeTimer(32)

	b, err := Bringup(Config{
		Timer:     ft,
		TimerCfg:  opentimers.Config{PortTicsPerMs: 1, PortTimerWidth: 32, MaxNumTimers: 4},
		DebugPins: pins,
		Sleeper:   sleeper,
	})
	if err != nil {
		t.Fatalf("Bringup: %s\n", err)
	}

	fired := false
	if _, err := b.Timers.Start(5*time.Millisecond, opentimers.Oneshot, func() { fired = true }); err != nil {
		t.Fatalf("Start: %s\n", err)
	}

	ft.Advance(5)

	if !fired {
		t.Fatalf("expected the timer to have fired\n")
	}
	if pins.sets != 1 || pins.clears != 1 {
		t.Fatalf("expected exactly one set/clear pair, got sets=%d clears=%d\n", pins.sets, pins.clears)
	}

	done := make(chan struct{})
	go func() {
		sleeper.Sleep() // should return immediately: ISR already woke it
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Sleep did not return after the ISR woke it\n")
	}
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	ft := hal.NewFakeTimer(32)
	b, err := Bringup(Config{
		Timer:    ft,
		TimerCfg: opentimers.Config{PortTicsPerMs: 1, PortTimerWidth: 32, MaxNumTimers: 4},
	})
	if err != nil {
		t.Fatalf("Bringup: %s\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after context cancellation\n")
	}
}

type countingLEDs struct{ inits int }

func (c *countingLEDs) Init()      { c.inits++ }
func (c *countingLEDs) On(int)     {}
func (c *countingLEDs) Off(int)    {}
func (c *countingLEDs) Toggle(int) {}

type recordingPins struct{ sets, clears int }

func (p *recordingPins) Init()       {}
func (p *recordingPins) Set(int)     { p.sets++ }
func (p *recordingPins) Clear(int)   { p.clears++ }
