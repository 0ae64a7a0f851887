package opentimers

import (
	"testing"
	"time"

	"github.com/openwsn-go/opentimers/hal"
)

func newTestManager(t *testing.T, maxTimers int) (*Manager, *hal.FakeTimer) {
	t.Helper()
	cfg := Config{PortTicsPerMs: 1, PortTimerWidth: 32, MaxNumTimers: maxTimers}
	ft := hal.NewFakeTimer(cfg.PortTimerWidth)
	m, err := New(cfg, ft)
	if err != nil {
		t.Fatalf("New: %s\n", err)
	}
	return m, ft
}

// Invariant 1 (§8): a stopped slot's callback is never invoked, even once
// its original deadline has passed.
func TestInvariantStoppedSlotNeverFires(t *testing.T) {
	m, ft := newTestManager(t, 4)
	fired := 0
	id, err := m.Start(10*time.Millisecond, Oneshot, func() { fired++ })
	if err != nil {
		t.Fatalf("Start: %s\n", err)
	}
	m.Stop(id)
	ft.Advance(50)
	if fired != 0 {
		t.Fatalf("stopped slot fired %d times\n", fired)
	}
}

// Invariant 3 (§8): Start returns the lowest free index, and a slot is
// reused once freed.
func TestInvariantLowestFreeIndexReused(t *testing.T) {
	m, _ := newTestManager(t, 3)
	id0, _ := m.Start(100*time.Millisecond, Oneshot, func() {})
	id1, _ := m.Start(100*time.Millisecond, Oneshot, func() {})
	if id0 != 0 || id1 != 1 {
		t.Fatalf("expected ids 0,1, got %d,%d\n", id0, id1)
	}
	m.Stop(id0)
	id2, err := m.Start(100*time.Millisecond, Oneshot, func() {})
	if err != nil {
		t.Fatalf("Start: %s\n", err)
	}
	if id2 != 0 {
		t.Fatalf("expected freed slot 0 to be reused, got %d\n", id2)
	}
}

// Invariant 4 (§8): the table never over-allocates past MaxNumTimers.
func TestInvariantTableFullRejectsStart(t *testing.T) {
	m, _ := newTestManager(t, 2)
	if _, err := m.Start(10*time.Millisecond, Oneshot, func() {}); err != nil {
		t.Fatalf("Start 1: %s\n", err)
	}
	if _, err := m.Start(10*time.Millisecond, Oneshot, func() {}); err != nil {
		t.Fatalf("Start 2: %s\n", err)
	}
	if _, err := m.Start(10*time.Millisecond, Oneshot, func() {}); err != ErrTooManyTimers {
		t.Fatalf("expected ErrTooManyTimers, got %v\n", err)
	}
}

// Invariant 2 (§8): a periodic timer keeps firing every period until
// stopped; a oneshot fires exactly once.
func TestInvariantPeriodicKeepsFiringOneshotDoesNot(t *testing.T) {
	m, ft := newTestManager(t, 4)
	var periodicFires, oneshotFires int
	_, err := m.Start(5*time.Millisecond, Periodic, func() { periodicFires++ })
	if err != nil {
		t.Fatalf("Start periodic: %s\n", err)
	}
	_, err = m.Start(5*time.Millisecond, Oneshot, func() { oneshotFires++ })
	if err != nil {
		t.Fatalf("Start oneshot: %s\n", err)
	}
	ft.Advance(53)
	if oneshotFires != 1 {
		t.Fatalf("expected oneshot to fire exactly once, fired %d times\n", oneshotFires)
	}
	if periodicFires < 9 || periodicFires > 11 {
		t.Fatalf("expected periodic to fire ~10 times in 53 ticks, fired %d\n", periodicFires)
	}
}
