// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package opentimers

import "sync/atomic"

// slotState packs a logical timer slot's lifecycle flags into a single
// word, compare-and-swap updated. All mutation of the slot table already
// happens under Manager.mu (§5), so a plain field would be correct too,
// but the packed/atomic representation is kept from the teacher's wheel-
// position tracking (tInfo) -- narrowed here to just the lifecycle flags,
// since a flat slot table needs no wheel/index bookkeeping. Atomic access
// lets SlotID validity be sampled from Stop/SetPeriod without taking
// Manager.mu, which Stop's O(1) contract (§4.4) wants to be able to assume
// if the lock granularity of an implementation ever changes.
type slotState struct {
	v uint32
}

const (
	sActive  uint32 = 1 << iota // slot allocated and counting (is_running)
	sExpired                    // matured this tick, awaiting dispatch (phase 1->2)
)

func (s *slotState) set(mask uint32) {
	for {
		crt := atomic.LoadUint32(&s.v)
		if atomic.CompareAndSwapUint32(&s.v, crt, crt|mask) {
			return
		}
	}
}

func (s *slotState) clear(mask uint32) {
	for {
		crt := atomic.LoadUint32(&s.v)
		if atomic.CompareAndSwapUint32(&s.v, crt, crt&^mask) {
			return
		}
	}
}

func (s *slotState) has(mask uint32) bool {
	return atomic.LoadUint32(&s.v)&mask == mask
}

func (s *slotState) reset() {
	atomic.StoreUint32(&s.v, 0)
}
