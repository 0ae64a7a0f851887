// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package board

import "github.com/openwsn-go/opentimers/hal"

// isrWrapper decorates a hal.Timer so that whatever callback opentimers
// registers on it runs inside the ISR shape spec.md §4.5 names: raise a
// debug pin, run the handler, and signal "wake" on exit so Run's main
// loop does not go back to sleep. It forwards every other hal.Timer
// method unchanged via embedding.
type isrWrapper struct {
	hal.Timer
	pins    DebugPins
	sleeper Sleeper
}

func (w *isrWrapper) RegisterCallback(fn func()) {
	w.Timer.RegisterCallback(func() {
		w.pins.Set(DebugPinISR)
		fn()
		w.pins.Clear(DebugPinISR)
		w.sleeper.Wake()
	})
}
