// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package opentimers

import (
	"fmt"

	"github.com/intuitivelabs/slog"
)

// Log is the package-wide logger. Adjust Log.Level to change verbosity;
// the default only surfaces warnings and above, matching a deployed mote's
// expected idle log volume.
var Log = slog.Log{
	Prefix: "opentimers: ",
	Level:  slog.LWARN,
}

func DBGon() bool  { return Log.Level >= slog.LDBG }
func INFOon() bool { return Log.Level >= slog.LINFO }
func WARNon() bool { return Log.Level >= slog.LWARN }
func ERRon() bool  { return Log.Level >= slog.LERR }

func DBG(f string, args ...interface{})  { Log.LOG(slog.LDBG, f, args...) }
func INFO(f string, args ...interface{}) { Log.LOG(slog.LINFO, f, args...) }
func WARN(f string, args ...interface{}) { Log.LOG(slog.LWARN, f, args...) }
func ERR(f string, args ...interface{})  { Log.LOG(slog.LERR, f, args...) }

// BUG logs an unexpected internal-invariant violation: a programming
// error in this package, not a caller mistake. It never panics: a mote
// cannot afford to reboot over a logged inconsistency it can route around.
func BUG(f string, args ...interface{}) { Log.LOG(slog.LBUG, f, args...) }

// PANIC logs at the highest level and stops the goroutine. Reserved for
// corruption that makes it unsafe to keep dispatching timers at all (e.g.
// a slot table structural invariant broken beyond repair).
func PANIC(f string, args ...interface{}) {
	Log.LOG(slog.LCRIT, f, args...)
	panic(fmt.Sprintf(f, args...))
}
