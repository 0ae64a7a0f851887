// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package opentimers

import "errors"

var ErrInvalidConfig = errors.New("invalid configuration")
var ErrTooManyTimers = errors.New("no free timer slot")
var ErrTicksOverflow = errors.New("duration overflows the configured tick width")
var ErrNilCallback = errors.New("callback must not be nil")
