// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"time"

	"github.com/GermanBionicSystems/amoled/panel"
	"periph.io/x/conn/v3/physic"
)

// idleTiers are the idle refresh rates the frame insertion recipes support,
// ascending.
var idleTiers = []physic.Frequency{10 * physic.Hertz, 30 * physic.Hertz, 60 * physic.Hertz}

// policy holds the inputs of the idle refresh rate selection.
type policy struct {
	Mode *panel.Mode
	// Allowed is false while HBM or dimming is on, or when the panel idle is
	// disabled.
	Allowed    bool
	MinRefresh physic.Frequency
	IdleDelay  time.Duration
	// Elapsed is the time since the last frame commit or mode set.
	Elapsed time.Duration
}

// idleRate returns the idle refresh rate the panel may drop to on its own, 0
// when it must stay at the active rate.
//
// delayed is true when an idle rate was available but the idle delay did not
// elapse yet.
func (p *policy) idleRate() (rate physic.Frequency, delayed bool) {
	if p.MinRefresh > 0 && p.Allowed && p.Mode.Idle != panel.IdleUnsupported {
		rate = snapIdle(p.MinRefresh)
	}
	// The idle rate must be strictly lower. A minimum equal to the active rate
	// disables idle.
	if rate >= p.Mode.Refresh {
		rate = 0
	}
	if rate != 0 && p.IdleDelay != 0 && p.Elapsed < p.IdleDelay {
		return 0, true
	}
	return rate, false
}

// idleActive returns true when the panel should lower its refresh rate by
// itself, with early exit and automatic frame insertion enabled.
func (p *policy) idleActive(rate physic.Frequency, selfRefresh bool) bool {
	if rate == 0 {
		return false
	}
	switch p.Mode.Idle {
	case panel.IdleOnInactivity:
		return true
	case panel.IdleOnSelfRefresh:
		return selfRefresh
	}
	return false
}

// snapIdle rounds hint up to the closest supported idle tier. It returns 0
// when hint is above all of them.
func snapIdle(hint physic.Frequency) physic.Frequency {
	for _, t := range idleTiers {
		if hint <= t {
			return t
		}
	}
	return 0
}
