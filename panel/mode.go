// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// Errors returned when an operation is not possible in the current panel
// state. No bus access is attempted.
var (
	// ErrNoMode is returned when no display mode is set.
	ErrNoMode = errors.New("no current mode set")
	// ErrNotPowered is returned when the panel is off.
	ErrNotPowered = errors.New("panel is not powered")
)

// IdleMode describes when a mode may lower its refresh rate on its own.
type IdleMode uint8

// Valid IdleMode.
const (
	// IdleUnsupported never lowers the refresh rate.
	IdleUnsupported IdleMode = iota
	// IdleOnInactivity lowers the refresh rate when no frame was committed
	// for a while.
	IdleOnInactivity
	// IdleOnSelfRefresh lowers the refresh rate while the host is in self
	// refresh.
	IdleOnSelfRefresh
)

func (i IdleMode) String() string {
	switch i {
	case IdleUnsupported:
		return "unsupported"
	case IdleOnInactivity:
		return "on-inactivity"
	case IdleOnSelfRefresh:
		return "on-self-refresh"
	}
	return fmt.Sprintf("IdleMode(%d)", uint8(i))
}

// Set sets the IdleMode to a value represented by the string s. Set
// implements the flag.Value interface.
func (i *IdleMode) Set(s string) error {
	switch s {
	case "unsupported":
		*i = IdleUnsupported
	case "on-inactivity":
		*i = IdleOnInactivity
	case "on-self-refresh":
		*i = IdleOnSelfRefresh
	default:
		return fmt.Errorf("unknown idle mode %q: expected unsupported, on-inactivity or on-self-refresh", s)
	}
	return nil
}

// TE2Timing is the position of the TE2 pulse edges, in scan lines.
type TE2Timing struct {
	Rising  int
	Falling int
}

// Mode describes a display mode as supplied by the host graphics stack.
//
// A Mode is never modified once handed to a driver.
type Mode struct {
	Name    string
	Width   int
	Height  int
	Refresh physic.Frequency
	Idle    IdleMode
	// LP is true for the low power (always on display) mode.
	LP  bool
	TE2 TE2Timing
}

func (m *Mode) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Refresh)
}

// State is the panel power state.
type State uint8

// Valid State.
const (
	Off State = iota
	On
	LP
)

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case On:
		return "on"
	case LP:
		return "lp"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Active returns true when the panel accepts commands.
func (s State) Active() bool {
	return s != Off
}

// BacklightNotifier receives a notification each time the brightness or the
// effective refresh rate of the panel changed.
type BacklightNotifier interface {
	BacklightStateChanged()
}
