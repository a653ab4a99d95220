// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"fmt"

	"github.com/GermanBionicSystems/amoled/panel"
	"periph.io/x/conn/v3/physic"
)

// TE2Option tells whether the TE2 signal follows the refresh rate.
type TE2Option byte

// Valid TE2Option.
const (
	TE2Changeable TE2Option = 0x02
	TE2Fixed      TE2Option = 0x22
)

func (o TE2Option) String() string {
	switch o {
	case TE2Changeable:
		return "changeable"
	case TE2Fixed:
		return "fixed"
	}
	return fmt.Sprintf("TE2Option(%#x)", byte(o))
}

// te2MinRate is the lowest idle rate at which TE2 may stay changeable.
const te2MinRate = 30 * physic.Hertz

var defaultTE2 = panel.TE2Timing{Rising: 0, Falling: 0x30}

// te2State is the TE2 configuration last written to the panel.
type te2State struct {
	written bool
	opt     TE2Option
	timing  panel.TE2Timing
}

// TE2Timing returns the TE2 edges and option matching the current mode.
func (d *Dev) TE2Timing() (panel.TE2Timing, TE2Option) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.te2TimingLocked(), d.te2OptionLocked()
}

// UpdateTE2 writes the TE2 configuration to the panel.
func (d *Dev) UpdateTE2() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == nil {
		return wrap(panel.ErrNoMode)
	}
	if !d.state.Active() {
		return wrap(panel.ErrNotPowered)
	}
	return d.writeTE2Locked(te2State{written: true, opt: d.te2OptionLocked(), timing: d.te2TimingLocked()})
}

// The AOD mode only supports a fixed TE2, as do idle rates below 30Hz.
func (d *Dev) te2OptionLocked() TE2Option {
	if d.mode == nil {
		return TE2Changeable
	}
	_, hw := d.tr.Committed()
	if d.mode.LP || (hw.Idle > 0 && hw.Idle < te2MinRate) {
		return TE2Fixed
	}
	return TE2Changeable
}

func (d *Dev) te2TimingLocked() panel.TE2Timing {
	switch {
	case d.mode == nil:
	case d.mode.LP:
		if d.lp != nil && d.lp.hasTE2 {
			return d.lp.te2
		}
	case d.mode.TE2 != (panel.TE2Timing{}):
		return d.mode.TE2
	}
	return defaultTE2
}

// refreshTE2Locked writes the TE2 configuration when it changed.
func (d *Dev) refreshTE2Locked() {
	if !d.state.Active() || d.mode == nil {
		return
	}
	s := te2State{written: true, opt: d.te2OptionLocked(), timing: d.te2TimingLocked()}
	if s == d.te2 {
		return
	}
	if err := d.writeTE2Locked(s); err != nil {
		d.log.Warn("TE2 update failed", "err", err)
	}
}

func (d *Dev) writeTE2Locked(s te2State) error {
	b := d.w.Batch()
	b.Add(cmd2Page3...)
	b.Add(_TE2_OPTION, byte(s.opt))
	b.Add(_PAGE_OFFSET, 0x04)
	b.Add(_TE2_OPTION, byte(s.opt))
	b.Add(_TE2_TIMING, 0x00, 0x00, 0x00, 0x00, 0x00, byte(s.timing.Rising), 0x10, byte(s.timing.Falling))
	if err := b.Flush(); err != nil {
		return wrap(err)
	}
	d.te2 = s
	d.log.Debug("TE2 updated", "option", s.opt, "rising", s.timing.Rising, "falling", s.timing.Falling)
	return nil
}
