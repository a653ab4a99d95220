// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"fmt"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/panel"
	"periph.io/x/conn/v3/display"
)

// SetBrightness sets the brightness level, up to MaxBrightness.
//
// In the always on display mode the level selects one of the brightness
// bins.
func (d *Dev) SetBrightness(level uint16) error {
	if level > MaxBrightness {
		return fmt.Errorf("nt37290: brightness %d above %d", level, MaxBrightness)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brightness = level
	if !d.state.Active() {
		return wrap(panel.ErrNotPowered)
	}
	if d.state == panel.LP {
		return d.setBinnedLPLocked(level)
	}
	b := d.w.Batch()
	if d.lhbm && evt1.Match(d.w.Rev()) {
		addLHBMLevel(b, level)
	}
	b.Add(dsi.SetBrightness, byte(level>>8), byte(level))
	if err := b.Flush(); err != nil {
		return wrap(err)
	}
	d.notifyLocked()
	return nil
}

// Brightness returns the current brightness level.
func (d *Dev) Brightness() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

// Backlight sets the brightness with 0 being off, and 255 being maximum.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if intensity < 0 || intensity > 255 {
		return fmt.Errorf("nt37290: intensity %d out of range [0, 255]", intensity)
	}
	return d.SetBrightness(uint16(int(intensity) * MaxBrightness / 255))
}

// SetLocalHBM turns the local high brightness mode on or off. Nothing is sent
// when it is already in the requested state.
func (d *Dev) SetLocalHBM(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lhbm == on {
		return nil
	}
	if !d.state.Active() {
		return wrap(panel.ErrNotPowered)
	}
	newer := evt1.Match(d.w.Rev())
	b := d.w.Batch()
	if on {
		if newer {
			addLHBMLevel(b, d.brightness)
			// FPS gamma timing.
			b.Add(_FREQ_MODE, 0x02)
			b.Add(_FPS_MODE, 0x01)
		} else {
			b.Add(_FPS_MODE, 0x21)
		}
		b.Add(_LHBM_ON)
	} else {
		b.Add(_LHBM_OFF)
		if newer {
			b.Add(_FPS_MODE, 0x00)
			// Normal gamma timing.
			b.Add(_FREQ_MODE, 0x00)
		} else {
			b.Add(_FPS_MODE, 0x20)
		}
	}
	if err := b.Flush(); err != nil {
		return wrap(err)
	}
	d.lhbm = on
	d.log.Debug("local hbm", "on", on, "rev", d.w.Rev())
	return nil
}

// addLHBMLevel writes the brightness used by the local high brightness
// circle.
func addLHBMLevel(b *dsi.Batch, level uint16) {
	v := level * 4
	hi, lo := byte(v>>8), byte(v)
	b.Add(cmd2Page0...)
	b.Add(_PAGE_OFFSET, 0x4C)
	b.Add(_LHBM_DBV, hi, lo, hi, lo, hi, lo)
}
