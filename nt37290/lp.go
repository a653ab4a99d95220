// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/panel"
)

// binnedLP is a brightness bin of the always on display mode.
type binnedLP struct {
	name string
	// threshold is the highest brightness level of the bin.
	threshold uint16
	cmds      *dsi.CmdSet
	te2       panel.TE2Timing
	hasTE2    bool
}

var binnedLPs = []binnedLP{
	{name: "off", threshold: 0, cmds: &lpOffCmds},
	{name: "low", threshold: 80, cmds: &lpLowCmds, te2: panel.TE2Timing{Rising: 0, Falling: 48}, hasTE2: true},
	{name: "high", threshold: 2047, cmds: &lpHighCmds, te2: panel.TE2Timing{Rising: 0, Falling: 48}, hasTE2: true},
}

// selectBinnedLP returns the first bin covering level, or the last one.
func selectBinnedLP(level uint16) *binnedLP {
	for i := range binnedLPs {
		if level <= binnedLPs[i].threshold {
			return &binnedLPs[i]
		}
	}
	return &binnedLPs[len(binnedLPs)-1]
}

func (d *Dev) enterLPLocked() error {
	if err := d.w.SendSet(&lpCmds); err != nil {
		return wrap(err)
	}
	d.state = panel.LP
	d.lp = nil
	if err := d.setBinnedLPLocked(d.brightness); err != nil {
		return err
	}
	d.log.Info("enter LP mode", "bin", d.lp.name)
	return nil
}

func (d *Dev) exitLPLocked() error {
	if err := d.w.Send(dsi.SeqDelay(34*time.Millisecond, dsi.ExitIdleMode)); err != nil {
		return wrap(err)
	}
	d.state = panel.On
	d.lp = nil
	// The frequency registers must be rewritten when leaving AOD.
	d.changeFrequencyLocked(true)
	// 2C must be sent on each of the next two vsync.
	err := d.w.Send(
		dsi.SeqDelay(34*time.Millisecond, dsi.WriteMemoryStart),
		dsi.Seq(dsi.WriteMemoryStart),
		dsi.Seq(dsi.SetDisplayOn),
	)
	if err != nil {
		return wrap(err)
	}
	d.log.Info("exit LP mode")
	return nil
}

// setBinnedLPLocked switches to the bin matching level, if not already
// selected.
func (d *Dev) setBinnedLPLocked(level uint16) error {
	b := selectBinnedLP(level)
	if b == d.lp {
		return nil
	}
	if err := d.w.SendSet(b.cmds); err != nil {
		return wrap(err)
	}
	d.lp = b
	d.log.Debug("binned lp", "bin", b.name, "level", level)
	d.notifyLocked()
	d.refreshTE2Locked()
	return nil
}
