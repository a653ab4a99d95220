// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/panel"
	"periph.io/x/conn/v3/physic"
)

// Panel features tracked by the driver.
const (
	// EarlyExit lets the panel end a frame early when a new one is pending.
	EarlyExit panel.Feature = iota
	// FrameAuto enables automatic frame insertion, the panel then drops to
	// the idle refresh rate by itself.
	FrameAuto
)

const (
	hz60  = 60 * physic.Hertz
	hz120 = 120 * physic.Hertz
)

// addRecipe appends to b the commands that switch the panel to want with the
// features feat.
//
// Nothing is appended when no recipe exists for the combination.
func addRecipe(b *dsi.Batch, want panel.RefreshState, feat panel.FeatureSet) error {
	ee := feat.Has(EarlyExit)
	fi := feat.Has(FrameAuto)
	if want.Active == hz120 && !fi {
		b.Add(_FREQ_MODE, 0x00)
		// No TE shift.
		b.Add(dsi.SetTearScanline, 0x00, 0x00)
		return nil
	}
	insert, err := frameInsertion(want, fi)
	if err != nil {
		return err
	}
	b.Add(_FREQ_MODE, 0x00)
	b.Add(_FREQ_MODE, 0x30)
	if ee {
		b.Add(_EARLY_EXIT, 0x00)
	} else {
		b.Add(_EARLY_EXIT, 0x01)
	}
	b.Add(cmd2Page0...)
	b.Add(_PAGE_OFFSET, 0x1C)
	b.Add(insert...)
	b.Add(dsi.WriteMemoryStart)
	if want.Active == hz120 {
		b.Add(dsi.SetTearScanline, 0x00, 0x00)
	} else {
		// TE shift of 8.2ms.
		b.Add(dsi.SetTearScanline, 0x00, 0x01)
	}
	return nil
}

// frameInsertion returns the frame insertion payload for want.
func frameInsertion(want panel.RefreshState, auto bool) ([]byte, error) {
	if !auto {
		if want.Active == hz60 {
			return insertManual60, nil
		}
	} else if want.Idle < want.Active {
		switch want.Idle {
		case 10 * physic.Hertz:
			return insertAuto10, nil
		case 30 * physic.Hertz:
			return insertAuto30, nil
		case 60 * physic.Hertz:
			return insertAuto60, nil
		}
	}
	return nil, &RecipeError{Active: want.Active, Idle: want.Idle, Auto: auto}
}

// syncLocked brings the panel to the desired features and want.
//
// It returns true when commands were sent and committed. A transition that
// cannot be realized or fails on the bus leaves the committed state as is,
// the next event retries it.
func (d *Dev) syncLocked(force bool, want panel.RefreshState) (bool, error) {
	feat := d.tr.Desired()
	log := d.log.With("rate", want.Active, "idle", want.Idle, "ee", feat.Has(EarlyExit), "fi", feat.Has(FrameAuto))
	log.Debug("transition", "state", "evaluating", "force", force)
	if !d.tr.NeedsSync(force, want) {
		log.Debug("transition", "state", "skipped")
		return false, nil
	}
	b := d.w.Batch()
	if err := addRecipe(b, want, feat); err != nil {
		log.Warn("transition aborted", "err", err)
		return false, err
	}
	if err := b.Flush(); err != nil {
		log.Warn("transition aborted", "err", err)
		return false, wrap(err)
	}
	d.tr.Commit(want)
	log.Debug("transition", "state", "committed")
	return true, nil
}

// changeFrequencyLocked evaluates the idle policy for the current mode and
// synchronizes the panel. It returns true when the panel was updated.
func (d *Dev) changeFrequencyLocked(force bool) bool {
	p := policy{
		Mode:       d.mode,
		Allowed:    d.autoModeAllowed(),
		MinRefresh: d.minRefresh,
		IdleDelay:  d.idleDelay,
		Elapsed:    d.idleElapsed(),
	}
	d.autoRate, d.delayed = p.idleRate()
	active := p.idleActive(d.autoRate, d.selfRefresh)
	d.tr.MarkDesired(EarlyExit, active)
	d.tr.MarkDesired(FrameAuto, active)

	// Errors are logged by syncLocked. The desired state still differs so
	// the next event retries.
	updated, _ := d.syncLocked(force, panel.RefreshState{Active: d.mode.Refresh, Idle: d.autoRate})
	d.idleHint = 0
	if d.selfRefresh {
		_, hw := d.tr.Committed()
		d.idleHint = hw.Idle
	}
	if updated {
		d.notifyLocked()
		d.refreshTE2Locked()
		d.log.Debug("frequency changed", "mode", d.mode, "idle_active", active, "forced", force)
	}
	return updated
}

func (d *Dev) autoModeAllowed() bool {
	return !d.hbm && !d.dimming && d.panelIdle
}

// idleElapsed returns the time since the panel last saw activity.
func (d *Dev) idleElapsed() time.Duration {
	last := d.lastCommit
	if d.lastModeSet.After(last) {
		last = d.lastModeSet
	}
	return d.clk.Since(last)
}
