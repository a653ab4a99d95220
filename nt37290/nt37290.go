// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/panel"
	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Brightness range of the panel, as written with the DCS brightness command.
const (
	MinBrightness     = 3
	MaxBrightness     = 4094
	DefaultBrightness = 1023
)

const (
	// earlyExitThreshold is just over two frames at 120Hz, the time auto mode
	// needs before it starts lowering the refresh rate.
	earlyExitThreshold = 17 * time.Millisecond
	// idleDelayThreshold avoids disabling auto mode too often while frames
	// are continuously updated.
	idleDelayThreshold = 50 * time.Millisecond
)

// Modes are the display modes supported by the panel.
var Modes = []panel.Mode{
	{
		Name:    "1440x3120x60",
		Width:   1440,
		Height:  3120,
		Refresh: 60 * physic.Hertz,
		Idle:    panel.IdleUnsupported,
		TE2:     panel.TE2Timing{Rising: 0, Falling: 48},
	},
	{
		Name:    "1440x3120x120",
		Width:   1440,
		Height:  3120,
		Refresh: 120 * physic.Hertz,
		Idle:    panel.IdleOnSelfRefresh,
		TE2:     panel.TE2Timing{Rising: 0, Falling: 48},
	},
}

// LPMode is the always on display mode.
var LPMode = panel.Mode{
	Name:    "1440x3120x30",
	Width:   1440,
	Height:  3120,
	Refresh: 30 * physic.Hertz,
	LP:      true,
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	MinRefresh: 10 * physic.Hertz,
	PanelIdle:  true,
	Brightness: DefaultBrightness,
}

// Opts defines the options for the device.
type Opts struct {
	// MinRefresh is the lowest refresh rate the host tolerates while the
	// panel is idle. 0 disables idle.
	MinRefresh physic.Frequency
	// IdleDelay defers idle until no frame was committed for this long.
	IdleDelay time.Duration
	// PanelIdle allows the panel to lower its refresh rate on its own.
	PanelIdle bool
	// Brightness is the initial brightness level.
	Brightness uint16
	// Rev is the panel revision. When 0, the latest revision is assumed until
	// ReadRevision is called.
	Rev dsi.Rev

	// Clock defaults to the real clock.
	Clock clockwork.Clock
	// Logger defaults to discarding everything.
	Logger *slog.Logger
	// Notifier is called when the brightness or the effective refresh rate
	// changed.
	Notifier panel.BacklightNotifier
}

// Dev is a handle to a NT37290 driven AMOLED panel.
//
// The methods are safe for concurrent use. Methods suffixed with Locked
// expect d.mu to be held.
type Dev struct {
	mu       sync.Mutex
	w        *dsi.Writer
	rst      gpio.PinOut
	clk      clockwork.Clock
	log      *slog.Logger
	notifier panel.BacklightNotifier

	state panel.State
	mode  *panel.Mode
	tr    *panel.Tracker

	// Idle policy.
	autoRate    physic.Frequency
	delayed     bool
	idleHint    physic.Frequency
	selfRefresh bool
	hbm         bool
	dimming     bool
	panelIdle   bool
	minRefresh  physic.Frequency
	idleDelay   time.Duration
	lastCommit  time.Time
	lastModeSet time.Time

	brightness uint16
	lhbm       bool
	lp         *binnedLP
	te2        te2State
}

// New returns a Dev sending commands over c.
//
// c is usually a DSI host or a bridge like the ssd2828. rst is the panel reset
// line and may be nil when the reset is handled elsewhere.
func New(c conn.Conn, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts.Brightness > MaxBrightness {
		return nil, fmt.Errorf("nt37290: brightness %d above %d", opts.Brightness, MaxBrightness)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	d := &Dev{
		w:          dsi.NewWriter(c, clk.Sleep),
		rst:        rst,
		clk:        clk,
		log:        log.With("panel", "nt37290"),
		notifier:   opts.Notifier,
		tr:         panel.NewTracker(hz60),
		panelIdle:  opts.PanelIdle,
		minRefresh: opts.MinRefresh,
		idleDelay:  opts.IdleDelay,
		brightness: opts.Brightness,
	}
	if opts.Rev != 0 {
		d.w.SetRev(opts.Rev)
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("nt37290{%s}", d.w)
}

// ReadRevision reads the build code of the panel and uses the matching
// revision for the revision specific commands.
func (d *Dev) ReadRevision() (dsi.Rev, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b [1]byte
	if err := d.w.Read(_BUILD_CODE, b[:]); err != nil {
		return 0, wrap(err)
	}
	rev := dsi.RevFromBuildCode(((b[0] & 0xE0) >> 3) | (b[0] & 0x03))
	d.w.SetRev(rev)
	d.log.Info("panel revision", "rev", rev, "build_code", b[0])
	return rev, nil
}

// Enable resets the panel, initializes it and turns the display on, or
// enters the always on display when the current mode is LPMode.
//
// ModeSet must have been called before.
func (d *Dev) Enable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == nil {
		return wrap(panel.ErrNoMode)
	}
	d.log.Debug("enable", "mode", d.mode)
	if err := d.resetLocked(); err != nil {
		return wrap(err)
	}
	if err := d.w.SendSet(&initCmds); err != nil {
		return wrap(err)
	}
	if err := d.w.SendSet(&lhbmSettingCmds); err != nil {
		return wrap(err)
	}
	d.state = panel.On
	if d.mode.LP {
		return d.enterLPLocked()
	}
	// Failures are retried on the next event.
	_, _ = d.syncLocked(true, panel.RefreshState{Active: d.mode.Refresh, Idle: d.autoRate})
	if err := d.w.Write(dsi.SetDisplayOn); err != nil {
		return wrap(err)
	}
	d.refreshTE2Locked()
	return nil
}

// Disable forgets the panel state. The panel registers are lost once its
// power is removed so no command is sent.
func (d *Dev) Disable() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disableLocked()
	return nil
}

// Halt turns the display off, puts the panel to sleep and forgets its state.
//
// It implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Active() {
		return nil
	}
	err := d.w.SendSet(&offCmds)
	d.disableLocked()
	return wrap(err)
}

// ModeSet makes m the current mode and applies it when the panel is on.
func (d *Dev) ModeSet(m *panel.Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.mode
	d.mode = m
	d.lastModeSet = d.clk.Now()
	if !d.state.Active() || prev == nil {
		return
	}
	var err error
	switch {
	case m.LP && !prev.LP:
		err = d.enterLPLocked()
	case !m.LP && prev.LP:
		err = d.exitLPLocked()
	case m.LP:
	default:
		d.changeFrequencyLocked(false)
	}
	if err != nil {
		d.log.Warn("mode set failed", "mode", m, "err", err)
	}
	d.refreshTE2Locked()
}

// IsModeSeamless returns true if the panel can switch to m without being
// disabled first.
func (d *Dev) IsModeSeamless(m *panel.Mode) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode != nil && d.mode.Width == m.Width && d.mode.Height == m.Height
}

// SetSelfRefresh records whether the host stopped sending frames and updates
// the panel idle state accordingly.
//
// It returns true when the panel was updated. Self refresh is ignored in the
// always on display mode, which always uses early exit.
func (d *Dev) SetSelfRefresh(enable bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selfRefresh = enable
	if d.mode == nil || d.mode.LP || d.state != panel.On {
		return false
	}
	updated := d.changeFrequencyLocked(false)
	if d.mode.Idle == panel.IdleOnSelfRefresh {
		d.log.Debug("self refresh", "enable", enable, "idle", d.idleHint, "mode", d.mode)
	}
	return updated
}

// CommitDone must be called each time a frame was committed to the panel.
func (d *Dev) CommitDone() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != panel.On || d.mode == nil || d.mode.LP {
		return
	}
	if d.tr.Desired().Has(EarlyExit) {
		d.triggerEarlyExitLocked()
	} else if d.mode.Idle == panel.IdleOnInactivity && d.delayed {
		// Go back to auto mode once the idle delay elapsed.
		d.changeFrequencyLocked(false)
	}
	d.lastCommit = d.clk.Now()
}

// triggerEarlyExitLocked tells the panel a frame is coming, in case auto mode
// already started lowering the refresh rate.
func (d *Dev) triggerEarlyExitLocked() {
	delta := d.clk.Since(d.lastCommit)
	if delta < earlyExitThreshold {
		d.log.Debug("skip early exit", "since_commit", delta)
		return
	}
	// Early exit switches the panel back to the active rate.
	d.lastModeSet = d.clk.Now()
	if d.idleDelay != 0 && delta > idleDelayThreshold {
		d.log.Debug("disable auto idle", "mode", d.mode)
		d.changeFrequencyLocked(false)
		return
	}
	if err := d.w.Write(dsi.WriteMemoryStart); err != nil {
		d.log.Warn("early exit failed", "err", err)
	}
}

// SetHBM records whether global high brightness mode is on. Idle is not
// allowed while it is.
func (d *Dev) SetHBM(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hbm = on
	d.reevaluateLocked()
}

// SetDimming records whether brightness dimming is on. Idle is not allowed
// while it is.
func (d *Dev) SetDimming(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dimming = on
	d.reevaluateLocked()
}

// SetPanelIdle allows or forbids the panel to lower its refresh rate.
func (d *Dev) SetPanelIdle(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.panelIdle = on
	d.reevaluateLocked()
}

// SetMinRefresh sets the lowest refresh rate tolerated while idle.
func (d *Dev) SetMinRefresh(f physic.Frequency) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minRefresh = f
	d.reevaluateLocked()
}

// SetIdleDelay sets how long no frame must be committed before idle.
func (d *Dev) SetIdleDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.idleDelay = delay
	d.reevaluateLocked()
}

// IdleRefresh returns the refresh rate the panel drops to while the host is
// in self refresh, 0 when it stays at the active rate.
func (d *Dev) IdleRefresh() physic.Frequency {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.idleHint
}

// Status is a snapshot of the panel state.
type Status struct {
	State       panel.State
	Mode        string
	Desired     panel.FeatureSet
	Committed   panel.FeatureSet
	Refresh     panel.RefreshState
	IdleRefresh physic.Frequency
	Delayed     bool
	Brightness  uint16
	LocalHBM    bool
	// LP is the name of the brightness bin in the always on display mode.
	LP string
}

// Status returns the current state of the panel.
func (d *Dev) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := Status{
		State:       d.state,
		Desired:     d.tr.Desired(),
		IdleRefresh: d.idleHint,
		Delayed:     d.delayed,
		Brightness:  d.brightness,
		LocalHBM:    d.lhbm,
	}
	s.Committed, s.Refresh = d.tr.Committed()
	if d.mode != nil {
		s.Mode = d.mode.Name
	}
	if d.lp != nil {
		s.LP = d.lp.name
	}
	return s
}

//

func (d *Dev) disableLocked() {
	d.tr.Reset(hz60)
	d.autoRate = 0
	d.delayed = false
	d.idleHint = 0
	d.lhbm = false
	d.lp = nil
	d.te2 = te2State{}
	d.state = panel.Off
	d.log.Debug("disable")
}

func (d *Dev) reevaluateLocked() {
	if d.state == panel.On && d.mode != nil && !d.mode.LP {
		d.changeFrequencyLocked(false)
	}
}

// resetLocked pulses the reset line.
func (d *Dev) resetLocked() error {
	if d.rst == nil {
		return nil
	}
	for _, s := range []struct {
		l gpio.Level
		t time.Duration
	}{
		{gpio.High, 5 * time.Millisecond},
		{gpio.Low, 5 * time.Millisecond},
		{gpio.High, 10 * time.Millisecond},
	} {
		if err := d.rst.Out(s.l); err != nil {
			return err
		}
		d.clk.Sleep(s.t)
	}
	return nil
}

func (d *Dev) notifyLocked() {
	if d.notifier != nil {
		d.notifier.BacklightStateChanged()
	}
}

var _ conn.Resource = &Dev{}
var _ display.DisplayBacklight = &Dev{}
