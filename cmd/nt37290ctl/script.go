// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/GermanBionicSystems/amoled/nt37290"
	"github.com/GermanBionicSystems/amoled/panel"
	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
)

// event is one step of a script.
type event struct {
	op  string
	arg string
}

func (e event) String() string {
	if e.arg == "" {
		return e.op
	}
	return e.op + " " + e.arg
}

func parseScript(b []byte) ([]event, error) {
	var raw []map[string]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	out := make([]event, 0, len(raw))
	for i, m := range raw {
		if len(m) != 1 {
			return nil, fmt.Errorf("script: event #%d: expected one key, got %d", i, len(m))
		}
		for k, v := range m {
			out = append(out, event{op: k, arg: v})
		}
	}
	return out, nil
}

// runner applies events to a panel and prints what went on the bus.
type runner struct {
	dev   *nt37290.Dev
	rec   *conntest.Record
	clk   clockwork.Clock
	out   io.Writer
	strip *strip
}

func (r *runner) run(events []event) error {
	for i, e := range events {
		start := len(r.rec.Ops)
		if _, err := fmt.Fprintf(r.out, "%s\n", e); err != nil {
			return err
		}
		if err := r.apply(e); err != nil {
			return fmt.Errorf("event #%d (%s): %w", i, e, err)
		}
		if err := printPackets(r.out, r.rec.Ops[start:]); err != nil {
			return err
		}
		if r.strip != nil {
			if err := r.strip.render(r.dev.Status()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *runner) apply(e event) error {
	switch e.op {
	case "mode":
		m, err := findMode(e.arg)
		if err != nil {
			return err
		}
		r.dev.ModeSet(m)
	case "enable":
		return r.dev.Enable()
	case "disable":
		return r.dev.Disable()
	case "halt":
		return r.dev.Halt()
	case "commit":
		r.dev.CommitDone()
	case "te2":
		return r.dev.UpdateTE2()
	case "revision":
		rev, err := r.dev.ReadRevision()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.out, "  revision %s\n", rev)
		return err
	case "sleep":
		d, err := time.ParseDuration(e.arg)
		if err != nil {
			return err
		}
		r.clk.Sleep(d)
	case "brightness":
		v, err := strconv.ParseUint(e.arg, 10, 16)
		if err != nil {
			return err
		}
		return r.dev.SetBrightness(uint16(v))
	case "min_refresh":
		var f physic.Frequency
		if err := f.Set(e.arg); err != nil {
			return err
		}
		r.dev.SetMinRefresh(f)
	case "idle_delay":
		d, err := time.ParseDuration(e.arg)
		if err != nil {
			return err
		}
		r.dev.SetIdleDelay(d)
	case "self_refresh", "lhbm", "hbm", "dimming", "panel_idle":
		on, err := strconv.ParseBool(e.arg)
		if err != nil {
			return err
		}
		return r.applyBool(e.op, on)
	default:
		return fmt.Errorf("unknown event %q", e.op)
	}
	return nil
}

func (r *runner) applyBool(op string, on bool) error {
	switch op {
	case "self_refresh":
		if !r.dev.SetSelfRefresh(on) {
			_, err := fmt.Fprintf(r.out, "  ignored\n")
			return err
		}
	case "lhbm":
		return r.dev.SetLocalHBM(on)
	case "hbm":
		r.dev.SetHBM(on)
	case "dimming":
		r.dev.SetDimming(on)
	case "panel_idle":
		r.dev.SetPanelIdle(on)
	}
	return nil
}

// findMode returns the supported mode named name.
func findMode(name string) (*panel.Mode, error) {
	for i := range nt37290.Modes {
		if nt37290.Modes[i].Name == name {
			return &nt37290.Modes[i], nil
		}
	}
	if name == nt37290.LPMode.Name || name == "lp" {
		return &nt37290.LPMode, nil
	}
	return nil, fmt.Errorf("unknown mode %q", name)
}
