// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/amoled/panel"
	"github.com/google/go-cmp/cmp"
)

func TestUpdateTE2(t *testing.T) {
	d, c, _ := newDev(t, DefaultOpts)
	if err := d.UpdateTE2(); !errors.Is(err, panel.ErrNoMode) {
		t.Fatalf("UpdateTE2() = %v", err)
	}
	d.ModeSet(&Modes[1])
	if err := d.UpdateTE2(); !errors.Is(err, panel.ErrNotPowered) {
		t.Fatalf("UpdateTE2() = %v", err)
	}
	if len(c.Ops) != 0 {
		t.Fatalf("unexpected commands: %v", c.Ops)
	}
	enable(t, d, &Modes[1])
	timing, opt := d.TE2Timing()
	if timing != (panel.TE2Timing{Rising: 0, Falling: 48}) || opt != TE2Changeable {
		t.Fatalf("TE2Timing() = %v, %s", timing, opt)
	}
	c.Ops = nil
	if err := d.UpdateTE2(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(payloads(t, c.Ops), te2Cmds(TE2Changeable, 48)); diff != "" {
		t.Errorf("UpdateTE2() difference (-got +want):\n%s", diff)
	}
}

func TestTE2DefaultTiming(t *testing.T) {
	d, _, _ := newDev(t, DefaultOpts)
	m := Modes[0]
	m.TE2 = panel.TE2Timing{}
	enable(t, d, &m)
	if timing, _ := d.TE2Timing(); timing != defaultTE2 {
		t.Fatalf("TE2Timing() = %v", timing)
	}
}

func TestTE2OptionString(t *testing.T) {
	if s := TE2Fixed.String(); s != "fixed" {
		t.Errorf("String() = %q", s)
	}
	if s := TE2Changeable.String(); s != "changeable" {
		t.Errorf("String() = %q", s)
	}
}
