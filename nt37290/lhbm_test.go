// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/panel"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/display"
)

func TestSetLocalHBM(t *testing.T) {
	for _, tc := range []struct {
		name string
		rev  dsi.Rev
		on   [][]byte
		off  [][]byte
	}{
		{
			name: "evt1",
			rev:  dsi.RevEVT1,
			on: [][]byte{
				{0xF0, 0x55, 0xAA, 0x52, 0x08, 0x00},
				{0x6F, 0x4C},
				{0xDF, 0x0F, 0xFC, 0x0F, 0xFC, 0x0F, 0xFC},
				{0x2F, 0x02},
				{0x87, 0x01},
				{0x85},
			},
			off: [][]byte{{0x86}, {0x87, 0x00}, {0x2F, 0x00}},
		},
		{
			name: "proto1",
			rev:  dsi.RevProto1,
			on:   [][]byte{{0x87, 0x21}, {0x85}},
			off:  [][]byte{{0x86}, {0x87, 0x20}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOpts
			opts.Rev = tc.rev
			d, c, _ := newDev(t, opts)
			if err := d.SetLocalHBM(true); !errors.Is(err, panel.ErrNotPowered) {
				t.Fatalf("SetLocalHBM() while off = %v", err)
			}
			enable(t, d, &Modes[0])
			c.Ops = nil
			for i := 0; i < 2; i++ {
				if err := d.SetLocalHBM(true); err != nil {
					t.Fatal(err)
				}
			}
			if len(c.Ops) != 1 {
				t.Fatalf("SetLocalHBM(true) twice sent %d transactions", len(c.Ops))
			}
			if diff := cmp.Diff(payloads(t, c.Ops), tc.on); diff != "" {
				t.Errorf("SetLocalHBM(true) difference (-got +want):\n%s", diff)
			}
			c.Ops = nil
			if err := d.SetLocalHBM(false); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(payloads(t, c.Ops), tc.off); diff != "" {
				t.Errorf("SetLocalHBM(false) difference (-got +want):\n%s", diff)
			}
			if d.Status().LocalHBM {
				t.Error("local hbm still on")
			}
		})
	}
}

func TestSetLocalHBMTransportError(t *testing.T) {
	d, c, _ := newDev(t, DefaultOpts)
	enable(t, d, &Modes[0])
	c.fail = true
	var te *dsi.TransportError
	if err := d.SetLocalHBM(true); !errors.As(err, &te) {
		t.Fatalf("SetLocalHBM() = %v, want TransportError", err)
	}
	c.fail = false
	c.Ops = nil
	if err := d.SetLocalHBM(true); err != nil {
		t.Fatal(err)
	}
	if len(c.Ops) != 1 {
		t.Errorf("retry sent %d transactions", len(c.Ops))
	}
}

func TestSetBrightness(t *testing.T) {
	var n notifier
	opts := DefaultOpts
	opts.Notifier = &n
	d, c, _ := newDev(t, opts)
	if err := d.SetBrightness(100); !errors.Is(err, panel.ErrNotPowered) {
		t.Fatalf("SetBrightness() while off = %v", err)
	}
	if len(c.Ops) != 0 {
		t.Fatalf("unexpected commands: %v", c.Ops)
	}
	enable(t, d, &Modes[0])

	c.Ops = nil
	if err := d.SetBrightness(0x123); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(payloads(t, c.Ops), [][]byte{{0x51, 0x01, 0x23}}); diff != "" {
		t.Errorf("SetBrightness() difference (-got +want):\n%s", diff)
	}
	if n != 1 || d.Brightness() != 0x123 {
		t.Errorf("notified %d times, brightness %d", n, d.Brightness())
	}

	if err := d.SetLocalHBM(true); err != nil {
		t.Fatal(err)
	}
	c.Ops = nil
	if err := d.SetBrightness(100); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{
		{0xF0, 0x55, 0xAA, 0x52, 0x08, 0x00},
		{0x6F, 0x4C},
		{0xDF, 0x01, 0x90, 0x01, 0x90, 0x01, 0x90},
		{0x51, 0x00, 0x64},
	}
	if diff := cmp.Diff(payloads(t, c.Ops), want); diff != "" {
		t.Errorf("SetBrightness() with local hbm difference (-got +want):\n%s", diff)
	}
	if len(c.Ops) != 1 {
		t.Errorf("SetBrightness() sent %d transactions", len(c.Ops))
	}

	c.Ops = nil
	if err := d.SetBrightness(MaxBrightness + 1); err == nil {
		t.Error("SetBrightness() out of range succeeded")
	}
	if len(c.Ops) != 0 {
		t.Errorf("unexpected commands: %v", c.Ops)
	}
}

func TestBacklight(t *testing.T) {
	d, c, _ := newDev(t, DefaultOpts)
	enable(t, d, &Modes[0])
	for _, tc := range []struct {
		i    display.Intensity
		want []byte
	}{
		{0, []byte{0x51, 0x00, 0x00}},
		{128, []byte{0x51, 0x08, 0x07}},
		{255, []byte{0x51, 0x0F, 0xFE}},
	} {
		c.Ops = nil
		if err := d.Backlight(tc.i); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(payloads(t, c.Ops), [][]byte{tc.want}); diff != "" {
			t.Errorf("Backlight(%d) difference (-got +want):\n%s", tc.i, diff)
		}
	}
	if err := d.Backlight(256); err == nil {
		t.Error("Backlight(256) succeeded")
	}
}
