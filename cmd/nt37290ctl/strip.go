// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/amoled/nt37290"
	"github.com/GermanBionicSystems/amoled/panel"
	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/physic"
)

// stripWidth is the number of cells of the brightness and refresh gauges.
const stripWidth = 16

var (
	stateColors = map[panel.State]color.NRGBA{
		panel.Off: {0x40, 0x40, 0x40, 255},
		panel.On:  {0x00, 0xC0, 0x00, 255},
		panel.LP:  {0x00, 0x40, 0xC0, 255},
	}
	gaugeOn    = color.NRGBA{0xFF, 0xFF, 0xFF, 255}
	gaugeOff   = color.NRGBA{0x20, 0x20, 0x20, 255}
	gaugeIdle  = color.NRGBA{0xC0, 0x80, 0x00, 255}
	gaugeLHBM  = color.NRGBA{0xFF, 0x00, 0x00, 255}
	maxRefresh = 120 * physic.Hertz
)

// strip prints the panel status as a line of colored cells.
//
// From left to right: the power state, the brightness gauge and the refresh
// rate gauge with the idle rate highlighted.
type strip struct {
	w       io.Writer
	palette ansi256.Palette
	buf     bytes.Buffer
}

func newStrip(w io.Writer, p *ansi256.Palette) *strip {
	if p == nil {
		p = ansi256.Default
	}
	return &strip{w: w, palette: *p}
}

func (s *strip) render(st nt37290.Status) error {
	s.buf.Reset()
	_, _ = s.buf.WriteString("\033[0m  ")
	_, _ = io.WriteString(&s.buf, s.palette.Block(stateColors[st.State]))
	_, _ = s.buf.WriteString("\033[0m ")
	lit := int(st.Brightness) * stripWidth / nt37290.MaxBrightness
	for i := 0; i < stripWidth; i++ {
		c := gaugeOff
		if i < lit || (i == 0 && st.Brightness != 0) {
			c = gaugeOn
			if st.LocalHBM {
				c = gaugeLHBM
			}
		}
		_, _ = io.WriteString(&s.buf, s.palette.Block(c))
	}
	_, _ = s.buf.WriteString("\033[0m ")
	active := cells(st.Refresh.Active)
	idle := cells(st.Refresh.Idle)
	for i := 0; i < stripWidth; i++ {
		c := gaugeOff
		switch {
		case i < idle:
			c = gaugeIdle
		case i < active:
			c = gaugeOn
		}
		_, _ = io.WriteString(&s.buf, s.palette.Block(c))
	}
	_, _ = fmt.Fprintf(&s.buf, "\033[0m %s %s %s", st.State, st.Refresh, featureNames(st.Committed))
	if st.LP != "" {
		_, _ = fmt.Fprintf(&s.buf, " lp=%s", st.LP)
	}
	_, _ = s.buf.WriteString("\n")
	_, err := s.buf.WriteTo(s.w)
	return err
}

func cells(f physic.Frequency) int {
	if f <= 0 {
		return 0
	}
	n := int(f * stripWidth / maxRefresh)
	if n == 0 {
		return 1
	}
	return n
}

func featureNames(s panel.FeatureSet) string {
	out := "["
	if s.Has(nt37290.EarlyExit) {
		out += "ee"
	}
	if s.Has(nt37290.FrameAuto) {
		if len(out) > 1 {
			out += " "
		}
		out += "auto"
	}
	return out + "]"
}
