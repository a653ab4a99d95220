// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/nt37290"
	"github.com/GermanBionicSystems/amoled/ssd2828"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

const testConfig = `
min_refresh: 30Hz
idle_delay: 50ms
panel_idle: false
brightness: 500
rev: evt1
log_level: debug
hardware:
  spi: SPI0.0
  dc: GPIO25
  lanes: 2
  lane_clock: 250MHz
`

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte(testConfig))
	require.NoError(t, err)
	o, err := c.opts()
	require.NoError(t, err)
	require.Equal(t, 30*physic.Hertz, o.MinRefresh)
	require.Equal(t, 50*time.Millisecond, o.IdleDelay)
	require.False(t, o.PanelIdle)
	require.Equal(t, uint16(500), o.Brightness)
	require.Equal(t, dsi.RevEVT1, o.Rev)

	l, err := c.level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, l)

	b, err := c.Hardware.bridgeOpts()
	require.NoError(t, err)
	require.Equal(t, 2, b.Lanes)
	require.Equal(t, 250*physic.MegaHertz, b.LaneClock)
	require.Equal(t, ssd2828.DefaultOpts.SPIClock, b.SPIClock)
	require.Equal(t, "GPIO25", c.Hardware.DC)
}

func TestConfigDefaults(t *testing.T) {
	c := &config{}
	o, err := c.opts()
	require.NoError(t, err)
	require.Equal(t, nt37290.DefaultOpts, o)
	l, err := c.level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, l)
}

func TestConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  config
	}{
		{"min_refresh", config{MinRefresh: "fast"}},
		{"rev", config{Rev: "evt9"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.opts()
			require.Error(t, err)
		})
	}
	_, err := (&config{LogLevel: "loud"}).level()
	require.Error(t, err)
	_, err = (&hwConfig{LaneClock: "1 parsec"}).bridgeOpts()
	require.Error(t, err)
	_, err = parseConfig([]byte("brightness: [1, 2]"))
	require.Error(t, err)
}

func TestParseRev(t *testing.T) {
	for _, r := range []dsi.Rev{dsi.RevProto1, dsi.RevEVT1_0_2, dsi.RevMP, dsi.RevLatest} {
		got, err := parseRev(r.String())
		require.NoError(t, err)
		require.Equal(t, r, got)
	}
}
