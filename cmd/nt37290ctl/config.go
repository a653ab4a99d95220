// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/nt37290"
	"github.com/GermanBionicSystems/amoled/ssd2828"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// config is the content of the configuration file. Unset values keep the
// driver defaults.
type config struct {
	MinRefresh string        `yaml:"min_refresh"`
	IdleDelay  time.Duration `yaml:"idle_delay"`
	PanelIdle  *bool         `yaml:"panel_idle"`
	Brightness *uint16       `yaml:"brightness"`
	Rev        string        `yaml:"rev"`
	LogLevel   string        `yaml:"log_level"`
	Hardware   hwConfig      `yaml:"hardware"`
}

// hwConfig describes how the bridge is connected.
type hwConfig struct {
	SPI         string `yaml:"spi"`
	SPIClock    string `yaml:"spi_clock"`
	DC          string `yaml:"dc"`
	BridgeReset string `yaml:"bridge_reset"`
	PanelReset  string `yaml:"panel_reset"`
	Lanes       int    `yaml:"lanes"`
	LaneClock   string `yaml:"lane_clock"`
	HS          bool   `yaml:"hs"`
}

func parseConfig(b []byte) (*config, error) {
	c := &config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// opts returns nt37290.DefaultOpts overlaid with c.
func (c *config) opts() (nt37290.Opts, error) {
	o := nt37290.DefaultOpts
	if c.MinRefresh != "" {
		if err := o.MinRefresh.Set(c.MinRefresh); err != nil {
			return o, fmt.Errorf("config: min_refresh: %w", err)
		}
	}
	o.IdleDelay = c.IdleDelay
	if c.PanelIdle != nil {
		o.PanelIdle = *c.PanelIdle
	}
	if c.Brightness != nil {
		o.Brightness = *c.Brightness
	}
	if c.Rev != "" {
		r, err := parseRev(c.Rev)
		if err != nil {
			return o, err
		}
		o.Rev = r
	}
	return o, nil
}

func (c *config) level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}

// bridgeOpts returns ssd2828.DefaultOpts overlaid with h.
func (h *hwConfig) bridgeOpts() (ssd2828.Opts, error) {
	o := ssd2828.DefaultOpts
	if h.Lanes != 0 {
		o.Lanes = h.Lanes
	}
	for _, f := range []struct {
		name string
		s    string
		dst  *physic.Frequency
	}{
		{"spi_clock", h.SPIClock, &o.SPIClock},
		{"lane_clock", h.LaneClock, &o.LaneClock},
	} {
		if f.s == "" {
			continue
		}
		if err := f.dst.Set(f.s); err != nil {
			return o, fmt.Errorf("config: hardware.%s: %w", f.name, err)
		}
	}
	o.HS = h.HS
	return o, nil
}

// parseRev returns the revision named s, as printed by dsi.Rev.String.
func parseRev(s string) (dsi.Rev, error) {
	for r := dsi.RevProto1; r <= dsi.RevMP; r <<= 1 {
		if r.String() == s {
			return r, nil
		}
	}
	if s == dsi.RevLatest.String() {
		return dsi.RevLatest, nil
	}
	return 0, fmt.Errorf("config: unknown panel revision %q", s)
}
