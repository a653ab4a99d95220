// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// nt37290ctl replays a script of display events against a NT37290 panel and
// prints the DSI packets each event produced.
//
// Without -hw, the packets are only recorded and time is simulated, which
// makes it possible to check a sequence of events without hardware. With
// -hw, the panel is driven through a SSD2828 SPI to DSI bridge.
//
// Usage:
//
//	nt37290ctl [flags] script.yaml
//
// A script is a list of single key maps:
//
//	- mode: 1440x3120x120
//	- enable:
//	- self_refresh: true
//	- sleep: 20ms
//	- commit:
//	- brightness: 2047
//	- lhbm: true
//	- halt:
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
	"github.com/GermanBionicSystems/amoled/nt37290"
	"github.com/GermanBionicSystems/amoled/ssd2828"
	"github.com/jonboulle/clockwork"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func main() {
	if err := mainImpl(os.Args[1:], colorable.NewColorableStdout(), os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "nt37290ctl: %s.\n", err)
		os.Exit(1)
	}
}

func mainImpl(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("nt37290ctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML configuration file")
	hw := fs.Bool("hw", false, "drive a real panel through a SSD2828 bridge")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	noStrip := fs.Bool("no-strip", false, "do not print the status strip after each event")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one script")
	}

	cfg := &config{}
	if *cfgPath != "" {
		b, err := os.ReadFile(*cfgPath)
		if err != nil {
			return err
		}
		if cfg, err = parseConfig(b); err != nil {
			return err
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	events, err := parseScript(b)
	if err != nil {
		return err
	}

	opts, err := cfg.opts()
	if err != nil {
		return err
	}
	lvl, err := cfg.level()
	if err != nil {
		return err
	}
	opts.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))
	n := &notifier{log: opts.Logger}
	opts.Notifier = n

	rec := &conntest.Record{}
	var rst gpio.PinOut
	if *hw {
		c, pin, err := openBridge(&cfg.Hardware)
		if err != nil {
			return err
		}
		rec.Conn = c
		rst = pin
		opts.Clock = clockwork.NewRealClock()
	} else {
		opts.Clock = &simClock{clockwork.NewFakeClock()}
	}
	dev, err := nt37290.New(rec, rst, &opts)
	if err != nil {
		return err
	}
	r := &runner{dev: dev, rec: rec, clk: opts.Clock, out: stdout}
	if !*noStrip {
		r.strip = newStrip(stdout, nil)
	}
	return r.run(events)
}

// openBridge initializes the host and the SSD2828 bridge. It returns the
// bridge and the panel reset pin.
func openBridge(h *hwConfig) (conn.Conn, gpio.PinOut, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	p, err := spireg.Open(h.SPI)
	if err != nil {
		return nil, nil, err
	}
	pins := map[string]gpio.PinIO{}
	for _, name := range []string{h.DC, h.BridgeReset, h.PanelReset} {
		if name == "" {
			continue
		}
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, nil, fmt.Errorf("unknown pin %q", name)
		}
		pins[name] = pin
	}
	opts, err := h.bridgeOpts()
	if err != nil {
		return nil, nil, err
	}
	var bridgeRst gpio.PinOut
	if h.BridgeReset != "" {
		bridgeRst = pins[h.BridgeReset]
	}
	dc, ok := pins[h.DC]
	if !ok {
		return nil, nil, errors.New("hardware.dc is required")
	}
	b, err := ssd2828.New(p, dc, bridgeRst, &opts)
	if err != nil {
		return nil, nil, err
	}
	var rst gpio.PinOut
	if h.PanelReset != "" {
		rst = pins[h.PanelReset]
	}
	return b, rst, nil
}

// notifier logs the backlight notifications of the panel.
type notifier struct {
	log   *slog.Logger
	count int
}

func (n *notifier) BacklightStateChanged() {
	n.count++
	n.log.Debug("backlight state changed", "count", n.count)
}

// simClock is a fake clock that moves forward when the driver sleeps.
type simClock struct {
	clockwork.FakeClock
}

func (s *simClock) Sleep(d time.Duration) {
	s.Advance(d)
}

// printPackets prints one line per DSI packet found in ops.
func printPackets(w io.Writer, ops []conntest.IO) error {
	for _, op := range ops {
		pkts, err := dsi.Decode(op.W)
		if err != nil {
			return err
		}
		for _, p := range pkts {
			if _, err := fmt.Fprintf(w, "  %02x % x\n", p.Type, p.Data); err != nil {
				return err
			}
		}
		if len(op.R) != 0 {
			if _, err := fmt.Fprintf(w, "  <- % x\n", op.R); err != nil {
				return err
			}
		}
	}
	return nil
}
