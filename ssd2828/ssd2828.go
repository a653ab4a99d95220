// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd2828

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Registers.
const (
	_DIR   = 0xB0 // Device identification
	_CFGR  = 0xB7 // Configuration
	_VCR   = 0xB8 // Virtual channel
	_PCR   = 0xB9 // PLL control
	_PLCR  = 0xBA // PLL configuration
	_CCR   = 0xBB // Clock control
	_PSCR1 = 0xBC // Packet size control
	_PDR   = 0xBF // Packet data
	_MRSR  = 0xC1 // Maximum return size
	_ISR   = 0xC6 // Interrupt status
	_SPIRC = 0xD4 // SPI read control
	_LCFR  = 0xDE // Lane configuration
	_RR    = 0xFF // Read
)

// Configuration register bits.
const (
	cfgHS   = 1 << 0
	cfgHCLK = 1 << 4
	cfgDCS  = 1 << 6
	cfgREN  = 1 << 7
	cfgEOT  = 1 << 9
)

const (
	deviceID = 0x2828
	// spiRead must be written to _SPIRC before a register read.
	spiRead = 0x00FA
	// isrRDR tells that read data is ready.
	isrRDR = 1 << 0
	// lpClock is the highest low power escape clock.
	lpClock = 10 * physic.MegaHertz
)

// ErrNoResponse is returned when the panel did not answer a read request.
var ErrNoResponse = errors.New("ssd2828: no response from the panel")

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Lanes:     4,
	LaneClock: 500 * physic.MegaHertz,
	RefClock:  25 * physic.MegaHertz,
	SPIClock:  5 * physic.MegaHertz,
}

// Opts defines the options for the device.
type Opts struct {
	// Lanes is the number of DSI data lanes, between 1 and 4.
	Lanes int
	// LaneClock is the bit rate of each lane, between 62.5MHz and 1GHz.
	LaneClock physic.Frequency
	// RefClock is the frequency of the TX_CLK reference clock.
	RefClock physic.Frequency
	// SPIClock is the SPI clock speed.
	SPIClock physic.Frequency
	// HS sends the commands in high speed mode instead of low power mode.
	HS bool
}

// New opens a handle to a SSD2828 bridge.
//
// dc is the D/C line. rst is the bridge reset line and may be nil.
func New(p spi.Port, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("ssd2828: dc is required, 3-wire SPI is not supported")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	c, err := p.Connect(opts.SPIClock, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return newDev(c, dc, rst, opts)
}

// Dev is an open handle to the bridge.
//
// It implements conn.Conn. Every Tx write buffer must contain DSI packets.
type Dev struct {
	mu  sync.Mutex
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinOut
	// cfgWrite is the configuration used to send commands.
	cfgWrite uint16
	// cfg is the configuration register content.
	cfg uint16
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd2828{%s}", d.c)
}

// Duplex implements conn.Conn.
func (d *Dev) Duplex() conn.Duplex {
	return conn.Half
}

// Tx implements conn.Conn.
//
// w holds one or more DSI packets. r must be empty unless the last packet is
// a DCS read, in which case it receives the returned bytes.
func (d *Dev) Tx(w, r []byte) error {
	pkts, err := dsi.Decode(w)
	if err != nil {
		return fmt.Errorf("ssd2828: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, p := range pkts {
		if p.Type == dsi.DCSRead {
			if i != len(pkts)-1 {
				return errors.New("ssd2828: a read must be the last packet")
			}
			return d.readLocked(p.Data[0], r)
		}
		if err := d.writeLocked(p.Data); err != nil {
			return err
		}
	}
	if len(r) != 0 {
		return errors.New("ssd2828: read buffer without read request")
	}
	return nil
}

// ID returns the device identification register.
func (d *Dev) ID() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readReg(_DIR)
}

// Halt turns the PLL off.
//
// It implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeReg(_PCR, 0)
}

//

func newDev(c conn.Conn, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts.Lanes < 1 || opts.Lanes > 4 {
		return nil, fmt.Errorf("ssd2828: invalid number of lanes %d", opts.Lanes)
	}
	pll, err := pllConfig(opts.LaneClock, opts.RefClock)
	if err != nil {
		return nil, err
	}
	d := &Dev{c: c, dc: dc, rst: rst, cfgWrite: cfgEOT | cfgDCS | cfgHCLK}
	if opts.HS {
		d.cfgWrite |= cfgHS
	}
	if err := d.reset(); err != nil {
		return nil, err
	}
	id, err := d.readReg(_DIR)
	if err != nil {
		return nil, err
	}
	if id != deviceID {
		return nil, fmt.Errorf("ssd2828: unexpected device id %#04x", id)
	}
	for _, r := range []struct {
		reg byte
		v   uint16
	}{
		{_VCR, 0},
		{_PLCR, pll},
		{_CCR, lpDivider(opts.LaneClock)},
		{_PCR, 1},
		{_LCFR, uint16(opts.Lanes - 1)},
		{_CFGR, d.cfgWrite},
	} {
		if err := d.writeReg(r.reg, r.v); err != nil {
			return nil, err
		}
	}
	d.cfg = d.cfgWrite
	return d, nil
}

func (d *Dev) reset() error {
	if d.rst == nil {
		return nil
	}
	if err := d.rst.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(5 * time.Millisecond)
	return nil
}

func (d *Dev) setCfgLocked(cfg uint16) error {
	if d.cfg == cfg {
		return nil
	}
	if err := d.writeReg(_CFGR, cfg); err != nil {
		return err
	}
	d.cfg = cfg
	return nil
}

// writeLocked sends one DCS command. The bridge selects the short or long
// packet type from the packet size.
func (d *Dev) writeLocked(data []byte) error {
	if err := d.setCfgLocked(d.cfgWrite); err != nil {
		return err
	}
	if err := d.writeReg(_PSCR1, uint16(len(data))); err != nil {
		return err
	}
	if err := d.sendCommand(_PDR); err != nil {
		return err
	}
	return d.sendData(data)
}

func (d *Dev) readLocked(reg byte, r []byte) error {
	if len(r) == 0 {
		return errors.New("ssd2828: read request without buffer")
	}
	if err := d.setCfgLocked((d.cfgWrite | cfgREN) &^ cfgHS); err != nil {
		return err
	}
	if err := d.writeReg(_MRSR, uint16(len(r))); err != nil {
		return err
	}
	if err := d.writeReg(_PSCR1, 1); err != nil {
		return err
	}
	if err := d.sendCommand(_PDR); err != nil {
		return err
	}
	if err := d.sendData([]byte{reg}); err != nil {
		return err
	}
	isr, err := d.readReg(_ISR)
	if err != nil {
		return err
	}
	if isr&isrRDR == 0 {
		return ErrNoResponse
	}
	for i := 0; i < len(r); i += 2 {
		v, err := d.readReg(_RR)
		if err != nil {
			return err
		}
		r[i] = byte(v)
		if i+1 < len(r) {
			r[i+1] = byte(v >> 8)
		}
	}
	return nil
}

// writeReg writes a 16 bits register, least significant byte first.
func (d *Dev) writeReg(reg byte, v uint16) error {
	if err := d.sendCommand(reg); err != nil {
		return err
	}
	return d.sendData([]byte{byte(v), byte(v >> 8)})
}

func (d *Dev) readReg(reg byte) (uint16, error) {
	if err := d.writeReg(_SPIRC, spiRead); err != nil {
		return 0, err
	}
	if err := d.sendCommand(reg); err != nil {
		return 0, err
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return 0, err
	}
	var b [2]byte
	if err := d.c.Tx(make([]byte, 2), b[:]); err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (d *Dev) sendCommand(reg byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx([]byte{reg}, nil)
}

func (d *Dev) sendData(b []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(b, nil)
}

// pllConfig returns the PLL configuration register value producing lane
// from ref.
func pllConfig(lane, ref physic.Frequency) (uint16, error) {
	if ref <= 0 || lane < 62500*physic.KiloHertz || lane > physic.GigaHertz {
		return 0, fmt.Errorf("ssd2828: lane clock %s out of range", lane)
	}
	ns := lane / ref
	if ns < 1 || ns > 255 {
		return 0, fmt.Errorf("ssd2828: lane clock %s cannot be derived from %s", lane, ref)
	}
	var fr uint16
	switch {
	case lane > 500*physic.MegaHertz:
		fr = 3
	case lane > 250*physic.MegaHertz:
		fr = 2
	case lane > 125*physic.MegaHertz:
		fr = 1
	}
	// The pre-divider MS is fixed to 1.
	return fr<<14 | 1<<8 | uint16(ns), nil
}

// lpDivider returns the clock control register value keeping the low power
// clock at or below lpClock.
func lpDivider(lane physic.Frequency) uint16 {
	byteClk := lane / 8
	div := (byteClk + lpClock - 1) / lpClock
	if div < 1 {
		div = 1
	}
	return uint16(div - 1)
}

var _ conn.Conn = &Dev{}
var _ conn.Resource = &Dev{}
