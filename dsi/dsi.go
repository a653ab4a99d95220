// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dsi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Data types of the DSI packets used for DCS traffic.
const (
	DCSShortWrite      byte = 0x05
	DCSShortWriteParam byte = 0x15
	DCSRead            byte = 0x06
	DCSLongWrite       byte = 0x39
	SetMaxReturnSize   byte = 0x37
)

// Standard DCS opcodes.
const (
	EnterSleepMode   byte = 0x10
	ExitSleepMode    byte = 0x11
	SetGammaCurve    byte = 0x26
	SetDisplayOff    byte = 0x28
	SetDisplayOn     byte = 0x29
	SetPageAddress   byte = 0x2B
	WriteMemoryStart byte = 0x2C
	SetTearOn        byte = 0x35
	ExitIdleMode     byte = 0x38
	EnterIdleMode    byte = 0x39
	SetTearScanline  byte = 0x44
	SetBrightness    byte = 0x51
	WriteControl     byte = 0x53
)

// Rev is a panel hardware revision. Each revision is a single bit so that a
// set of revisions can be expressed as a RevMask.
type Rev uint32

// Known revisions, in manufacturing order.
const (
	RevProto1 Rev = 1 << iota
	RevProto1_1
	RevProto1_2
	RevEVT1
	RevEVT1_0_2
	RevEVT1_1
	RevEVT2
	RevDVT1
	RevDVT1_1
	RevPVT
	RevMP
	RevLatest Rev = 1 << 31
)

func (r Rev) String() string {
	switch r {
	case RevProto1:
		return "proto1"
	case RevProto1_1:
		return "proto1.1"
	case RevProto1_2:
		return "proto1.2"
	case RevEVT1:
		return "evt1"
	case RevEVT1_0_2:
		return "evt1.0.2"
	case RevEVT1_1:
		return "evt1.1"
	case RevEVT2:
		return "evt2"
	case RevDVT1:
		return "dvt1"
	case RevDVT1_1:
		return "dvt1.1"
	case RevPVT:
		return "pvt"
	case RevMP:
		return "mp"
	case RevLatest:
		return "latest"
	}
	return fmt.Sprintf("Rev(%#x)", uint32(r))
}

// RevFromBuildCode converts a revision code as reported by the panel into a
// Rev. Unknown codes map to RevLatest.
func RevFromBuildCode(code byte) Rev {
	switch code {
	case 0x00:
		return RevProto1
	case 0x01:
		return RevProto1_1
	case 0x02:
		return RevProto1_2
	case 0x08:
		return RevEVT1
	case 0x09:
		return RevEVT1_1
	case 0x0A:
		return RevEVT2
	case 0x0C:
		return RevDVT1
	case 0x0D:
		return RevDVT1_1
	case 0x10:
		return RevPVT
	case 0x14:
		return RevMP
	}
	return RevLatest
}

// RevMask is a set of revisions. The zero value matches every revision.
type RevMask uint32

// GE returns the mask of r and every later revision.
func GE(r Rev) RevMask {
	return RevMask(^(uint32(r) - 1))
}

// LT returns the mask of every revision before r.
func LT(r Rev) RevMask {
	return RevMask(uint32(r) - 1)
}

// Match returns true if rev is part of the mask.
func (m RevMask) Match(rev Rev) bool {
	return m == 0 || uint32(m)&uint32(rev) != 0
}

// Cmd is a single DCS command.
type Cmd struct {
	// Data is the opcode followed by its parameters.
	Data []byte
	// Delay is the time to wait after the command before sending the next
	// one.
	Delay time.Duration
	// Revs restricts the command to some panel revisions.
	Revs RevMask
}

// Seq returns an unconditional command.
func Seq(b ...byte) Cmd {
	return Cmd{Data: b}
}

// SeqDelay returns a command followed by a settling delay.
func SeqDelay(d time.Duration, b ...byte) Cmd {
	return Cmd{Data: b, Delay: d}
}

// SeqRev returns a command only sent to the revisions in m.
func SeqRev(m RevMask, b ...byte) Cmd {
	return Cmd{Data: b, Revs: m}
}

// SeqRevDelay returns a revision gated command followed by a delay.
func SeqRevDelay(m RevMask, d time.Duration, b ...byte) Cmd {
	return Cmd{Data: b, Delay: d, Revs: m}
}

// Applies returns true if the command must be sent to a panel of revision
// rev.
func (c *Cmd) Applies(rev Rev) bool {
	return c.Revs.Match(rev)
}

func (c *Cmd) String() string {
	if len(c.Data) == 0 {
		return "Cmd{}"
	}
	return fmt.Sprintf("Cmd{%#02x % X}", c.Data[0], c.Data[1:])
}

// CmdSet is a named, ordered list of commands.
type CmdSet struct {
	Name string
	Cmds []Cmd
}

// Filter returns the commands of s that apply to rev.
func (s *CmdSet) Filter(rev Rev) []Cmd {
	out := make([]Cmd, 0, len(s.Cmds))
	for i := range s.Cmds {
		if s.Cmds[i].Applies(rev) {
			out = append(out, s.Cmds[i])
		}
	}
	return out
}

// Packet is a decoded DSI packet.
type Packet struct {
	Type byte
	Data []byte
}

// Encode returns the DSI packet carrying the DCS command data.
//
// One byte is sent as a short write, two bytes as a short write with a
// parameter and anything longer as a long write with a 16 bit little endian
// word count.
func Encode(data []byte) []byte {
	return AppendPacket(nil, data)
}

// AppendPacket appends the DSI packet carrying data to buf.
func AppendPacket(buf, data []byte) []byte {
	switch len(data) {
	case 0:
		return buf
	case 1:
		return append(buf, DCSShortWrite, data[0], 0x00)
	case 2:
		return append(buf, DCSShortWriteParam, data[0], data[1])
	}
	buf = append(buf, DCSLongWrite, 0, 0)
	binary.LittleEndian.PutUint16(buf[len(buf)-2:], uint16(len(data)))
	return append(buf, data...)
}

// ReadRequest returns the DSI packet requesting the content of register reg.
func ReadRequest(reg byte) []byte {
	return []byte{DCSRead, reg, 0x00}
}

// ErrShortPacket is returned by Decode when a packet is truncated.
var ErrShortPacket = errors.New("dsi: truncated packet")

// Decode splits a buffer produced by AppendPacket into packets.
func Decode(buf []byte) ([]Packet, error) {
	var out []Packet
	for len(buf) != 0 {
		if len(buf) < 3 {
			return out, ErrShortPacket
		}
		switch t := buf[0]; t {
		case DCSShortWrite:
			out = append(out, Packet{Type: t, Data: buf[1:2]})
			buf = buf[3:]
		case DCSShortWriteParam, DCSRead, SetMaxReturnSize:
			out = append(out, Packet{Type: t, Data: buf[1:3]})
			buf = buf[3:]
		case DCSLongWrite:
			n := int(binary.LittleEndian.Uint16(buf[1:3]))
			if len(buf) < 3+n {
				return out, ErrShortPacket
			}
			out = append(out, Packet{Type: t, Data: buf[3 : 3+n]})
			buf = buf[3+n:]
		default:
			return out, fmt.Errorf("dsi: unknown data type %#02x", t)
		}
	}
	return out, nil
}
