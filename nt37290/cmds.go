// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nt37290

import (
	"time"

	"github.com/GermanBionicSystems/amoled/dsi"
)

// Vendor specific opcodes.
const (
	_FREQ_MODE       = 0x2F
	_EARLY_EXIT      = 0x5A
	_PAGE_OFFSET     = 0x6F
	_LHBM_ON         = 0x85
	_LHBM_OFF        = 0x86
	_FPS_MODE        = 0x87
	_FRAME_INSERTION = 0xBA
	_TE2_OPTION      = 0xC3
	_TE2_TIMING      = 0xC4
	_LHBM_DBV        = 0xDF
	_BUILD_CODE      = 0xDB
)

var (
	evt1    = dsi.GE(dsi.RevEVT1)
	preEVT1 = dsi.LT(dsi.RevEVT1)

	// cmd2Page0 selects the page 0 of the manufacturer command set 2.
	cmd2Page0 = []byte{0xF0, 0x55, 0xAA, 0x52, 0x08, 0x00}
	// cmd2Page3 selects the page 3, where the TE2 registers live.
	cmd2Page3 = []byte{0xF0, 0x55, 0xAA, 0x52, 0x08, 0x03}
)

// Frame insertion payloads, written at offset 0x1C of page 0.
var (
	insertManual60 = []byte{_FRAME_INSERTION, 0x91, 0x01, 0x01, 0x00, 0x01, 0x01, 0x01, 0x00}
	insertAuto10   = []byte{_FRAME_INSERTION, 0x93, 0x09, 0x03, 0x00, 0x11, 0x0B, 0x0B, 0x00, 0x06}
	insertAuto30   = []byte{_FRAME_INSERTION, 0x93, 0x03, 0x02, 0x00, 0x11, 0x03, 0x03, 0x00, 0x04}
	insertAuto60   = []byte{_FRAME_INSERTION, 0x93, 0x01, 0x01, 0x00, 0x01, 0x01, 0x01, 0x00, 0x00}
)

var offCmds = dsi.CmdSet{
	Name: "off",
	Cmds: []dsi.Cmd{
		dsi.SeqDelay(100*time.Millisecond, dsi.SetDisplayOff),
		dsi.SeqDelay(120*time.Millisecond, dsi.EnterSleepMode),
	},
}

var lpCmds = dsi.CmdSet{
	Name: "lp",
	Cmds: []dsi.Cmd{
		dsi.Seq(dsi.EnterIdleMode),
		// Manual mode, no frame skip.
		dsi.Seq(_FREQ_MODE, 0x00),
	},
}

var lpOffCmds = dsi.CmdSet{
	Name: "lp off",
	Cmds: []dsi.Cmd{
		dsi.Seq(dsi.SetDisplayOff),
	},
}

// 10 nits.
var lpLowCmds = dsi.CmdSet{
	Name: "lp low",
	Cmds: []dsi.Cmd{
		dsi.SeqDelay(9*time.Millisecond, dsi.SetBrightness, 0x00, 0x00, 0x00, 0x00, 0x03, 0x33),
		// 2C must be sent on each of the next two vsync.
		dsi.SeqDelay(9*time.Millisecond, dsi.WriteMemoryStart),
		dsi.Seq(dsi.WriteMemoryStart),
		dsi.Seq(dsi.SetDisplayOn),
	},
}

// 50 nits.
var lpHighCmds = dsi.CmdSet{
	Name: "lp high",
	Cmds: []dsi.Cmd{
		dsi.SeqDelay(9*time.Millisecond, dsi.SetBrightness, 0x00, 0x00, 0x00, 0x00, 0x0F, 0xFE),
		dsi.SeqDelay(9*time.Millisecond, dsi.WriteMemoryStart),
		dsi.Seq(dsi.WriteMemoryStart),
		dsi.Seq(dsi.SetDisplayOn),
	},
}

var initCmds = dsi.CmdSet{
	Name: "init",
	Cmds: []dsi.Cmd{
		dsi.Seq(0x1F, 0xF0),
		dsi.Seq(0x26, 0x00),
		dsi.Seq(0x2B, 0x00, 0x00, 0x0C, 0x2F),
		dsi.Seq(0x35),
		dsi.Seq(0x51, 0x03, 0xF8, 0x03, 0xF8, 0x0F, 0xFE),
		dsi.Seq(0x53, 0x20),
		dsi.Seq(0x5A, 0x01),
		dsi.Seq(0x90, 0x03, 0x03),
		dsi.Seq(0x91,
			0x89, 0x28, 0x00, 0x18, 0xD2, 0x00, 0x02, 0x86, 0x02, 0x83, 0x00, 0x0A, 0x04, 0x86, 0x03, 0x2E,
			0x10, 0xF0,
		),
		dsi.Seq(cmd2Page0...),
		dsi.Seq(0xBA, 0x00),
		dsi.Seq(0xF0, 0x55, 0xAA, 0x52, 0x08, 0x01),
		dsi.Seq(0xC5, 0x00, 0x0B, 0x0B, 0x0B),
		dsi.Seq(0xFF, 0xAA, 0x55, 0xA5, 0x80),
		dsi.Seq(0x6F, 0x1B),
		dsi.Seq(0xF4, 0x55),
		dsi.Seq(0xFF, 0xAA, 0x55, 0xA5, 0x81),
		dsi.Seq(0x6F, 0x12),
		dsi.Seq(0xF5, 0x00),
		dsi.Seq(0x6F, 0x09),
		dsi.Seq(0xF9, 0x10),
		dsi.Seq(0xFF, 0xAA, 0x55, 0xA5, 0x83),
		dsi.Seq(0x6F, 0x14),
		dsi.Seq(0xF8, 0x0D),
		dsi.Seq(0x6F, 0x01),
		dsi.Seq(0xF9, 0x06),
		dsi.Seq(0x6F, 0x01),
		dsi.Seq(0xFA, 0x06),
		dsi.Seq(0x6F, 0x01),
		dsi.Seq(0xFB, 0x06),
		dsi.Seq(0x6F, 0x01),
		dsi.Seq(0xFC, 0x06),
		dsi.Seq(0xFF, 0xAA, 0x55, 0xA5, 0x84),
		dsi.Seq(0x6F, 0x1C),
		dsi.Seq(0xF8, 0x3A),
		dsi.SeqDelay(120*time.Millisecond, dsi.ExitSleepMode),
	},
}

// lhbmSettingCmds calibrates the local high brightness circle.
var lhbmSettingCmds = dsi.CmdSet{
	Name: "lhbm on setting",
	Cmds: []dsi.Cmd{
		dsi.SeqRev(evt1, 0xF0, 0x55, 0xAA, 0x52, 0x08, 0x07),
		dsi.SeqRev(evt1, 0xC0, 0xB1),
		dsi.SeqRev(evt1, 0x6F, 0x08),
		dsi.SeqRev(evt1, 0xC0, 0x55),
		dsi.SeqRev(evt1, 0xD5,
			0x21, 0x00, 0x39, 0x31, 0x39, 0x31, 0x00, 0x00, 0x3F, 0xC9, 0xEF, 0xAE, 0x3F, 0xC9, 0xEF, 0xAE,
			0x00, 0x0C, 0xC6, 0xDB, 0x61, 0x23, 0x00, 0x00, 0x79, 0x00, 0x00, 0x79, 0x33, 0xF0, 0x87, 0x87,
			0x39, 0x31, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		),
		dsi.SeqRev(evt1, 0xD6,
			0x27, 0x00, 0x39, 0x31, 0x39, 0x31, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x3F, 0xC9, 0xEF, 0xAE,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x23, 0x00, 0x7A, 0xF3, 0x00, 0x00, 0x79, 0x33, 0x30, 0x79, 0x87,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		),
		dsi.SeqRev(evt1, 0xD7,
			0x2B, 0x00, 0x39, 0x31, 0x39, 0x31, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x7F, 0xF3, 0x39, 0x24, 0x9F, 0x55, 0x00, 0x7A, 0xF3, 0x00, 0x7A, 0xF3, 0x33, 0x0F, 0x79, 0x79,
			0xC6, 0xCF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		),
		dsi.SeqRev(evt1, 0xD8,
			0x2D, 0x00, 0x39, 0x31, 0x39, 0x31, 0x00, 0x00, 0x3F, 0xC9, 0xEF, 0xAE, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x55, 0x00, 0x00, 0x79, 0x00, 0x7A, 0xF3, 0x33, 0xC0, 0x87, 0x79,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		),
		dsi.SeqRev(evt1, cmd2Page0...),
		dsi.SeqRev(evt1, 0xDF, 0x05),
		dsi.SeqRev(evt1, 0x6F, 0x01),
		dsi.SeqRev(evt1, 0xDF, 0x00),
		dsi.SeqRev(evt1, 0x6F, 0x02),
		dsi.SeqRev(evt1, 0xDF, 0x00),
		dsi.SeqRev(evt1, 0x6F, 0x13),
		dsi.SeqRev(evt1, 0xDF, 0x00, 0x7A, 0x00, 0x7A),
		dsi.SeqRev(evt1, 0x6F, 0x1B),
		dsi.SeqRev(evt1, 0xDF, 0x00, 0x00, 0x00, 0x00),
		dsi.SeqRev(evt1, 0x6F, 0x1F),
		dsi.SeqRev(evt1, 0xDF, 0x00, 0xF3, 0x00, 0xF3),
		dsi.SeqRev(evt1, 0x6F, 0x2B),
		dsi.SeqRev(evt1, 0xDF, 0x3F, 0xFF, 0x3F, 0xFF, 0x3F, 0xFF),
		dsi.SeqRev(evt1, 0x6F, 0x31),
		dsi.SeqRev(evt1, 0xDF, 0x22),
		dsi.SeqRev(evt1, 0x6F, 0x32),
		dsi.SeqRev(evt1, 0xDF, 0x2A),
		dsi.SeqRev(evt1, 0x6F, 0x33),
		dsi.SeqRev(evt1, 0xDF, 0x2A),
		dsi.SeqRev(evt1, 0x6F, 0x34),
		dsi.SeqRev(evt1, 0xDF, 0x16),
		dsi.SeqRev(evt1, 0x6F, 0x35),
		dsi.SeqRev(evt1, 0xDF, 0x00),
		dsi.SeqRev(evt1, 0x6F, 0x36),
		dsi.SeqRev(evt1, 0xDF, 0x02),
		dsi.SeqRev(evt1, 0x6F, 0x37),
		dsi.SeqRev(evt1, 0xDF, 0x01),
		dsi.SeqRev(evt1, 0x6F, 0x38),
		dsi.SeqRev(evt1, 0xDF, 0x0C, 0x38),
		dsi.SeqRev(evt1, 0x6F, 0x3A),
		dsi.SeqRev(evt1, 0xDF, 0x01, 0x1F, 0x00, 0x61, 0x00, 0x93),
		dsi.SeqRev(evt1, 0x6F, 0x40),
		dsi.SeqRev(evt1, 0xDF, 0x00, 0xF8, 0x01, 0x07, 0x00, 0x2E),
		dsi.SeqRev(evt1, 0x6F, 0x46),
		dsi.SeqRev(evt1, 0xDF, 0x00, 0x99, 0x00, 0x29, 0x00, 0x88),
		dsi.SeqRev(evt1, 0x6F, 0x4C),
		dsi.SeqRev(evt1, 0xDF, 0x1F, 0xFC, 0x1F, 0xFC, 0x1F, 0xFC),
		dsi.SeqRev(evt1, 0x6F, 0x52),
		dsi.SeqRev(evt1, 0xDF, 0x0A, 0x99, 0x22, 0xDA, 0x3E, 0xB5),
		dsi.SeqRev(evt1, 0x6F, 0x58),
		dsi.SeqRev(evt1, 0xDF, 0x3D, 0xDC, 0x28, 0xD5, 0x1D, 0x52),
		dsi.SeqRev(evt1, 0x6F, 0x5E),
		dsi.SeqRev(evt1, 0xDF, 0x13, 0x51, 0x13, 0xCD, 0x0D, 0x4E),
		dsi.SeqRev(evt1, 0x6F, 0x64),
		dsi.SeqRev(evt1, 0xDF, 0x3B, 0x3F, 0x2E, 0x39, 0x35, 0xF2),
		dsi.SeqRev(evt1, 0x6F, 0x6A),
		dsi.SeqRev(evt1, 0xDF, 0x25, 0x35, 0x18, 0x3C, 0x30, 0xCF),
		dsi.SeqRev(evt1, 0x6F, 0x70),
		dsi.SeqRev(evt1, 0xDF, 0x3E, 0xD6, 0x03, 0xE4, 0x3F, 0xF5),
		dsi.SeqRev(evt1, 0x6F, 0x76),
		dsi.SeqRev(evt1, 0xDF, 0x23, 0x19, 0x1C, 0x89, 0x37, 0x4B),
		dsi.SeqRev(evt1, 0x6F, 0x7C),
		dsi.SeqRev(evt1, 0xDF, 0x3F, 0x69, 0x0A, 0xC7, 0x3C, 0xB5),
		dsi.SeqRev(evt1, 0x6F, 0x82),
		dsi.SeqRev(evt1, 0xDF, 0x13, 0x61, 0x1E, 0x2E, 0x03, 0xA9),
		dsi.SeqRev(evt1, 0x6F, 0x88),
		dsi.SeqRev(evt1, 0xDF, 0x40),
		dsi.SeqRev(evt1, 0x6F, 0x01),
		dsi.SeqRev(evt1, 0x87, 0x07, 0x5E),
		dsi.SeqRev(evt1, 0x6F, 0x03),
		dsi.SeqRev(evt1, 0x87, 0x07, 0x5E),
		dsi.SeqRev(evt1, 0x6F, 0x05),
		dsi.SeqRev(evt1, 0x87,
			0x07, 0x5E, 0x07, 0x5E, 0x07, 0x5E, 0x07, 0x5E, 0x07, 0x5E, 0x07, 0x5E, 0x07, 0x5E, 0x07, 0x5E,
		),
		dsi.Seq(0x88, 0x01),
		dsi.Seq(0x6F, 0x01),
		dsi.Seq(0x88, 0x02, 0xD0, 0x09, 0x39),
		dsi.Seq(0x6F, 0x15),
		dsi.Seq(0x87, 0x0A, 0x86),
		dsi.Seq(0x6F, 0x17),
		dsi.Seq(0x87, 0x0F, 0xFF),
		dsi.Seq(0x6F, 0x19),
		dsi.Seq(0x87,
			0x01, 0x4F, 0x06, 0x45, 0x0B, 0x98, 0x01, 0x96, 0x08, 0x19, 0x0A, 0xFD, 0x01, 0x55, 0x05, 0x84,
		),
		dsi.Seq(0x6F, 0x3D),
		dsi.Seq(0x87, 0x01, 0x4A),
		dsi.Seq(0x6F, 0x3F),
		dsi.Seq(0x87, 0x08, 0xBB),
		dsi.Seq(0x6F, 0x41),
		dsi.Seq(0x87,
			0x08, 0xF4, 0x0C, 0xAB, 0x00, 0xD4, 0x08, 0x80, 0x09, 0x91, 0x0A, 0x87, 0x04, 0x1D, 0x0B, 0x9C,
		),
		dsi.Seq(0x6F, 0x65),
		dsi.Seq(0x87, 0x07, 0x68),
		dsi.Seq(0x6F, 0x67),
		dsi.Seq(0x87, 0x01, 0x1C),
		dsi.Seq(0x6F, 0x69),
		dsi.Seq(0x87,
			0x0B, 0x3C, 0x0D, 0x16, 0x04, 0x32, 0x07, 0x83, 0x0D, 0x92, 0x0C, 0x87, 0x07, 0x4B, 0x07, 0x18,
		),
		dsi.Seq(0x6F, 0x29),
		dsi.Seq(0x87, 0x09, 0xBE),
		dsi.Seq(0x6F, 0x2B),
		dsi.Seq(0x87, 0x0D, 0x95),
		dsi.Seq(0x6F, 0x2D),
		dsi.Seq(0x87,
			0x0E, 0x45, 0x07, 0xCE, 0x04, 0x18, 0x03, 0x47, 0x0B, 0x52, 0x00, 0x7C, 0x0D, 0x90, 0x0A, 0x8B,
		),
		dsi.Seq(0x6F, 0x51),
		dsi.Seq(0x87, 0x02, 0x10),
		dsi.Seq(0x6F, 0x53),
		dsi.Seq(0x87, 0x07, 0x9D),
		dsi.Seq(0x6F, 0x55),
		dsi.Seq(0x87,
			0x01, 0x11, 0x04, 0x28, 0x00, 0xF0, 0x0B, 0x8C, 0x0C, 0xC0, 0x04, 0x0F, 0x05, 0x1F, 0x0E, 0x89,
		),
		dsi.Seq(0x6F, 0x79),
		dsi.Seq(0x87, 0x07, 0x8C),
		dsi.Seq(0x6F, 0x7B),
		dsi.Seq(0x87, 0x0C, 0xE2),
		dsi.Seq(0x6F, 0x7D),
		dsi.Seq(0x87,
			0x09, 0x08, 0x02, 0xF9, 0x01, 0x08, 0x0D, 0x17, 0x04, 0x6B, 0x00, 0xD0, 0x04, 0x77, 0x05, 0x7D,
		),
		dsi.SeqRev(preEVT1, 0x51, 0x3F, 0xFF),
		dsi.SeqRev(preEVT1, 0x53, 0x20),
		dsi.SeqRev(preEVT1, 0xFF, 0xAA, 0x55, 0xA5, 0x84),
		dsi.SeqRev(preEVT1, 0x6F, 0x7C),
		dsi.SeqRev(preEVT1, 0xF3, 0x01),
	},
}
