// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dsi encodes MIPI-DSI Display Command Set (DCS) commands and sends
// them over a conn.Conn.
//
// Commands are plain byte sequences, the first byte being the DCS opcode. A
// command may carry a settling delay that must elapse before the next command
// is sent, and may be restricted to a set of panel hardware revisions. Panel
// drivers keep their command tables as package level []Cmd values.
//
// Commands can be sent one by one with Writer.Send or accumulated in a Batch
// which is transmitted as a single bus transaction. Batching keeps the panel
// from latching a partially applied register state between two commands.
//
// The packets produced by Encode carry the DSI data type and payload only.
// ECC and checksum bytes are generated by the DSI host or bridge.
//
// # Specification
//
// https://www.mipi.org/specifications/dsi
package dsi
