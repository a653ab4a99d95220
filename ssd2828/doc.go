// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd2828 drives a Solomon Systech SSD2828 SPI to MIPI-DSI bridge.
//
// The bridge lets a host without a DSI controller send DCS commands to a
// panel. Dev implements conn.Conn: each Tx carries DSI packets as produced by
// the dsi package, which the bridge forwards to the panel.
//
// Only 4-wire 8 bit SPI is supported; the D/C line selects between register
// addresses and register data.
//
// Datasheet
//
// https://www.solomon-systech.com/product/ssd2828/
package ssd2828
