// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package amoled is a container for the MIPI-DSI AMOLED panel drivers.
//
// The dsi package encodes DCS commands, panel holds what panel drivers share,
// nt37290 drives the NT37290 panel and ssd2828 the SPI to DSI bridge used to
// reach it from a host without a DSI controller.
package amoled
