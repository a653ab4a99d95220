// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package nt37290 controls a 1440x3120 AMOLED panel driven by a Novatek
// NT37290 display driver IC over MIPI-DSI.
//
// The driver owns the panel feature state: early exit and automatic frame
// insertion let the panel drop to an idle refresh rate on its own while the
// host is in self refresh. The host graphics stack reports its events
// (ModeSet, SetSelfRefresh, CommitDone, SetBrightness, SetLocalHBM) and the
// driver sends the minimal command sequence to bring the panel to the desired
// state.
//
// Datasheet
//
// The NT37290 datasheet is not public. The command sequences are calibrated
// for the BOE panel using it.
package nt37290
