// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panel contains the pieces shared by MIPI-DSI panel drivers: display
// mode descriptors, the panel power state and the feature tracker that keeps
// the desired panel features apart from the ones committed to hardware.
//
// A driver marks the features it wants with Tracker.MarkDesired, asks
// Tracker.NeedsSync whether the hardware must be updated, sends the commands
// and only then calls Tracker.Commit. A failed or skipped update leaves the
// committed state untouched so the next event retries it.
package panel
