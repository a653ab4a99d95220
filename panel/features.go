// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"math/bits"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// Feature is the index of a panel feature in a FeatureSet.
type Feature uint8

// MaxFeatures is the capacity of a FeatureSet.
const MaxFeatures = 32

// FeatureSet is a set of enabled panel features.
type FeatureSet uint32

// Set enables f.
func (s *FeatureSet) Set(f Feature) {
	*s |= 1 << f
}

// Clear disables f.
func (s *FeatureSet) Clear(f Feature) {
	*s &^= 1 << f
}

// Has returns true if f is enabled.
func (s FeatureSet) Has(f Feature) bool {
	return s&(1<<f) != 0
}

// Xor returns the features that differ between s and o.
func (s FeatureSet) Xor(o FeatureSet) FeatureSet {
	return s ^ o
}

// Empty returns true if no feature is enabled.
func (s FeatureSet) Empty() bool {
	return s == 0
}

// Len returns the number of enabled features.
func (s FeatureSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

func (s FeatureSet) String() string {
	var parts []string
	for f := Feature(0); f < MaxFeatures; f++ {
		if s.Has(f) {
			parts = append(parts, fmt.Sprintf("%d", f))
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// RefreshState is a pair of refresh rates. Idle is 0 when the panel does not
// lower its refresh rate on its own.
type RefreshState struct {
	Active physic.Frequency
	Idle   physic.Frequency
}

func (r RefreshState) String() string {
	return fmt.Sprintf("%s/idle %s", r.Active, r.Idle)
}

// Tracker keeps the desired features apart from the features and refresh
// rates committed to the panel.
//
// Tracker does no locking.
type Tracker struct {
	desired   FeatureSet
	committed FeatureSet
	hw        RefreshState
}

// NewTracker returns a Tracker with nothing committed and baseline as the
// committed refresh rate.
func NewTracker(baseline physic.Frequency) *Tracker {
	t := &Tracker{}
	t.Reset(baseline)
	return t
}

// MarkDesired enables or disables f in the desired set. The hardware is not
// touched.
func (t *Tracker) MarkDesired(f Feature, enabled bool) {
	if enabled {
		t.desired.Set(f)
	} else {
		t.desired.Clear(f)
	}
}

// Desired returns the desired features.
func (t *Tracker) Desired() FeatureSet {
	return t.desired
}

// Committed returns the features and rates effective in the panel.
func (t *Tracker) Committed() (FeatureSet, RefreshState) {
	return t.committed, t.hw
}

// NeedsSync returns true if force is set or the desired state differs from
// the committed one.
func (t *Tracker) NeedsSync(force bool, want RefreshState) bool {
	if force {
		return true
	}
	return !t.desired.Xor(t.committed).Empty() || want != t.hw
}

// Commit records that the desired features and want were applied to the
// panel.
//
// It must only be called after the commands were successfully sent.
func (t *Tracker) Commit(want RefreshState) {
	t.committed = t.desired
	t.hw = want
}

// Reset forgets the desired and committed state, as after a power cycle of
// the panel.
func (t *Tracker) Reset(baseline physic.Frequency) {
	t.desired = 0
	t.committed = 0
	t.hw = RefreshState{Active: baseline}
}
