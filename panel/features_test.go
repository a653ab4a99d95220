// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"testing"

	"periph.io/x/conn/v3/physic"
)

const (
	featA Feature = iota
	featB
)

func TestFeatureSet(t *testing.T) {
	var s FeatureSet
	if !s.Empty() {
		t.Fatal("zero FeatureSet is not empty")
	}
	s.Set(featA)
	s.Set(featB)
	if !s.Has(featA) || !s.Has(featB) || s.Len() != 2 {
		t.Fatalf("FeatureSet = %s", s)
	}
	s.Clear(featA)
	if s.Has(featA) || !s.Has(featB) {
		t.Fatalf("FeatureSet = %s", s)
	}
	if got := s.String(); got != "{1}" {
		t.Errorf("String() = %q", got)
	}
	var o FeatureSet
	o.Set(featA)
	if x := s.Xor(o); !x.Has(featA) || !x.Has(featB) {
		t.Errorf("Xor() = %s", x)
	}
}

func TestTrackerNeedsSync(t *testing.T) {
	rates := []RefreshState{
		{Active: 60 * physic.Hertz},
		{Active: 120 * physic.Hertz},
		{Active: 120 * physic.Hertz, Idle: 10 * physic.Hertz},
		{Active: 120 * physic.Hertz, Idle: 30 * physic.Hertz},
		{Active: 120 * physic.Hertz, Idle: 60 * physic.Hertz},
		{Active: 60 * physic.Hertz, Idle: 30 * physic.Hertz},
	}
	for _, want := range rates {
		t.Run(want.String(), func(t *testing.T) {
			tr := NewTracker(60 * physic.Hertz)
			tr.Commit(want)
			if tr.NeedsSync(false, want) {
				t.Fatal("NeedsSync() after Commit() = true")
			}
			for _, f := range []Feature{featA, featB} {
				tr.MarkDesired(f, !tr.Desired().Has(f))
				if !tr.NeedsSync(false, want) {
					t.Fatalf("NeedsSync() after MarkDesired(%d) = false", f)
				}
				tr.Commit(want)
				if tr.NeedsSync(false, want) {
					t.Fatalf("NeedsSync() after Commit() = true")
				}
			}
			if !tr.NeedsSync(true, want) {
				t.Fatal("NeedsSync(force) = false")
			}
		})
	}
}

func TestTrackerRates(t *testing.T) {
	tr := NewTracker(60 * physic.Hertz)
	if tr.NeedsSync(false, RefreshState{Active: 60 * physic.Hertz}) {
		t.Fatal("NeedsSync() on baseline = true")
	}
	want := RefreshState{Active: 120 * physic.Hertz}
	if !tr.NeedsSync(false, want) {
		t.Fatal("NeedsSync() with new rate = false")
	}
	tr.MarkDesired(featA, true)
	tr.Commit(want)
	feat, hw := tr.Committed()
	if !feat.Has(featA) || hw != want {
		t.Fatalf("Committed() = %s, %s", feat, hw)
	}
	tr.Reset(60 * physic.Hertz)
	feat, hw = tr.Committed()
	if !feat.Empty() || hw != (RefreshState{Active: 60 * physic.Hertz}) {
		t.Fatalf("Committed() after Reset() = %s, %s", feat, hw)
	}
	if !tr.Desired().Empty() {
		t.Errorf("Desired() after Reset() = %s", tr.Desired())
	}
}

func TestIdleModeSet(t *testing.T) {
	var m IdleMode
	if err := m.Set("on-self-refresh"); err != nil || m != IdleOnSelfRefresh {
		t.Fatalf("Set() = %v, %s", err, m)
	}
	if err := m.Set("sometimes"); err == nil {
		t.Fatal("Set(invalid) succeeded")
	}
}
