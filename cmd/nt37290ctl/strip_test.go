// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/amoled/nt37290"
	"github.com/GermanBionicSystems/amoled/panel"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

func TestStrip(t *testing.T) {
	var buf bytes.Buffer
	s := newStrip(&buf, nil)
	st := nt37290.Status{
		State:      panel.LP,
		Refresh:    panel.RefreshState{Active: 30 * physic.Hertz},
		Brightness: 40,
		LP:         "low",
	}
	require.NoError(t, s.render(st))
	line := buf.String()
	require.True(t, strings.HasSuffix(line, " lp 30Hz/idle 0Hz [] lp=low\n"), line)
	require.Equal(t, 1, strings.Count(line, "\n"))
}

func TestCells(t *testing.T) {
	require.Equal(t, 0, cells(0))
	require.Equal(t, 1, cells(physic.Hertz))
	require.Equal(t, stripWidth/2, cells(60*physic.Hertz))
	require.Equal(t, stripWidth, cells(120*physic.Hertz))
}

func TestFeatureNames(t *testing.T) {
	var s panel.FeatureSet
	require.Equal(t, "[]", featureNames(s))
	s.Set(nt37290.FrameAuto)
	require.Equal(t, "[auto]", featureNames(s))
	s.Set(nt37290.EarlyExit)
	require.Equal(t, "[ee auto]", featureNames(s))
}
