// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dsi

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
)

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		want []byte
	}{
		{"empty", nil, nil},
		{"short", []byte{SetDisplayOn}, []byte{DCSShortWrite, 0x29, 0x00}},
		{"param", []byte{0x2F, 0x30}, []byte{DCSShortWriteParam, 0x2F, 0x30}},
		{"long", []byte{0x44, 0x00, 0x01}, []byte{DCSLongWrite, 0x03, 0x00, 0x44, 0x00, 0x01}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(Encode(tc.data), tc.want); diff != "" {
				t.Errorf("Encode() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	var buf []byte
	buf = AppendPacket(buf, []byte{0x2C})
	buf = AppendPacket(buf, []byte{0x5A, 0x01})
	buf = AppendPacket(buf, []byte{0xF0, 0x55, 0xAA, 0x52, 0x08, 0x00})
	got, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []Packet{
		{Type: DCSShortWrite, Data: []byte{0x2C}},
		{Type: DCSShortWriteParam, Data: []byte{0x5A, 0x01}},
		{Type: DCSLongWrite, Data: []byte{0xF0, 0x55, 0xAA, 0x52, 0x08, 0x00}},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Decode() difference (-got +want):\n%s", diff)
	}

	if _, err := Decode([]byte{DCSLongWrite, 0x05, 0x00, 0x01}); !errors.Is(err, ErrShortPacket) {
		t.Errorf("Decode(truncated) = %v, want %v", err, ErrShortPacket)
	}
	if _, err := Decode([]byte{0x7F, 0x00, 0x00}); err == nil {
		t.Error("Decode(unknown type) succeeded")
	}
}

func TestRevMask(t *testing.T) {
	for _, tc := range []struct {
		name string
		m    RevMask
		rev  Rev
		want bool
	}{
		{"all", 0, RevProto1, true},
		{"ge match", GE(RevEVT1), RevEVT1, true},
		{"ge later", GE(RevEVT1), RevMP, true},
		{"ge latest", GE(RevEVT1), RevLatest, true},
		{"ge earlier", GE(RevEVT1), RevProto1_2, false},
		{"lt earlier", LT(RevEVT1), RevProto1, true},
		{"lt match", LT(RevEVT1), RevEVT1, false},
		{"lt latest", LT(RevEVT1), RevLatest, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Match(tc.rev); got != tc.want {
				t.Errorf("%#x.Match(%s) = %t, want %t", tc.m, tc.rev, got, tc.want)
			}
		})
	}
}

func TestRevFromBuildCode(t *testing.T) {
	for code, want := range map[byte]Rev{
		0x00: RevProto1,
		0x08: RevEVT1,
		0x14: RevMP,
		0x1F: RevLatest,
	} {
		if got := RevFromBuildCode(code); got != want {
			t.Errorf("RevFromBuildCode(%#x) = %s, want %s", code, got, want)
		}
	}
}

func TestCmdSetFilter(t *testing.T) {
	s := CmdSet{
		Name: "test",
		Cmds: []Cmd{
			SeqRev(GE(RevEVT1), 0x87, 0x01),
			SeqRev(LT(RevEVT1), 0x87, 0x21),
			Seq(0x85),
		},
	}
	got := s.Filter(RevProto1)
	want := []Cmd{SeqRev(LT(RevEVT1), 0x87, 0x21), Seq(0x85)}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Filter() difference (-got +want):\n%s", diff)
	}
}

func TestBatchSingleTransaction(t *testing.T) {
	var r conntest.Record
	w := NewWriter(&r, func(time.Duration) { t.Fatal("unexpected sleep") })
	b := w.Batch()
	b.Add(0x2F, 0x00)
	b.Add(0x2C)
	b.AddCmd(SeqRev(LT(RevEVT1), 0x87, 0x20))
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{DCSShortWriteParam, 0x2F, 0x00, DCSShortWrite, 0x2C, 0x00}},
	}
	if diff := cmp.Diff(r.Ops, want); diff != "" {
		t.Errorf("Flush() difference (-got +want):\n%s", diff)
	}
	if b.Len() != 0 {
		t.Errorf("Len() after Flush() = %d", b.Len())
	}
}

func TestSendDelays(t *testing.T) {
	var r conntest.Record
	var slept []time.Duration
	w := NewWriter(&r, func(d time.Duration) { slept = append(slept, d) })
	err := w.Send(
		SeqDelay(100*time.Millisecond, SetDisplayOff),
		SeqDelay(120*time.Millisecond, EnterSleepMode),
		Seq(0x2C),
		Seq(0x29),
	)
	if err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{DCSShortWrite, 0x28, 0x00}},
		{W: []byte{DCSShortWrite, 0x10, 0x00}},
		{W: []byte{DCSShortWrite, 0x2C, 0x00, DCSShortWrite, 0x29, 0x00}},
	}
	if diff := cmp.Diff(r.Ops, want); diff != "" {
		t.Errorf("Send() difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(slept, []time.Duration{100 * time.Millisecond, 120 * time.Millisecond}); diff != "" {
		t.Errorf("sleeps difference (-got +want):\n%s", diff)
	}
}

func TestSendTransportError(t *testing.T) {
	p := conntest.Playback{DontPanic: true}
	w := NewWriter(&p, nil)
	err := w.Write(0x28)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Write() = %v, want TransportError", err)
	}
	if te.Op != "write" || te.Cmd != 0x28 {
		t.Errorf("TransportError = %+v", te)
	}
	if !conntest.IsErr(errors.Unwrap(err)) {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
}

func TestRead(t *testing.T) {
	p := conntest.Playback{
		Ops: []conntest.IO{
			{W: []byte{DCSRead, 0xDB, 0x00}, R: []byte{0x48}},
		},
	}
	defer p.Close()
	w := NewWriter(&p, nil)
	r := make([]byte, 1)
	if err := w.Read(0xDB, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0x48 {
		t.Errorf("Read() = %#x, want 0x48", r[0])
	}
}
