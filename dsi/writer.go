// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dsi

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
)

// TransportError is returned when the underlying connection failed to carry a
// command.
type TransportError struct {
	// Op is "write" or "read".
	Op string
	// Cmd is the opcode of the first command of the failed transaction.
	Cmd byte
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("dsi: %s %#02x: %v", e.Op, e.Cmd, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Writer sends commands to a panel.
type Writer struct {
	c     conn.Conn
	sleep func(time.Duration)
	rev   Rev
}

// NewWriter returns a Writer sending packets over c.
//
// sleep is used to honor the command delays. If nil, time.Sleep is used.
func NewWriter(c conn.Conn, sleep func(time.Duration)) *Writer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Writer{c: c, sleep: sleep, rev: RevLatest}
}

func (w *Writer) String() string {
	return fmt.Sprintf("dsi.Writer{%s, %s}", w.c, w.rev)
}

// SetRev sets the panel revision used to filter gated commands.
func (w *Writer) SetRev(rev Rev) {
	w.rev = rev
}

// Rev returns the panel revision.
func (w *Writer) Rev() Rev {
	return w.rev
}

// Send sends the commands in order.
//
// Commands not applicable to the panel revision are skipped. Consecutive
// commands without a delay are grouped in a single transaction.
func (w *Writer) Send(cmds ...Cmd) error {
	b := w.Batch()
	b.AddCmd(cmds...)
	return b.Flush()
}

// SendSet sends a command set.
func (w *Writer) SendSet(s *CmdSet) error {
	return w.Send(s.Cmds...)
}

// Write sends a single unconditional command.
func (w *Writer) Write(data ...byte) error {
	return w.Send(Cmd{Data: data})
}

// Read reads len(r) bytes from register reg.
func (w *Writer) Read(reg byte, r []byte) error {
	if err := w.c.Tx(ReadRequest(reg), r); err != nil {
		return &TransportError{Op: "read", Cmd: reg, Err: err}
	}
	return nil
}

// Batch returns an empty batch bound to w.
func (w *Writer) Batch() *Batch {
	return &Batch{w: w}
}

// Batch accumulates commands to be sent as one transaction.
//
// A Batch is not safe for concurrent use.
type Batch struct {
	w    *Writer
	cmds []Cmd
}

// Add appends an unconditional command.
func (b *Batch) Add(data ...byte) {
	b.cmds = append(b.cmds, Cmd{Data: data})
}

// AddCmd appends commands. Commands not applicable to the panel revision are
// dropped.
func (b *Batch) AddCmd(cmds ...Cmd) {
	for i := range cmds {
		if cmds[i].Applies(b.w.rev) && len(cmds[i].Data) != 0 {
			b.cmds = append(b.cmds, cmds[i])
		}
	}
}

// Len returns the number of pending commands.
func (b *Batch) Len() int {
	return len(b.cmds)
}

// Reset drops the pending commands.
func (b *Batch) Reset() {
	b.cmds = b.cmds[:0]
}

// Flush sends the pending commands and empties the batch.
//
// Without delays the whole batch is a single transaction. A command with a
// delay terminates the current transaction and the delay is waited before
// the next one starts. On error the remaining commands are dropped.
func (b *Batch) Flush() error {
	defer b.Reset()
	var buf []byte
	first := 0
	for i := range b.cmds {
		buf = AppendPacket(buf, b.cmds[i].Data)
		if b.cmds[i].Delay == 0 && i != len(b.cmds)-1 {
			continue
		}
		if err := b.w.c.Tx(buf, nil); err != nil {
			return &TransportError{Op: "write", Cmd: b.cmds[first].Data[0], Err: err}
		}
		if d := b.cmds[i].Delay; d != 0 {
			b.w.sleep(d)
		}
		buf = buf[:0]
		first = i + 1
	}
	return nil
}
