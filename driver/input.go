// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/input.go
// Summary: Byte-oriented input source and the byte to event decoding.
// Notes: Bytes left over from the capability probe are replayed before
// anything is read from the terminal.

package driver

import (
	"bufio"
	"io"
	"log"
)

// InputSource yields raw input bytes one at a time, blocking until one is
// available.
type InputSource interface {
	ReadByte() (byte, error)
}

// Input reads from a terminal after draining bytes queued at startup.
type Input struct {
	pending []byte
	r       *bufio.Reader
}

// NewInput wraps r. pending is copied and handed out first.
func NewInput(r io.Reader, pending []byte) *Input {
	in := &Input{r: bufio.NewReader(r)}
	if len(pending) > 0 {
		in.pending = append([]byte(nil), pending...)
		log.Printf("Driver: replaying %d byte(s) typed during startup", len(pending))
	}
	return in
}

func (in *Input) ReadByte() (byte, error) {
	if len(in.pending) > 0 {
		b := in.pending[0]
		in.pending = in.pending[1:]
		return b, nil
	}
	return in.r.ReadByte()
}

// Pending reports how many queued bytes remain.
func (in *Input) Pending() int { return len(in.pending) }

// Decode turns one input byte into an event. A lone ESC is unknown and a
// carriage return reads as a newline, matching a terminal with ICRNL set.
func Decode(b byte) Event {
	switch b {
	case 0x1b:
		return Event{Type: EventUnknown}
	case '\r':
		return Event{Type: EventKey, Key: '\n'}
	}
	return Event{Type: EventKey, Key: b}
}

// ReadEvent blocks for the next byte of src and decodes it.
func ReadEvent(src InputSource) (Event, error) {
	b, err := src.ReadByte()
	if err != nil {
		return Event{}, err
	}
	return Decode(b), nil
}
