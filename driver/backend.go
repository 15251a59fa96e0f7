// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/backend.go
// Summary: Capability interface shared by the terminal backends.
// Usage: The editor draws frames and reads events exclusively through Backend,
// so an ANSI terminal, a tcell screen or a recording buffer can stand behind it.

package driver

import (
	"errors"
	"fmt"

	"github.com/framegrace/texedit/render"
	"github.com/framegrace/texedit/uniwidth"
)

// ErrNotTerminal is returned when the controlling input is not a tty.
var ErrNotTerminal = errors.New("driver: not a terminal")

// Backend paints cells and produces input events. Frame output is buffered
// between FrameStart and FrameFlush.
type Backend interface {
	Init() error
	Fini()
	// RestoreTerminal gives the terminal back without drawing anything. It
	// is safe to call from another goroutine while a frame is being built.
	RestoreTerminal()
	Size() (rows, cols int)
	Mode() uniwidth.Mode
	// Pool resolves pooled cell text. It is reset by FrameStart.
	Pool() *render.TextPool
	FrameStart()
	FrameFlush() error
	MoveCursor(x, y int)
	DrawCells(x, y int, cells []render.Cell)
	DrawSymbol(x, y int, sym Symbol)
	NextEvent() (Event, error)
}

// Symbol is a marker drawn in place of document content.
type Symbol uint8

const (
	// SymEmptyLine marks rows past the end of the document.
	SymEmptyLine Symbol = iota
)

// Char is the glyph used for the symbol.
func (s Symbol) Char() byte {
	switch s {
	case SymEmptyLine:
		return '~'
	}
	return '?'
}

type EventType uint8

const (
	EventKey EventType = iota
	EventUnknown
	// EventResize is produced by backends that are told about size changes.
	EventResize
)

func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventUnknown:
		return "unknown"
	case EventResize:
		return "resize"
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event is one input occurrence. Key is only meaningful for EventKey.
type Event struct {
	Type EventType
	Key  byte
}
