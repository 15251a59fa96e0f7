// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/ansi.go
// Summary: Backend that writes VT100-family escape sequences to a byte stream.
// Usage: OpenTTY builds one over /dev/tty; tests construct it over a bytes.Buffer.
// Notes: Every frame is accumulated in memory and written with a single Write.

package driver

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/framegrace/texedit/internal/growbuf"
	"github.com/framegrace/texedit/render"
	"github.com/framegrace/texedit/uniwidth"
)

const (
	seqHideCursor = "\x1b[?25l"
	seqShowCursor = "\x1b[?25h"
	seqClearRight = "\x1b[0K"
	seqTagOn      = "\x1b[48;5;233m"
	seqAttrReset  = "\x1b[0m"

	frameMinCap = 8
)

// ANSIOptions configures an ANSI backend.
type ANSIOptions struct {
	Mode uniwidth.Mode
	// Rows and Cols are used when Size is nil or fails.
	Rows, Cols int
	// Size, when set, is polled at the start of every frame.
	Size func() (rows, cols int, err error)
	// Restore undoes raw mode. It runs once, from Fini or RestoreTerminal.
	Restore func() error
	// Closer is closed by Fini after the terminal has been restored.
	Closer io.Closer
}

// ANSI renders cells as escape sequences.
type ANSI struct {
	out    io.Writer
	in     InputSource
	mode   uniwidth.Mode
	engine uniwidth.Engine
	pool   *render.TextPool
	frame  *growbuf.Buffer[byte]

	scratch []byte
	rows    int
	cols    int
	size    func() (int, int, error)
	restore func() error
	closer  io.Closer
	once    sync.Once

	restoreOnce sync.Once
}

// NewANSI returns a backend writing to out and reading from in.
func NewANSI(out io.Writer, in InputSource, opts ANSIOptions) *ANSI {
	return &ANSI{
		out:     out,
		in:      in,
		mode:    opts.Mode,
		engine:  uniwidth.New(opts.Mode),
		pool:    render.NewTextPool(),
		frame:   growbuf.New[byte](frameMinCap),
		rows:    max(opts.Rows, 1),
		cols:    max(opts.Cols, 1),
		size:    opts.Size,
		restore: opts.Restore,
		closer:  opts.Closer,
	}
}

func (a *ANSI) Init() error {
	a.refreshSize()
	log.Printf("Driver: ansi backend %dx%d, %s mode", a.cols, a.rows, a.mode)
	return nil
}

// Fini restores the terminal, parks the cursor on the last row and clears it.
// Only the first call has an effect.
func (a *ANSI) Fini() {
	a.once.Do(a.fini)
}

func (a *ANSI) fini() {
	a.RestoreTerminal()
	a.frame.Reset()
	a.printf("\x1b[%d;1H", a.rows)
	a.write(seqClearRight)
	a.flush()
	if a.closer != nil {
		a.closer.Close()
	}
}

// RestoreTerminal leaves raw mode. It does not touch the frame buffer.
func (a *ANSI) RestoreTerminal() {
	a.restoreOnce.Do(func() {
		if a.restore == nil {
			return
		}
		if err := a.restore(); err != nil {
			log.Printf("Driver: %v", err)
		}
	})
}

func (a *ANSI) Size() (rows, cols int) { return a.rows, a.cols }

func (a *ANSI) Mode() uniwidth.Mode { return a.mode }

func (a *ANSI) Pool() *render.TextPool { return a.pool }

func (a *ANSI) refreshSize() {
	if a.size == nil {
		return
	}
	rows, cols, err := a.size()
	if err != nil {
		log.Printf("Driver: keeping %dx%d: %v", a.cols, a.rows, err)
		return
	}
	a.rows, a.cols = max(rows, 1), max(cols, 1)
}

// FrameStart begins buffering a frame with the cursor hidden.
func (a *ANSI) FrameStart() {
	a.refreshSize()
	a.pool.Reset()
	a.frame.Reset()
	a.write(seqHideCursor)
}

// FrameFlush shows the cursor and writes the whole frame at once.
func (a *ANSI) FrameFlush() error {
	a.write(seqShowCursor)
	return a.flush()
}

func (a *ANSI) flush() error {
	defer a.frame.Reset()
	if a.frame.Len() == 0 {
		return nil
	}
	if _, err := a.out.Write(a.frame.Slice()); err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}
	return nil
}

// MoveCursor places the cursor at zero-based column x and row y.
func (a *ANSI) MoveCursor(x, y int) {
	a.printf("\x1b[%d;%dH", y+1, x+1)
}

func (a *ANSI) DrawSymbol(x, y int, sym Symbol) {
	a.MoveCursor(x, y)
	a.frame.Append(sym.Char())
	a.write(seqClearRight)
}

// DrawCells paints one row of cells starting at column x.
func (a *ANSI) DrawCells(x, y int, cells []render.Cell) {
	if a.mode == uniwidth.Compat {
		a.drawCompat(x, y, cells)
		return
	}
	a.drawModern(x, y, cells)
}

func (a *ANSI) drawModern(x, y int, cells []render.Cell) {
	a.MoveCursor(x, y)
	for i := range cells {
		c := &cells[i]
		text := c.Text(a.pool)
		x += c.Width
		switch {
		case c.Trunc == render.TruncLeft:
			a.marker('<', c.Width)
		case c.Trunc == render.TruncRight:
			a.marker('>', c.Width)
		case len(text) > 0 && text[0] == '\t':
			a.spaces(c.Width)
		case isControl(text):
			// Never forward control bytes from the document to the terminal.
		default:
			a.frame.Append(text...)
		}
	}
	if x < a.cols {
		a.write(seqClearRight)
	}
}

func (a *ANSI) marker(m byte, width int) {
	if width <= 0 {
		return
	}
	a.frame.Append(m)
	for j := 1; j < width; j++ {
		a.frame.Append('.')
	}
}

func (a *ANSI) spaces(n int) {
	for ; n > 0; n-- {
		a.frame.Append(' ')
	}
}

func (a *ANSI) write(s string) {
	a.frame.Append([]byte(s)...)
}

func (a *ANSI) printf(format string, args ...any) {
	a.scratch = fmt.Appendf(a.scratch[:0], format, args...)
	a.frame.Append(a.scratch...)
}

func (a *ANSI) NextEvent() (Event, error) {
	if a.in == nil {
		return Event{}, io.EOF
	}
	return ReadEvent(a.in)
}

func isControl(text []byte) bool {
	r, _ := uniwidth.Decode(text)
	return uniwidth.GenericWidth(r) < 0
}
