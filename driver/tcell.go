// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/tcell.go
// Summary: Backend adapting a tcell.Screen to the Backend interface.
// Usage: Selected with -backend tcell; tests drive it through a simulation screen.
// Notes: tcell performs its own width accounting, so this backend always
// renders in modern mode.

package driver

import (
	"io"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/framegrace/texedit/render"
	"github.com/framegrace/texedit/uniwidth"
	"github.com/gdamore/tcell/v2"
)

// Tcell adapts a tcell.Screen.
type Tcell struct {
	screen  tcell.Screen
	pool    *render.TextPool
	style   tcell.Style
	pending []byte
	runes   []rune
	once    sync.Once
}

// NewTcell wraps the provided screen. Init must be called before drawing.
func NewTcell(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen, pool: render.NewTextPool(), style: tcell.StyleDefault}
}

func (t *Tcell) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(t.style)
	t.screen.Clear()
	w, h := t.screen.Size()
	log.Printf("Driver: tcell backend %dx%d", w, h)
	return nil
}

func (t *Tcell) Fini() {
	t.once.Do(t.screen.Fini)
}

// RestoreTerminal finalizes the screen. tcell serializes Fini against
// drawing with its own lock.
func (t *Tcell) RestoreTerminal() {
	t.Fini()
}

func (t *Tcell) Size() (rows, cols int) {
	w, h := t.screen.Size()
	return max(h, 1), max(w, 1)
}

func (t *Tcell) Mode() uniwidth.Mode { return uniwidth.Modern }

func (t *Tcell) Pool() *render.TextPool { return t.pool }

func (t *Tcell) FrameStart() {
	t.pool.Reset()
	t.screen.HideCursor()
}

func (t *Tcell) FrameFlush() error {
	t.screen.Show()
	return nil
}

func (t *Tcell) MoveCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

func (t *Tcell) DrawSymbol(x, y int, sym Symbol) {
	t.screen.SetContent(x, y, rune(sym.Char()), nil, t.style)
	t.clearRight(x+1, y)
}

func (t *Tcell) DrawCells(x, y int, cells []render.Cell) {
	for i := range cells {
		c := &cells[i]
		text := c.Text(t.pool)
		switch {
		case c.Trunc == render.TruncLeft:
			t.marker(x, y, '<', c.Width)
		case c.Trunc == render.TruncRight:
			t.marker(x, y, '>', c.Width)
		case len(text) > 0 && text[0] == '\t':
			t.marker(x, y, ' ', c.Width)
		case c.Width > 0 && !isControl(text):
			t.runes = t.runes[:0]
			for len(text) > 0 {
				r, n := utf8.DecodeRune(text)
				t.runes = append(t.runes, r)
				text = text[n:]
			}
			t.screen.SetContent(x, y, t.runes[0], t.runes[1:], t.style)
		}
		x += c.Width
	}
	t.clearRight(x, y)
}

func (t *Tcell) marker(x, y int, m rune, width int) {
	for j := 0; j < width; j++ {
		if j > 0 && m != ' ' {
			m = '.'
		}
		t.screen.SetContent(x+j, y, m, nil, t.style)
	}
}

func (t *Tcell) clearRight(x, y int) {
	w, _ := t.screen.Size()
	for ; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, t.style)
	}
}

// NextEvent maps tcell key events to the byte events the ANSI backend
// produces: runes arrive as their UTF-8 bytes, control keys as their codes.
func (t *Tcell) NextEvent() (Event, error) {
	for {
		if len(t.pending) > 0 {
			b := t.pending[0]
			t.pending = t.pending[1:]
			return Decode(b), nil
		}
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return Event{}, io.EOF
		case *tcell.EventResize:
			t.screen.Sync()
			return Event{Type: EventResize}, nil
		case *tcell.EventKey:
			if e, ok := t.translateKey(ev); ok {
				return e, nil
			}
		}
	}
}

func (t *Tcell) translateKey(ev *tcell.EventKey) (Event, bool) {
	switch key := ev.Key(); {
	case key == tcell.KeyRune:
		t.pending = utf8.AppendRune(t.pending, ev.Rune())
		return Event{}, false
	case key == tcell.KeyUp:
		return Event{Type: EventKey, Key: 'k'}, true
	case key == tcell.KeyDown:
		return Event{Type: EventKey, Key: 'j'}, true
	case key == tcell.KeyLeft:
		return Event{Type: EventKey, Key: 'h'}, true
	case key == tcell.KeyRight:
		return Event{Type: EventKey, Key: 'l'}, true
	case key < tcell.KeyRune && key >= 0:
		return Decode(byte(key)), true
	}
	return Event{Type: EventUnknown}, true
}
