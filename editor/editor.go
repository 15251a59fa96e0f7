// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/editor.go
// Summary: Event loop tying a document, its viewport, the renderer and a backend together.
// Usage: cmd/texedit builds one Editor per process and calls Run; tests call
// Handle and Draw directly.

package editor

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/framegrace/texedit/document"
	"github.com/framegrace/texedit/driver"
	"github.com/framegrace/texedit/render"
	"github.com/framegrace/texedit/uniwidth"
	"github.com/framegrace/texedit/view"
)

// Key bindings.
const (
	KeyLeft       = 'h'
	KeyDown       = 'j'
	KeyUp         = 'k'
	KeyRight      = 'l'
	KeyQuit       = 'q'
	KeyOpenAbove  = 'K'
	KeyOpenBelow  = 'J'
	KeyDeleteLine = 0x0b
	KeyBackspace  = 0x7f
	KeyCtrlH      = 0x08
)

// Editor owns all per-session state.
type Editor struct {
	backend  driver.Backend
	doc      *document.Document
	view     *view.Viewport
	renderer *render.Renderer
	cells    []render.Cell
	running  bool
	frames   int
}

// New binds doc to backend. The width engine follows the backend's mode for
// the whole session.
func New(backend driver.Backend, doc *document.Document) *Editor {
	if doc == nil {
		doc = document.New()
	}
	engine := uniwidth.New(backend.Mode())
	return &Editor{
		backend:  backend,
		doc:      doc,
		view:     view.New(doc, engine),
		renderer: render.NewRenderer(engine, backend.Pool()),
		running:  true,
	}
}

func (e *Editor) Document() *document.Document { return e.doc }
func (e *Editor) View() *view.Viewport          { return e.view }
func (e *Editor) Running() bool                 { return e.running }

// Frames is the number of frames drawn so far.
func (e *Editor) Frames() int { return e.frames }

// Draw renders one frame.
func (e *Editor) Draw() error {
	b := e.backend
	b.FrameStart()
	rows, cols := b.Size()
	e.view.SetScreenSize(rows, cols)
	e.view.ScrollFix()

	for y := 0; y < rows; y++ {
		line, ok := e.doc.Line(e.view.RowOffset + y)
		if !ok {
			b.DrawSymbol(0, y, driver.SymEmptyLine)
			continue
		}
		e.cells = e.renderer.Render(e.cells, line.Bytes(), e.view.ColOffset, cols)
		b.DrawCells(0, y, e.cells)
	}

	x, y := e.view.CursorScreenPos()
	b.MoveCursor(x, y)
	e.frames++
	if err := b.FrameFlush(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

// Handle applies one input event.
func (e *Editor) Handle(ev driver.Event) {
	if ev.Type != driver.EventKey {
		return
	}
	v := e.view
	switch ev.Key {
	case KeyLeft:
		v.CursorLeft()
	case KeyDown:
		v.CursorDown()
	case KeyUp:
		v.CursorUp()
	case KeyRight:
		v.CursorRight()
	case KeyQuit:
		e.running = false
	case KeyOpenAbove:
		v.OpenLineAbove()
	case KeyOpenBelow, '\n':
		v.OpenLineBelow()
	case KeyBackspace, KeyCtrlH:
		v.Backspace()
	case KeyDeleteLine:
		v.DeleteLine()
	default:
		v.InsertByte(ev.Key)
	}
}

// Run draws, then reads and applies events until quit. End of input stops
// the loop without an error.
func (e *Editor) Run() error {
	if err := e.Draw(); err != nil {
		return err
	}
	for e.running {
		ev, err := e.backend.NextEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Printf("Editor: input closed")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		e.Handle(ev)
		if !e.running {
			break
		}
		if err := e.Draw(); err != nil {
			return err
		}
	}
	log.Printf("Editor: quit after %d frames", e.frames)
	return nil
}
