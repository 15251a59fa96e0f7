// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/harness_test.go
// Summary: Test harness running an Editor on a tcell simulation screen.
// Usage: Used by editor tests to type keys and read back the screen.

package editor

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texedit/document"
	"github.com/framegrace/texedit/driver"
)

// TestHarness wraps an editor bound to a simulated terminal.
type TestHarness struct {
	t      *testing.T
	screen tcell.SimulationScreen
	ed     *Editor
}

// NewTestHarness creates an editor of the given size over a document made
// of lines.
func NewTestHarness(t *testing.T, width, height int, lines ...string) *TestHarness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	backend := driver.NewTcell(screen)
	if err := backend.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(backend.Fini)

	var doc *document.Document
	if len(lines) > 0 {
		doc = document.FromLines(lines)
	}
	h := &TestHarness{t: t, screen: screen, ed: New(backend, doc)}
	h.draw()
	return h
}

func (h *TestHarness) draw() {
	h.t.Helper()
	if err := h.ed.Draw(); err != nil {
		h.t.Fatalf("draw: %v", err)
	}
}

// SendKeys feeds each byte of keys through the editor, redrawing after each.
func (h *TestHarness) SendKeys(keys string) {
	h.t.Helper()
	for i := 0; i < len(keys); i++ {
		h.ed.Handle(driver.Decode(keys[i]))
		h.draw()
	}
}

// Row returns screen row y with trailing blanks removed.
func (h *TestHarness) Row(y int) string {
	w, _ := h.screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, width := h.screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
		if width > 1 {
			x += width - 1
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Lines returns the document content.
func (h *TestHarness) Lines() []string {
	doc := h.ed.Document()
	out := make([]string, doc.LineCount())
	for i := range out {
		out[i] = doc.MustLine(i).String()
	}
	return out
}

// Cursor returns the on-screen cursor position.
func (h *TestHarness) Cursor() (x, y int) {
	x, y, _ = h.screen.GetCursor()
	return x, y
}
