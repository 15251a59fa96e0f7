// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/viewport.go
// Summary: Cursor position and scroll window over a single document.
// Usage: The editor mutates the viewport from key events and calls ScrollFix
// once per frame before rendering.
// Notes: The cursor moves in byte offsets; scrolling tracks display columns.

package view

import (
	"github.com/framegrace/texedit/document"
	"github.com/framegrace/texedit/uniwidth"
)

// Viewport binds a cursor and a visible window to a document it does not own.
//
// After every exported mutation the cursor satisfies
// 0 <= LineNum < LineCount and 0 <= ColNum <= len(current line).
type Viewport struct {
	doc    *document.Document
	engine uniwidth.Engine

	LineNum int
	ColNum  int

	RowOffset int
	ColOffset int

	ScreenRows int
	ScreenCols int
}

// New returns a viewport at the top of doc with a 1x1 screen. Callers set
// the real size with SetScreenSize before each frame.
func New(doc *document.Document, engine uniwidth.Engine) *Viewport {
	return &Viewport{doc: doc, engine: engine, ScreenRows: 1, ScreenCols: 1}
}

func (v *Viewport) Document() *document.Document { return v.doc }
func (v *Viewport) Engine() uniwidth.Engine       { return v.engine }

// CurrentLine is the line under the cursor.
func (v *Viewport) CurrentLine() *document.Line { return v.doc.MustLine(v.LineNum) }

// SetScreenSize records the visible dimensions; values below 1 become 1.
func (v *Viewport) SetScreenSize(rows, cols int) {
	v.ScreenRows = max(rows, 1)
	v.ScreenCols = max(cols, 1)
}

// VerticalFix clamps LineNum to an existing line.
func (v *Viewport) VerticalFix() {
	n := v.doc.LineCount()
	if v.LineNum >= n {
		v.LineNum = n - 1
	}
	if v.LineNum < 0 {
		v.LineNum = 0
	}
}

// HorizontalFix clamps ColNum to the current line. It reads the current line,
// so VerticalFix must have run first.
func (v *Viewport) HorizontalFix() {
	l := v.CurrentLine().Len()
	if v.ColNum > l {
		v.ColNum = l
	}
	if v.ColNum < 0 {
		v.ColNum = 0
	}
}

// Fix restores both cursor invariants.
func (v *Viewport) Fix() {
	v.VerticalFix()
	v.HorizontalFix()
}

func (v *Viewport) CursorLeft() {
	v.ColNum--
	v.Fix()
}

func (v *Viewport) CursorRight() {
	v.ColNum++
	v.Fix()
}

func (v *Viewport) CursorUp() {
	v.LineNum--
	v.Fix()
}

func (v *Viewport) CursorDown() {
	v.LineNum++
	v.Fix()
}

// DisplayColumn is the screen column of the cursor within its line, before
// horizontal scrolling.
func (v *Viewport) DisplayColumn() int {
	return v.engine.ColumnOf(v.CurrentLine().Bytes(), v.ColNum)
}

// ScrollFix slides the offsets by the smallest amount that keeps the cursor
// inside the visible window.
func (v *Viewport) ScrollFix() {
	rows := max(v.ScreenRows, 1)
	cols := max(v.ScreenCols, 1)

	v.RowOffset = max(v.RowOffset, 0)
	if v.LineNum < v.RowOffset {
		v.RowOffset = v.LineNum
	}
	if v.LineNum >= v.RowOffset+rows {
		v.RowOffset = v.LineNum - rows + 1
	}

	x := v.DisplayColumn()
	v.ColOffset = max(v.ColOffset, 0)
	if x < v.ColOffset {
		v.ColOffset = x
	}
	if x >= v.ColOffset+cols {
		v.ColOffset = x - cols + 1
	}
}

// CursorScreenPos returns the cursor position relative to the window.
func (v *Viewport) CursorScreenPos() (x, y int) {
	return v.DisplayColumn() - v.ColOffset, v.LineNum - v.RowOffset
}

// InsertByte inserts b at the cursor and moves past it.
func (v *Viewport) InsertByte(b byte) {
	v.InsertText([]byte{b})
}

// InsertText inserts text at the cursor and moves past it. text must not
// contain a newline.
func (v *Viewport) InsertText(text []byte) {
	v.Fix()
	v.CurrentLine().InsertText(v.ColNum, text)
	v.ColNum += len(text)
	v.Fix()
}

// OpenLineAbove inserts an empty line at the cursor row and moves onto it.
func (v *Viewport) OpenLineAbove() {
	v.Fix()
	v.doc.InsertLine(v.LineNum, nil)
	v.Fix()
}

// OpenLineBelow inserts an empty line after the cursor row and moves onto it.
func (v *Viewport) OpenLineBelow() {
	v.Fix()
	v.doc.InsertLine(v.LineNum+1, nil)
	v.CursorDown()
}

// DeleteLine removes the cursor row. The last remaining line is cleared
// instead.
func (v *Viewport) DeleteLine() {
	v.Fix()
	v.doc.DeleteLines(v.LineNum, 1)
	v.Fix()
}

// Backspace deletes the byte left of the cursor. At column 0 the current
// line is joined onto the previous one.
func (v *Viewport) Backspace() {
	v.Fix()
	if v.ColNum > 0 {
		v.CurrentLine().DeleteRange(v.ColNum-1, 1)
		v.ColNum--
		return
	}
	if v.LineNum == 0 {
		return
	}
	cur := v.CurrentLine()
	prev := v.doc.MustLine(v.LineNum - 1)
	col := prev.Len()
	prev.InsertText(col, cur.Bytes())
	v.doc.DeleteLines(v.LineNum, 1)
	v.LineNum--
	v.ColNum = col
	v.Fix()
}
