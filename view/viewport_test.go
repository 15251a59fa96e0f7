// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/viewport_test.go
// Summary: Cursor invariants, scroll sliding and the primitive edits.

package view

import (
	"math/rand"
	"testing"

	"github.com/framegrace/texedit/document"
	"github.com/framegrace/texedit/uniwidth"
)

func newView(lines ...string) *Viewport {
	return New(document.FromLines(lines), uniwidth.New(uniwidth.Modern))
}

func checkInvariants(t *testing.T, v *Viewport, step string) {
	t.Helper()
	n := v.Document().LineCount()
	if v.LineNum < 0 || v.LineNum >= n {
		t.Fatalf("%s: LineNum=%d outside [0,%d)", step, v.LineNum, n)
	}
	if l := v.CurrentLine().Len(); v.ColNum < 0 || v.ColNum > l {
		t.Fatalf("%s: ColNum=%d outside [0,%d]", step, v.ColNum, l)
	}
}

func TestInsertMoveInsert(t *testing.T) {
	v := newView()
	v.InsertByte('a')
	v.InsertByte('b')
	v.CursorLeft()
	v.InsertByte('X')
	if got := v.CurrentLine().String(); got != "aXb" {
		t.Fatalf("got %q, want aXb", got)
	}
	if v.ColNum != 2 {
		t.Fatalf("ColNum=%d, want 2", v.ColNum)
	}
}

func TestDeleteSoleLine(t *testing.T) {
	v := newView("content")
	v.CursorRight()
	v.DeleteLine()
	if n := v.Document().LineCount(); n != 1 {
		t.Fatalf("line count %d, want 1", n)
	}
	if got := v.CurrentLine().String(); got != "" {
		t.Fatalf("line %q, want empty", got)
	}
	checkInvariants(t, v, "delete")
}

func TestVerticalMoveClampsColumn(t *testing.T) {
	v := newView("long line", "ab")
	v.ColNum = 9
	v.CursorDown()
	if v.LineNum != 1 || v.ColNum != 2 {
		t.Fatalf("got (%d,%d), want (1,2)", v.LineNum, v.ColNum)
	}
	v.CursorDown()
	if v.LineNum != 1 {
		t.Fatalf("moved past last line")
	}
	v.CursorUp()
	v.CursorUp()
	if v.LineNum != 0 || v.ColNum != 2 {
		t.Fatalf("got (%d,%d), want (0,2)", v.LineNum, v.ColNum)
	}
}

func TestFixOrder(t *testing.T) {
	v := newView("abcdef", "x")
	v.LineNum = 7
	v.ColNum = 5
	v.Fix()
	if v.LineNum != 1 || v.ColNum != 1 {
		t.Fatalf("got (%d,%d), want (1,1)", v.LineNum, v.ColNum)
	}
}

func TestEdits(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		line     int
		col      int
		op       func(v *Viewport)
		want     []string
		wantLine int
		wantCol  int
	}{
		{"open above", []string{"a", "b"}, 1, 1, (*Viewport).OpenLineAbove, []string{"a", "", "b"}, 1, 0},
		{"open below", []string{"a", "b"}, 0, 1, (*Viewport).OpenLineBelow, []string{"a", "", "b"}, 1, 0},
		{"open below last", []string{"a"}, 0, 0, (*Viewport).OpenLineBelow, []string{"a", ""}, 1, 0},
		{"delete middle", []string{"a", "bb", "c"}, 1, 2, (*Viewport).DeleteLine, []string{"a", "c"}, 1, 1},
		{"delete last", []string{"a", "bb"}, 1, 0, (*Viewport).DeleteLine, []string{"a"}, 0, 0},
		{"backspace byte", []string{"abc"}, 0, 2, (*Viewport).Backspace, []string{"ac"}, 0, 1},
		{"backspace joins", []string{"ab", "cd"}, 1, 0, (*Viewport).Backspace, []string{"abcd"}, 0, 2},
		{"backspace at origin", []string{"ab"}, 0, 0, (*Viewport).Backspace, []string{"ab"}, 0, 0},
		{"insert text", []string{"ad"}, 0, 1, func(v *Viewport) { v.InsertText([]byte("bc")) }, []string{"abcd"}, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(tt.lines...)
			v.LineNum, v.ColNum = tt.line, tt.col
			tt.op(v)
			doc := v.Document()
			if doc.LineCount() != len(tt.want) {
				t.Fatalf("line count %d, want %d", doc.LineCount(), len(tt.want))
			}
			for i, w := range tt.want {
				if got := doc.MustLine(i).String(); got != w {
					t.Fatalf("line %d = %q, want %q", i, got, w)
				}
			}
			if v.LineNum != tt.wantLine || v.ColNum != tt.wantCol {
				t.Fatalf("cursor (%d,%d), want (%d,%d)", v.LineNum, v.ColNum, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestScrollFixFollowsDisplayColumn(t *testing.T) {
	// Four wide glyphs: byte offset 6 sits at display column 4.
	v := newView("\u4E16\u4E16\u4E16\u4E16")
	v.SetScreenSize(5, 4)
	v.ColNum = 6
	v.ScrollFix()
	if v.ColOffset != 1 {
		t.Fatalf("ColOffset=%d, want 1", v.ColOffset)
	}
	x, y := v.CursorScreenPos()
	if x != 3 || y != 0 {
		t.Fatalf("cursor at (%d,%d), want (3,0)", x, y)
	}
	v.ColNum = 0
	v.ScrollFix()
	if v.ColOffset != 0 {
		t.Fatalf("ColOffset=%d after returning home", v.ColOffset)
	}
}

func TestScrollFixVertical(t *testing.T) {
	lines := make([]string, 50)
	v := newView(lines...)
	v.SetScreenSize(10, 80)
	v.LineNum = 25
	v.ScrollFix()
	if v.RowOffset != 16 {
		t.Fatalf("RowOffset=%d, want 16", v.RowOffset)
	}
	v.LineNum = 20
	v.ScrollFix()
	if v.RowOffset != 16 {
		t.Fatalf("RowOffset moved to %d while cursor visible", v.RowOffset)
	}
	v.LineNum = 3
	v.ScrollFix()
	if v.RowOffset != 3 {
		t.Fatalf("RowOffset=%d, want 3", v.RowOffset)
	}
}

func TestSetScreenSizeFloor(t *testing.T) {
	v := newView("abc")
	v.SetScreenSize(0, -3)
	if v.ScreenRows != 1 || v.ScreenCols != 1 {
		t.Fatalf("got %dx%d", v.ScreenRows, v.ScreenCols)
	}
	v.ColNum = 3
	v.ScrollFix()
	if v.ColOffset != 3 {
		t.Fatalf("ColOffset=%d, want 3", v.ColOffset)
	}
}

// Random walks over cursor moves and edits: invariants hold after every
// step, fixes are no-ops on valid state and ScrollFix is idempotent.
func TestRandomWalkInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	glyphs := [][]byte{[]byte("a"), []byte("\t"), []byte("\u4E16"), []byte("e\u0301"), []byte("\U0001F1EB\U0001F1F7")}
	for _, mode := range []uniwidth.Mode{uniwidth.Compat, uniwidth.Modern} {
		v := New(document.New(), uniwidth.New(mode))
		for step := 0; step < 3000; step++ {
			switch rng.Intn(10) {
			case 0:
				v.CursorLeft()
			case 1:
				v.CursorRight()
			case 2:
				v.CursorUp()
			case 3:
				v.CursorDown()
			case 4:
				v.OpenLineAbove()
			case 5:
				v.OpenLineBelow()
			case 6:
				v.DeleteLine()
			case 7:
				v.Backspace()
			default:
				v.InsertText(glyphs[rng.Intn(len(glyphs))])
			}
			checkInvariants(t, v, "step")

			line, col := v.LineNum, v.ColNum
			v.Fix()
			if v.LineNum != line || v.ColNum != col {
				t.Fatalf("Fix changed valid state (%d,%d) -> (%d,%d)", line, col, v.LineNum, v.ColNum)
			}

			v.SetScreenSize(rng.Intn(12)+1, rng.Intn(20)+1)
			v.ScrollFix()
			ro, co := v.RowOffset, v.ColOffset
			v.ScrollFix()
			if v.RowOffset != ro || v.ColOffset != co {
				t.Fatalf("ScrollFix not idempotent: (%d,%d) -> (%d,%d)", ro, co, v.RowOffset, v.ColOffset)
			}
			x, y := v.CursorScreenPos()
			if x < 0 || x >= v.ScreenCols || y < 0 || y >= v.ScreenRows {
				t.Fatalf("cursor (%d,%d) outside %dx%d window", x, y, v.ScreenCols, v.ScreenRows)
			}
		}
	}
}
