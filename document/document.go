// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: document/document.go
// Summary: Ordered collection of lines that never drops below one line.
// Usage: Created empty or loaded from a file, then bound to a view.Viewport.

package document

import (
	"github.com/framegrace/texedit/internal/growbuf"
)

const linesMinCap = 64

// Document owns an ordered sequence of lines. It always holds at least one.
type Document struct {
	lines    *growbuf.Buffer[*Line]
	fileName string
	fileSize int
}

// New returns a document with a single empty line.
func New() *Document {
	d := &Document{lines: growbuf.New[*Line](linesMinCap)}
	d.lines.Append(NewLine(""))
	return d
}

// FromLines builds a document from already split lines. An empty slice
// yields a single empty line.
func FromLines(lines []string) *Document {
	d := &Document{lines: growbuf.New[*Line](linesMinCap)}
	for _, s := range lines {
		d.lines.Append(NewLine(s))
	}
	if d.lines.Len() == 0 {
		d.lines.Append(NewLine(""))
	}
	return d
}

// FileName is the path the document was created from, if any.
func (d *Document) FileName() string { return d.fileName }

// FileSize is the number of bytes read when the document was loaded.
func (d *Document) FileSize() int { return d.fileSize }

func (d *Document) LineCount() int { return d.lines.Len() }

// Line returns the line at index, or false when index is past either end.
func (d *Document) Line(index int) (*Line, bool) {
	if index < 0 || index >= d.lines.Len() {
		return nil, false
	}
	return d.lines.At(index), true
}

// MustLine returns the line at index and panics when it does not exist.
func (d *Document) MustLine(index int) *Line {
	l, ok := d.Line(index)
	if !ok {
		panic(&InvariantError{Op: "Line", Index: index, Length: d.lines.Len()})
	}
	return l
}

// InsertLine places line before index; index may equal LineCount to append.
func (d *Document) InsertLine(index int, line *Line) {
	if index < 0 || index > d.lines.Len() {
		panic(&InvariantError{Op: "InsertLine", Index: index, Count: 1, Length: d.lines.Len()})
	}
	if line == nil {
		line = NewLine("")
	}
	d.lines.Insert(index, line)
}

// DeleteLines removes up to count lines starting at index. When the removal
// would leave the document empty the first line is kept and cleared.
func (d *Document) DeleteLines(index, count int) {
	total := d.lines.Len()
	if index < 0 || index >= total {
		panic(&InvariantError{Op: "DeleteLines", Index: index, Count: count, Length: total})
	}
	if count <= 0 {
		return
	}
	if rem := total - index; count > rem {
		count = rem
	}
	if count == total {
		keep := d.lines.At(0)
		keep.Clear()
		d.lines.Delete(1, total-1)
		return
	}
	d.lines.Delete(index, count)
}
