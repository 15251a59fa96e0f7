// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: document/line.go
// Summary: A single editable line of bytes with no line terminator.
// Usage: Owned by a Document; mutated through byte-level splices.

package document

import (
	"bytes"
	"fmt"

	"github.com/framegrace/texedit/internal/growbuf"
)

const lineMinCap = 16

// InvariantError reports misuse of the document model. These are
// programming errors and are raised with panic.
type InvariantError struct {
	Op     string
	Index  int
	Count  int
	Length int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("document: %s(index=%d, count=%d) violates bounds of length %d", e.Op, e.Index, e.Count, e.Length)
}

// Line holds the bytes of one line of text.
type Line struct {
	buf *growbuf.Buffer[byte]
}

// NewLine returns a line holding content. content must not contain '\n'.
func NewLine(content string) *Line {
	l := &Line{buf: growbuf.New[byte](lineMinCap)}
	if content != "" {
		l.InsertText(0, []byte(content))
	}
	return l
}

func (l *Line) Len() int { return l.buf.Len() }
func (l *Line) Cap() int { return l.buf.Cap() }

// Bytes returns the live contents; valid until the next mutation.
func (l *Line) Bytes() []byte { return l.buf.Slice() }

func (l *Line) String() string { return string(l.buf.Slice()) }

// InsertText splices text in before byte offset index.
func (l *Line) InsertText(index int, text []byte) {
	if index < 0 || index > l.Len() {
		panic(&InvariantError{Op: "InsertText", Index: index, Count: len(text), Length: l.Len()})
	}
	if bytes.IndexByte(text, '\n') >= 0 {
		panic(&InvariantError{Op: "InsertText(newline)", Index: index, Count: len(text), Length: l.Len()})
	}
	l.buf.Insert(index, text...)
}

// DeleteRange removes count bytes starting at index.
func (l *Line) DeleteRange(index, count int) {
	if index < 0 || index > l.Len() || count < 0 || index+count > l.Len() {
		panic(&InvariantError{Op: "DeleteRange", Index: index, Count: count, Length: l.Len()})
	}
	l.buf.Delete(index, count)
}

// Clear empties the line, keeping its allocation.
func (l *Line) Clear() { l.buf.Reset() }
