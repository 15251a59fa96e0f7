// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/cell.go
// Summary: One terminal grid position worth of text plus its width and clipping state.
// Notes: Text is either stored inline or referenced in the TextPool; the
// variant is explicit and checked when read.

package render

import "fmt"

// InlineThreshold is the largest cluster, in bytes, kept inside a Cell.
const InlineThreshold = 8

// Trunc records whether a wide cluster was clipped by a screen edge.
type Trunc uint8

const (
	TruncNone Trunc = iota
	// TruncLeft marks a cluster cut by the horizontal scroll offset.
	TruncLeft
	// TruncRight marks a cluster cut by the right screen edge.
	TruncRight
)

func (t Trunc) String() string {
	switch t {
	case TruncNone:
		return "none"
	case TruncLeft:
		return "left"
	case TruncRight:
		return "right"
	}
	return fmt.Sprintf("Trunc(%d)", uint8(t))
}

type storage uint8

const (
	storeInline storage = iota
	storePooled
)

// Cell is the unit the renderer produces and the driver paints.
type Cell struct {
	Width int
	Trunc Trunc

	kind    storage
	n       uint32
	inline  [InlineThreshold]byte
	poolIdx uint32
}

// Len is the byte length of the cell's text.
func (c *Cell) Len() int { return int(c.n) }

// Pooled reports whether the text lives in a TextPool.
func (c *Cell) Pooled() bool { return c.kind == storePooled }

// PoolIndex returns the pool offset of pooled text.
func (c *Cell) PoolIndex() (uint32, bool) {
	if c.kind != storePooled {
		return 0, false
	}
	return c.poolIdx, true
}

// SetText stores text inline when it fits and appends it to pool otherwise.
func (c *Cell) SetText(text []byte, pool *TextPool) {
	c.n = uint32(len(text))
	if len(text) <= InlineThreshold {
		c.kind = storeInline
		c.poolIdx = 0
		copy(c.inline[:], text)
		return
	}
	if pool == nil {
		panic("render: cluster exceeds inline storage and no text pool was given")
	}
	c.kind = storePooled
	c.poolIdx = pool.Append(text)
}

// Text returns the cell's bytes. pool may be nil for inline cells.
func (c *Cell) Text(pool *TextPool) []byte {
	switch c.kind {
	case storeInline:
		return c.inline[:c.n]
	case storePooled:
		if pool == nil {
			panic("render: pooled cell read without its text pool")
		}
		return pool.Bytes(c.poolIdx, int(c.n))
	}
	panic(fmt.Sprintf("render: corrupt cell storage %d", c.kind))
}
