// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/compat.go
// Summary: Cell painting for terminals whose glyph widths disagree with Unicode.
// Notes: Invisible codepoints become highlighted <hex> tags. Clusters that
// legacy terminals tend to mis-advance over are pre-erased, padded to their
// declared width and followed by an absolute cursor move.

package driver

import (
	"github.com/framegrace/texedit/render"
	"github.com/framegrace/texedit/uniwidth"
)

func (a *ANSI) drawCompat(x, y int, cells []render.Cell) {
	a.MoveCursor(x, y)
	for i := range cells {
		c := &cells[i]
		text := c.Text(a.pool)
		risky := desyncRisk(c, text)
		if risky && c.Width > 0 {
			a.printf("\x1b[%dX", c.Width)
		}

		w := a.compatCell(x, c, text)
		for w < c.Width && x+w < a.cols {
			a.frame.Append(' ')
			w++
		}
		x += w

		if risky && x < a.cols {
			a.MoveCursor(x, y)
		}
	}
	if x < a.cols {
		a.write(seqClearRight)
	}
}

// desyncRisk reports clusters whose on-screen advance a legacy terminal may
// get wrong: anything made of several codepoints and regional indicators.
func desyncRisk(c *render.Cell, text []byte) bool {
	if c.Trunc != render.TruncNone || len(text) == 0 {
		return false
	}
	r, n := uniwidth.Decode(text)
	return uniwidth.IsRegionalIndicator(r) || n < len(text)
}

// compatCell writes one cell starting at screen column x and returns the
// number of columns actually produced.
func (a *ANSI) compatCell(x int, c *render.Cell, text []byte) int {
	w, o := 0, 0
	for o < len(text) && w < c.Width {
		r, n := uniwidth.Decode(text[o:])
		if r == '\t' {
			a.spaces(c.Width - w)
			return c.Width
		}

		cw := uniwidth.GenericWidth(r)
		if cw <= 0 && !uniwidth.IsCombining(r) && !uniwidth.IsVariationSelector(r) && !uniwidth.IsSkinTone(r) {
			return w + a.hexTag(x+w, c, text[o:], r, c.Width-w)
		}
		if cw <= 0 {
			a.frame.Append(text[o : o+n]...)
			o += n
			continue
		}

		switch c.Trunc {
		case render.TruncLeft:
			a.marker('<', c.Width-w)
			return c.Width
		case render.TruncRight:
			a.marker('>', c.Width-w)
			return c.Width
		}

		if x+w+cw > a.cols {
			break
		}
		a.frame.Append(text[o : o+n]...)
		o += n
		w += cw
	}
	return w
}

// hexTag draws the <hex> placeholder for r in at most room columns. A tag cut
// by the scroll offset shows its right-hand part.
func (a *ANSI) hexTag(x int, c *render.Cell, rest []byte, r rune, room int) int {
	tag := uniwidth.HexTag(r)
	off := 0
	if c.Trunc == render.TruncLeft {
		off = max(a.engine.Width(rest, 0)-room, 0)
		off = min(off, len(tag))
	}
	a.write(seqTagOn)
	w := 0
	for j := off; j < len(tag) && w < room && x+w < a.cols; j++ {
		a.frame.Append(tag[j])
		w++
	}
	a.write(seqAttrReset)
	return w
}
