// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/renderer.go
// Summary: Turns one line of bytes into a row of Cells clipped to the visible window.
// Usage: Called per screen row by the editor with the viewport's column offset.

package render

import "github.com/framegrace/texedit/uniwidth"

// Renderer walks lines cluster by cluster using the session's width engine.
type Renderer struct {
	Engine uniwidth.Engine
	Pool   *TextPool
}

// NewRenderer returns a renderer writing overflow text into pool.
func NewRenderer(engine uniwidth.Engine, pool *TextPool) *Renderer {
	if pool == nil {
		pool = NewTextPool()
	}
	return &Renderer{Engine: engine, Pool: pool}
}

// Render appends to dst[:0] the cells of line visible in the window that
// starts at display column scroll and is cols wide. The widths of the
// returned cells never add up to more than cols.
func (r *Renderer) Render(dst []Cell, line []byte, scroll, cols int) []Cell {
	dst = dst[:0]
	if cols <= 0 {
		return dst
	}
	if scroll < 0 {
		scroll = 0
	}

	vx := 0
	for i := 0; i < len(line); {
		n := r.Engine.ClusterLen(line[i:])
		cluster := line[i : i+n]
		w := r.Engine.Width(cluster, vx)
		i += n

		if vx < scroll {
			if vx+w <= scroll {
				vx += w
				continue
			}
			// Straddles the scroll offset.
			visible := vx + w - scroll
			if visible > cols {
				visible = cols
			}
			dst = r.emit(dst, cluster, visible, TruncLeft)
			vx += w
			if visible == cols {
				break
			}
			continue
		}

		col := vx - scroll
		if col >= cols {
			break
		}
		if col+w > cols {
			dst = r.emit(dst, cluster, cols-col, TruncRight)
			break
		}
		dst = r.emit(dst, cluster, w, TruncNone)
		vx += w
	}
	return dst
}

func (r *Renderer) emit(dst []Cell, cluster []byte, width int, trunc Trunc) []Cell {
	var c Cell
	c.Width = width
	c.Trunc = trunc
	c.SetText(cluster, r.Pool)
	return append(dst, c)
}

// Width sums the widths of cells.
func Width(cells []Cell) int {
	w := 0
	for i := range cells {
		w += cells[i].Width
	}
	return w
}
