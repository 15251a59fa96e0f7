// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/pool.go
// Summary: Append-only arena for cluster text too long to sit inside a Cell.

package render

import (
	"fmt"

	"github.com/framegrace/texedit/internal/growbuf"
)

const poolMinCap = 1024

// TextPool hands out stable offsets into a single growing byte arena. It is
// never compacted; Reset drops everything at once.
type TextPool struct {
	data *growbuf.Buffer[byte]
}

func NewTextPool() *TextPool {
	return &TextPool{data: growbuf.New[byte](poolMinCap)}
}

// Append copies text into the arena and returns its offset.
func (p *TextPool) Append(text []byte) uint32 {
	idx := p.data.Len()
	if uint64(idx)+uint64(len(text)) > 1<<32-1 {
		panic("render: text pool exceeds 4GiB")
	}
	p.data.Append(text...)
	return uint32(idx)
}

// Bytes returns the n bytes stored at idx.
func (p *TextPool) Bytes(idx uint32, n int) []byte {
	end := int(idx) + n
	if n < 0 || end > p.data.Len() {
		panic(fmt.Sprintf("render: pool read [%d, %d) past length %d", idx, end, p.data.Len()))
	}
	return p.data.Slice()[idx:end:end]
}

func (p *TextPool) Len() int { return p.data.Len() }
func (p *TextPool) Cap() int { return p.data.Cap() }

// Reset forgets every stored cluster. Offsets handed out before the call
// must not be used afterwards.
func (p *TextPool) Reset() { p.data.Reset() }
