// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: uniwidth/engine.go
// Summary: Display-width computation and cluster stepping for both rendering modes.
// Usage: The renderer asks ClusterLen for the next unit and Width for its columns;
// the viewport uses Width to turn a byte offset into a display column.

package uniwidth

import "github.com/rivo/uniseg"

const DefaultTabStop = 8

// Engine computes terminal display widths under one Mode.
type Engine struct {
	Mode    Mode
	TabStop int
}

// New returns an engine with the default tab stop.
func New(mode Mode) Engine {
	return Engine{Mode: mode, TabStop: DefaultTabStop}
}

func (e Engine) tabStop() int {
	if e.TabStop <= 0 {
		return DefaultTabStop
	}
	return e.TabStop
}

// Width returns the number of columns span occupies when drawn starting at
// display column x.
func (e Engine) Width(span []byte, x int) int {
	w := 0
	for i := 0; i < len(span); {
		r, n := Decode(span[i:])
		i += n
		if r == '\t' {
			ts := e.tabStop()
			w += ts - (x+w)%ts
			continue
		}
		next := rune(-1)
		if i < len(span) {
			next, _ = Decode(span[i:])
		}
		w += e.RuneWidth(r, next)
	}
	return w
}

// RuneWidth is the width of a single non-tab codepoint given the codepoint
// that follows it (-1 when r ends the span).
func (e Engine) RuneWidth(r, next rune) int {
	wc := -1
	switch {
	case e.Mode == Compat && IsRegionalIndicator(r):
		wc = 2
	case e.Mode == Modern && IsSkinTone(r):
		wc = 0
	case next == VS16 && isEmojiBase(r):
		wc = 2
	}
	if wc < 0 {
		wc = GenericWidth(r)
	}
	if wc > 0 {
		return wc
	}
	if e.Mode == Compat && !IsCombining(r) {
		return HexTagWidth(r)
	}
	return 0
}

// ClusterLen returns the byte length of the first renderable unit in b.
// Modern mode follows Unicode grapheme segmentation. Compat mode splits
// where legacy terminals advance the cursor: each codepoint with a positive
// width starts a unit and zero-width joiners stand alone.
func (e Engine) ClusterLen(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	if e.Mode == Modern {
		cluster, _, _, _ := uniseg.FirstGraphemeCluster(b, -1)
		if len(cluster) == 0 {
			return 1
		}
		return len(cluster)
	}
	return compatClusterLen(b)
}

func compatClusterLen(b []byte) int {
	r, i := Decode(b)
	if r == ZWJ {
		return i
	}
	for i < len(b) {
		r, n := Decode(b[i:])
		if r == ZWJ || GenericWidth(r) != 0 {
			break
		}
		i += n
	}
	return i
}

// ColumnOf returns the display column of byte offset idx in line.
func (e Engine) ColumnOf(line []byte, idx int) int {
	if idx > len(line) {
		idx = len(line)
	}
	if idx <= 0 {
		return 0
	}
	return e.Width(line[:idx], 0)
}
