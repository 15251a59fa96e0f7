// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: uniwidth/engine_test.go
// Summary: Width and cluster rules for modern and legacy terminals.

package uniwidth

import (
	"testing"
)

const (
	flagFR     = "\U0001F1EB\U0001F1F7"
	heartVS16  = "\u2764\uFE0F"
	thumbsTone = "\U0001F44D\U0001F3FD"
	family     = "\U0001F469\u200D\U0001F467"
)

func TestTabWidth(t *testing.T) {
	for _, mode := range []Mode{Compat, Modern} {
		e := New(mode)
		for x := 0; x < 8; x++ {
			if got := e.Width([]byte("\t"), x); got != 8-x {
				t.Fatalf("%s: width(tab, x=%d)=%d, want %d", mode, x, got, 8-x)
			}
		}
		if got := e.Width([]byte("\t"), 13); got != 3 {
			t.Fatalf("%s: width(tab, x=13)=%d, want 3", mode, got)
		}
		// The second tab starts at column 8 after "a\t".
		if got := e.Width([]byte("a\t\tb"), 0); got != 17 {
			t.Fatalf("%s: width(a\\t\\tb)=%d, want 17", mode, got)
		}
	}
}

func TestCustomTabStop(t *testing.T) {
	e := Engine{Mode: Modern, TabStop: 4}
	if got := e.Width([]byte("ab\t"), 0); got != 4 {
		t.Fatalf("width=%d, want 4", got)
	}
	e.TabStop = 0
	if got := e.Width([]byte("\t"), 0); got != DefaultTabStop {
		t.Fatalf("zero tab stop should fall back to default, got %d", got)
	}
}

func TestWidthRules(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		compat int
		modern int
	}{
		{"ascii", "hello", 5, 5},
		{"cjk", "\u4E16\u754C", 4, 4},
		{"combining acute", "e\u0301", 1, 1},
		{"heart with vs16", heartVS16, 2, 2},
		{"trademark with vs16", "\u2122\uFE0F", 2, 2},
		{"wide emoji with vs16", "\U0001F600\uFE0F", 2, 2},
		{"digit with vs16 stays narrow", "1\uFE0F", 1, 1},
		{"skin tone modifier", thumbsTone, 4, 2},
		{"zero width space", "\u200B", HexTagWidth(0x200B), 0},
		{"control byte", "\x01", 3, 0},
		{"invalid byte", "\xff", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(Compat).Width([]byte(tt.text), 0); got != tt.compat {
				t.Errorf("compat width=%d, want %d", got, tt.compat)
			}
			if got := New(Modern).Width([]byte(tt.text), 0); got != tt.modern {
				t.Errorf("modern width=%d, want %d", got, tt.modern)
			}
		})
	}
}

func TestRegionalIndicatorPairCompat(t *testing.T) {
	e := New(Compat)
	if got := e.Width([]byte(flagFR), 0); got != 4 {
		t.Fatalf("flag width=%d, want 4", got)
	}
	first := []byte(flagFR)[:4]
	if got := e.Width(first, 0); got != 2 {
		t.Fatalf("single indicator width=%d, want 2", got)
	}
}

func TestVS16OverridesBaseWidth(t *testing.T) {
	bases := []rune{0x203C, 0x2122, 0x2764, 0x3299, 0x1F004, 0x1F600}
	for _, mode := range []Mode{Compat, Modern} {
		e := New(mode)
		for _, r := range bases {
			if got := e.RuneWidth(r, VS16); got != 2 {
				t.Errorf("%s: RuneWidth(%U, VS16)=%d, want 2", mode, r, got)
			}
		}
		if got := e.RuneWidth(0x2764, -1); got != GenericWidth(0x2764) {
			t.Errorf("%s: heart without VS16 should use the generic width, got %d", mode, got)
		}
	}
}

func TestHexTag(t *testing.T) {
	for _, r := range []rune{0, 0x1, 0xF, 0x10, 0x200B, 0xFFFF, 0x10000, 0xE0001} {
		if got, want := HexTagWidth(r), len(HexTag(r)); got != want {
			t.Errorf("HexTagWidth(%U)=%d, len(%q)=%d", r, got, HexTag(r), want)
		}
	}
	if HexTag(0x200B) != "<200b>" {
		t.Fatalf("unexpected tag %q", HexTag(0x200B))
	}
}

func TestClusterLen(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		compat int
		modern int
	}{
		{"ascii", "ab", 1, 1},
		{"combining", "e\u0301x", 3, 3},
		{"flag", flagFR, 4, 8},
		{"family zwj sequence", family, 4, len(family)},
		{"lone zwj", "\u200Da", 3, 3},
		{"heart vs16", heartVS16 + "x", len(heartVS16), len(heartVS16)},
		{"skin tone", thumbsTone, 4, 8},
		{"tab", "\tx", 1, 1},
		{"invalid", "\xffa", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(Compat).ClusterLen([]byte(tt.text)); got != tt.compat {
				t.Errorf("compat=%d, want %d", got, tt.compat)
			}
			if got := New(Modern).ClusterLen([]byte(tt.text)); got != tt.modern {
				t.Errorf("modern=%d, want %d", got, tt.modern)
			}
		})
	}
}

func TestClusterLenCoversInput(t *testing.T) {
	text := []byte("a\te\u0301" + flagFR + family + heartVS16 + "\u4E16\xff\u200B" + thumbsTone)
	for _, mode := range []Mode{Compat, Modern} {
		e := New(mode)
		for i := 0; i < len(text); {
			n := e.ClusterLen(text[i:])
			if n <= 0 {
				t.Fatalf("%s: no progress at byte %d", mode, i)
			}
			i += n
			if i > len(text) {
				t.Fatalf("%s: cluster overran input", mode)
			}
		}
	}
}

func TestColumnOf(t *testing.T) {
	e := New(Modern)
	line := []byte("a\u4E16b")
	cases := []struct{ idx, want int }{{0, 0}, {1, 1}, {4, 3}, {5, 4}, {99, 4}, {-1, 0}}
	for _, c := range cases {
		if got := e.ColumnOf(line, c.idx); got != c.want {
			t.Errorf("ColumnOf(%d)=%d, want %d", c.idx, got, c.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"compat", "legacy", "modern"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("auto"); err == nil {
		t.Errorf("expected error for auto")
	}
}
