// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: uniwidth/classify.go
// Summary: Codepoint classes the width rules key on, plus the generic wcwidth.
// Notes: Generic width comes from go-runewidth with East Asian ambiguous
// characters treated as narrow, so results do not depend on the locale.

package uniwidth

import (
	"fmt"
	"math/bits"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	VS16 = '\uFE0F'
	ZWJ  = '\u200D'
)

var generic = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Decode returns the first codepoint of b. Invalid or truncated sequences
// decode as U+FFFD with size 1 so callers always make progress.
func Decode(b []byte) (rune, int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(b)
}

// GenericWidth is the plain wcwidth of r: -1 for C0/C1 controls and DEL,
// otherwise the East Asian width classification (0 for marks and format
// characters).
func GenericWidth(r rune) int {
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		return -1
	}
	return generic.RuneWidth(r)
}

func IsRegionalIndicator(r rune) bool { return r >= 0x1F1E6 && r <= 0x1F1FF }

// IsSkinTone reports the Fitzpatrick emoji modifiers.
func IsSkinTone(r rune) bool { return r >= 0x1F3FB && r <= 0x1F3FF }

func IsVariationSelector(r rune) bool { return r >= 0xFE00 && r <= 0xFE0F }

// IsCombining reports whether r is a mark (general category M).
func IsCombining(r rune) bool { return unicode.Is(unicode.M, r) }

// isEmojiBase reports codepoints that switch to emoji presentation when
// followed by VS16.
func isEmojiBase(r rune) bool {
	return (r >= 0x203C && r <= 0x3299) || r >= 0x1F000
}

// HexTag is the placeholder drawn for codepoints a legacy terminal cannot
// render, e.g. "<200b>".
func HexTag(r rune) string { return fmt.Sprintf("<%x>", r) }

// HexTagWidth is len(HexTag(r)) without formatting.
func HexTagWidth(r rune) int {
	digits := 1
	if r > 0 {
		digits = (bits.Len32(uint32(r)) + 3) / 4
	}
	return digits + 2
}
