// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: uniwidth/mode.go
// Summary: Rendering modes selected once per session by the capability probe.

package uniwidth

import "fmt"

// Mode tells the width engine how far the attached terminal can be trusted
// to follow the Unicode width tables.
type Mode int

const (
	// Compat assumes a legacy terminal: regional indicators are forced wide,
	// skin tones stand alone and unprintable codepoints become hex tags.
	Compat Mode = iota
	// Modern trusts the terminal to fuse emoji sequences itself.
	Modern
)

func (m Mode) String() string {
	switch m {
	case Compat:
		return "compat"
	case Modern:
		return "modern"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names produced by String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "compat", "legacy":
		return Compat, nil
	case "modern":
		return Modern, nil
	}
	return Compat, fmt.Errorf("unknown rendering mode %q", s)
}
