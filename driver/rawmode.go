// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/rawmode.go
// Summary: Raw terminal mode, tty detection and window size for an open tty.
// Notes: File descriptors are reached through SyscallConn rather than Fd so
// the file stays in non-blocking mode and read deadlines keep working for
// the capability probe.

package driver

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

func withFd(f *os.File, fn func(fd uintptr)) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}
	return rc.Control(fn)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	ok := false
	if err := withFd(f, func(fd uintptr) {
		ok = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}); err != nil {
		return false
	}
	return ok
}

// WindowSize returns the rows and columns of the terminal behind f.
func WindowSize(f *os.File) (rows, cols int, err error) {
	var w, h int
	cerr := withFd(f, func(fd uintptr) {
		w, h, err = term.GetSize(int(fd))
	})
	if cerr != nil {
		return 0, 0, cerr
	}
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}
	return h, w, nil
}

// RawMode remembers the terminal state to restore once raw mode ends.
type RawMode struct {
	file  *os.File
	state *term.State
}

// EnableRaw switches f into raw mode.
func EnableRaw(f *os.File) (*RawMode, error) {
	if !IsTerminal(f) {
		return nil, ErrNotTerminal
	}
	var (
		state *term.State
		err   error
	)
	if cerr := withFd(f, func(fd uintptr) {
		state, err = term.MakeRaw(int(fd))
	}); cerr != nil {
		return nil, fmt.Errorf("raw mode: %w", cerr)
	}
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	return &RawMode{file: f, state: state}, nil
}

// Restore puts the terminal back the way EnableRaw found it. Calls after the
// first are no-ops.
func (r *RawMode) Restore() error {
	if r == nil || r.state == nil {
		return nil
	}
	state := r.state
	r.state = nil
	var err error
	if cerr := withFd(r.file, func(fd uintptr) {
		err = term.Restore(int(fd), state)
	}); cerr != nil {
		err = cerr
	}
	if err != nil {
		log.Printf("Driver: restore terminal: %v", err)
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}
