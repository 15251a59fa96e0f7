// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/tty.go
// Summary: Opens the controlling terminal and assembles an ANSI backend over it.
// Usage: cmd/texedit calls OpenTTY once at startup; Fini on the returned
// backend restores the terminal and closes the device.

package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/framegrace/texedit/probe"
	"github.com/framegrace/texedit/uniwidth"
)

const (
	DefaultTTYPath = "/dev/tty"

	fallbackRows = 24
	fallbackCols = 80
)

// TTYOptions configures OpenTTY.
type TTYOptions struct {
	Path string
	// Detect runs the capability probe; otherwise Mode is used as is.
	Detect bool
	Mode   uniwidth.Mode
	// ProbeBudget bounds the whole probe. Zero means the default 10x10ms.
	ProbeBudget time.Duration
}

// OpenTTY opens the terminal, switches it to raw mode, sizes it and settles
// the rendering mode. On error nothing is left acquired.
func OpenTTY(ctx context.Context, opts TTYOptions) (*ANSI, error) {
	path := opts.Path
	if path == "" {
		path = DefaultTTYPath
	}
	// os.OpenFile keeps the descriptor in the runtime poller so the probe
	// can use read deadlines.
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !IsTerminal(f) {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotTerminal)
	}

	raw, err := EnableRaw(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	rows, cols, err := WindowSize(f)
	if err != nil {
		log.Printf("Driver: %v, assuming %dx%d", err, fallbackCols, fallbackRows)
		rows, cols = fallbackRows, fallbackCols
	}

	mode := opts.Mode
	var stray []byte
	if opts.Detect {
		res, err := probe.Detect(ctx, f, probe.WithBudget(opts.ProbeBudget))
		switch {
		case err == nil:
			log.Printf("Driver: probe answered at %d;%d, %s mode", res.Row, res.Col, res.Mode)
		case errors.Is(err, probe.ErrNoResponse):
		default:
			log.Printf("Driver: probe failed: %v", err)
		}
		mode = res.Mode
		stray = res.Stray
	}
	if len(stray) > 0 {
		log.Printf("Driver: %d byte(s) arrived during the probe: %q", len(stray), stray)
	}

	return NewANSI(f, NewInput(f, stray), ANSIOptions{
		Mode:    mode,
		Rows:    rows,
		Cols:    cols,
		Size:    func() (int, int, error) { return WindowSize(f) },
		Restore: raw.Restore,
		Closer:  f,
	}), nil
}
