// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: probe/probe.go
// Summary: Startup round-trip that tells modern terminals from legacy ones.
// Usage: Called once after raw mode is enabled and before the first input read.
// Notes: Prints a heart+VS16 glyph, asks for the cursor position and checks
// how far the cursor advanced. The result is fixed for the session.

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/framegrace/texedit/uniwidth"
)

// Sequence is written in one piece: return to column 1, draw the probe
// glyph, request a cursor position report, then erase the line again.
const Sequence = "\r\u2764\uFE0F\x1b[6n\r\x1b[K"

// ExpectedWidth is the width a modern terminal gives the probe glyph.
const ExpectedWidth = 2

// ErrNoResponse means the terminal never answered the position request.
var ErrNoResponse = errors.New("probe: no cursor position report")

// Port is the terminal the probe talks to. *os.File opened on /dev/tty
// satisfies it as long as its descriptor stays in non-blocking mode.
type Port interface {
	io.ReadWriter
	SetReadDeadline(t time.Time) error
}

// Options bounds the polling loop.
type Options struct {
	Attempts      int
	Interval      time.Duration
	ExpectedWidth int
}

// DefaultOptions polls ten times for 10ms each.
func DefaultOptions() Options {
	return Options{Attempts: 10, Interval: 10 * time.Millisecond, ExpectedWidth: ExpectedWidth}
}

// WithBudget spreads a total time budget over 10ms polls.
func WithBudget(total time.Duration) Options {
	opts := DefaultOptions()
	if total <= 0 {
		return opts
	}
	opts.Attempts = int(total / opts.Interval)
	if opts.Attempts < 1 {
		opts.Attempts = 1
		opts.Interval = total
	}
	return opts
}

// Result is the outcome of a probe.
type Result struct {
	Mode     uniwidth.Mode
	Answered bool
	Row, Col int
	// Stray holds bytes that arrived during the probe but are not part of
	// the report, typically keys typed while the editor was starting.
	Stray []byte
}

// Detect runs the probe against port. When the terminal stays silent the
// result selects compat mode and the error is ErrNoResponse.
func Detect(ctx context.Context, port Port, opts Options) (Result, error) {
	if opts.Attempts <= 0 || opts.Interval <= 0 {
		opts = DefaultOptions()
	}
	if opts.ExpectedWidth <= 0 {
		opts.ExpectedWidth = ExpectedWidth
	}
	if _, err := io.WriteString(port, Sequence); err != nil {
		return Result{Mode: uniwidth.Compat}, fmt.Errorf("probe: write: %w", err)
	}
	defer port.SetReadDeadline(time.Time{})

	buf := make([]byte, 0, 256)
	chunk := make([]byte, 128)
	// A report cut off by the budget gets up to Attempts more polls so its
	// tail is not read later as typed input.
	for i := 0; i < opts.Attempts || (i < 2*opts.Attempts && partialCPR(buf) >= 0); i++ {
		select {
		case <-ctx.Done():
			res := ParseResponse(buf, opts.ExpectedWidth)
			return res, ctx.Err()
		default:
		}

		deadline := time.Now().Add(opts.Interval)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		if err := port.SetReadDeadline(deadline); err != nil {
			return Result{Mode: uniwidth.Compat}, fmt.Errorf("probe: set deadline: %w", err)
		}

		n, err := port.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if res := ParseResponse(buf, opts.ExpectedWidth); res.Answered {
				return res, nil
			}
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return ParseResponse(buf, opts.ExpectedWidth), fmt.Errorf("probe: read: %w", err)
		}
	}

	res := ParseResponse(buf, opts.ExpectedWidth)
	if !res.Answered {
		log.Printf("Probe: no reply after %d polls, assuming legacy terminal", opts.Attempts)
		return res, ErrNoResponse
	}
	return res, nil
}

// ParseResponse extracts the first "ESC [ row ; col R" report from buf.
// A column past expectedWidth means the glyph took two cells.
func ParseResponse(buf []byte, expectedWidth int) Result {
	res := Result{Mode: uniwidth.Compat}
	for i := 0; i < len(buf); {
		if !res.Answered {
			if row, col, n, ok := parseCPR(buf[i:]); ok {
				res.Answered, res.Row, res.Col = true, row, col
				if col > expectedWidth {
					res.Mode = uniwidth.Modern
				}
				i += n
				continue
			}
		}
		res.Stray = append(res.Stray, buf[i])
		i++
	}
	if !res.Answered {
		if at := partialCPR(res.Stray); at >= 0 {
			res.Stray = res.Stray[:at]
		}
	}
	return res
}

// partialCPR returns where an unfinished "ESC [ row ; col" report starts at
// the end of b, or -1.
func partialCPR(b []byte) int {
	at := bytes.LastIndexByte(b, 0x1b)
	if at < 0 {
		return -1
	}
	tail := b[at+1:]
	if len(tail) == 0 {
		return at
	}
	if tail[0] != '[' {
		return -1
	}
	semis := 0
	for _, c := range tail[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c == ';' && semis == 0:
			semis++
		default:
			return -1
		}
	}
	return at
}

// parseCPR matches a cursor position report at the start of b and returns
// its length.
func parseCPR(b []byte) (row, col, n int, ok bool) {
	if len(b) < 2 || b[0] != 0x1b || b[1] != '[' {
		return 0, 0, 0, false
	}
	params := make([]int, 1, 2)
	digits := false
	for i := 2; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			params[len(params)-1] = params[len(params)-1]*10 + int(c-'0')
			digits = true
		case c == ';':
			if !digits || len(params) == 2 {
				return 0, 0, 0, false
			}
			params = append(params, 0)
			digits = false
		case c == 'R':
			if len(params) != 2 || !digits {
				return 0, 0, 0, false
			}
			return params[0], params[1], i + 1, true
		default:
			return 0, 0, 0, false
		}
	}
	return 0, 0, 0, false
}
