// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/paniclog/paniclog.go
// Summary: Captures panics, puts the terminal back and records the stack.
// Usage: Deferred at the top of main with the backend's Fini as restore hook.

package paniclog

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"time"
)

// Logger captures panic stack traces and optionally persists them to disk.
type Logger struct {
	path    string
	restore func()
	mu      sync.Mutex

	// Overridable in tests.
	stderr io.Writer
	exit   func(code int)
}

// New returns a logger appending to path when it is non-empty. restore, if
// set, runs before anything is printed so the report lands on a sane screen.
func New(path string, restore func()) *Logger {
	return &Logger{path: path, restore: restore, stderr: os.Stderr, exit: os.Exit}
}

// SetRestore replaces the restore hook once the terminal has been acquired.
func (p *Logger) SetRestore(restore func()) {
	p.mu.Lock()
	p.restore = restore
	p.mu.Unlock()
}

// Recover must be deferred directly. A recovered panic exits the process
// with status 2.
func (p *Logger) Recover(context string) {
	if r := recover(); r != nil {
		p.handle(context, r)
		p.exit(2)
	}
}

func (p *Logger) handle(context string, r any) {
	p.mu.Lock()
	restore := p.restore
	p.restore = nil
	p.mu.Unlock()
	if restore != nil {
		restore()
	}

	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, false)
	stack := buf[:n]
	msg := fmt.Sprintf("panic in %s: %v\n%s", context, r, stack)
	log.Print(msg)
	fmt.Fprintln(p.stderr, msg)
	if p.path == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("panic: unable to write panic log: %v", err)
		return
	}
	defer f.Close()
	ts := time.Now().Format(time.RFC3339Nano)
	fmt.Fprintf(f, "[%s] panic in %s: %v\n%s\n", ts, context, r, stack)
}
