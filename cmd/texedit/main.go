// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texedit/main.go
// Summary: Entry point for the texedit terminal editor.
// Usage: texedit [-mode auto|modern|compat] [-backend ansi|tcell] [file]

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texedit/document"
	"github.com/framegrace/texedit/driver"
	"github.com/framegrace/texedit/editor"
	"github.com/framegrace/texedit/internal/paniclog"
	"github.com/framegrace/texedit/uniwidth"
)

var errUsage = errors.New("usage: texedit [flags] [file]")

// Options collects the command line.
type Options struct {
	Mode         string
	Backend      string
	LogPath      string
	PanicLog     string
	ProbeTimeout time.Duration
	File         string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(args []string, output io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("texedit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.Mode, "mode", "auto", "Rendering mode: auto (probe the terminal), modern or compat")
	fs.StringVar(&opts.Backend, "backend", "ansi", "Terminal backend: ansi or tcell")
	fs.StringVar(&opts.LogPath, "log", "", "Log file (default: $XDG_CACHE_HOME/texedit/texedit.log)")
	fs.StringVar(&opts.PanicLog, "panic-log", "", "File to append panic stack traces (default: $XDG_CACHE_HOME/texedit/panic.log)")
	fs.DurationVar(&opts.ProbeTimeout, "probe-timeout", 100*time.Millisecond, "Total time to wait for the terminal to answer the width probe")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.File = fs.Arg(0)
	default:
		return opts, errUsage
	}
	if opts.Mode != "auto" {
		if _, err := uniwidth.ParseMode(opts.Mode); err != nil {
			return opts, err
		}
	}
	if opts.Backend != "ansi" && opts.Backend != "tcell" {
		return opts, fmt.Errorf("unknown backend %q", opts.Backend)
	}
	return opts, nil
}

func run(args []string) error {
	opts, err := parseOptions(args, os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if paths, err := GetPaths(); err == nil {
		if opts.LogPath == "" {
			opts.LogPath = paths.LogPath
		}
		if opts.PanicLog == "" {
			opts.PanicLog = paths.PanicLogPath
		}
		if err := paths.EnsureCacheDir(); err != nil {
			fmt.Fprintf(os.Stderr, "create cache directory: %v\n", err)
		}
	}
	logFile, err := setupLogging(opts.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	} else {
		defer logFile.Close()
	}

	panics := paniclog.New(opts.PanicLog, nil)
	defer panics.Recover("texedit")

	doc := document.New()
	if opts.File != "" {
		doc, err = document.Open(opts.File)
		if err != nil {
			log.Printf("Editor: %v", err)
			fmt.Fprintln(os.Stderr, err)
		}
	}

	backend, err := openBackend(opts)
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	panics.SetRestore(backend.Fini)
	defer backend.Fini()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)
	go func() {
		if sig, ok := <-sigs; ok {
			log.Printf("Editor: %v, restoring terminal", sig)
			backend.RestoreTerminal()
			os.Exit(1)
		}
	}()

	return editor.New(backend, doc).Run()
}

func openBackend(opts Options) (driver.Backend, error) {
	if opts.Backend == "tcell" {
		if opts.Mode != "auto" {
			log.Printf("Driver: tcell backend ignores -mode %s", opts.Mode)
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		return driver.NewTcell(screen), nil
	}

	ttyOpts := driver.TTYOptions{Detect: opts.Mode == "auto", ProbeBudget: opts.ProbeTimeout}
	if !ttyOpts.Detect {
		mode, err := uniwidth.ParseMode(opts.Mode)
		if err != nil {
			return nil, err
		}
		ttyOpts.Mode = mode
	}
	ctx, cancel := context.WithTimeout(context.Background(), opts.ProbeTimeout+time.Second)
	defer cancel()
	tty, err := driver.OpenTTY(ctx, ttyOpts)
	if err != nil {
		return nil, err
	}
	return tty, nil
}

func setupLogging(path string) (*os.File, error) {
	if path == "" {
		return nil, errors.New("no log path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
