// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texedit/paths.go
// Summary: Standard locations for the editor's log files.

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds standard file paths for texedit
type Paths struct {
	CacheDir     string // $XDG_CACHE_HOME/texedit
	LogPath      string // $XDG_CACHE_HOME/texedit/texedit.log
	PanicLogPath string // $XDG_CACHE_HOME/texedit/panic.log
}

// GetPaths returns the standard paths for texedit files
func GetPaths() (*Paths, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache directory: %w", err)
	}
	dir := filepath.Join(cache, "texedit")
	return &Paths{
		CacheDir:     dir,
		LogPath:      filepath.Join(dir, "texedit.log"),
		PanicLogPath: filepath.Join(dir, "panic.log"),
	}, nil
}

// EnsureCacheDir creates the cache directory if it doesn't exist
func (p *Paths) EnsureCacheDir() error {
	return os.MkdirAll(p.CacheDir, 0o750)
}
