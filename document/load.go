// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: document/load.go
// Summary: Reads a file into a Document, one Line per text line.

package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrLoad marks a file that could not be read. Open still returns a usable
// empty document alongside it.
var ErrLoad = errors.New("cannot load file")

// Read splits r into lines. The trailing "\n" (and a "\r" before it) is
// stripped from each line; a final unterminated line is kept.
func Read(r io.Reader) ([]string, int, error) {
	br := bufio.NewReader(r)
	var lines []string
	size := 0
	for {
		raw, err := br.ReadBytes('\n')
		size += len(raw)
		if len(raw) > 0 {
			text := bytes.TrimSuffix(raw, []byte{'\n'})
			if len(text) < len(raw) {
				text = bytes.TrimSuffix(text, []byte{'\r'})
			}
			lines = append(lines, string(text))
		}
		if err == io.EOF {
			return lines, size, nil
		}
		if err != nil {
			return lines, size, err
		}
	}
}

// Open loads path. When the file cannot be read the returned document is
// empty, still carries the file name, and the error wraps ErrLoad.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		d := New()
		d.fileName = path
		return d, fmt.Errorf("%s: %w: %w", path, ErrLoad, err)
	}
	defer f.Close()

	lines, size, err := Read(f)
	if err != nil {
		d := New()
		d.fileName = path
		return d, fmt.Errorf("%s: %w: %w", path, ErrLoad, err)
	}
	d := FromLines(lines)
	d.fileName = path
	d.fileSize = size
	return d, nil
}
