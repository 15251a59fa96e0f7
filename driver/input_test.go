// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: driver/input_test.go
// Summary: Byte decoding and replay of bytes queued during startup.

package driver

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		in   byte
		want Event
	}{
		{'a', Event{Type: EventKey, Key: 'a'}},
		{'\n', Event{Type: EventKey, Key: '\n'}},
		{'\r', Event{Type: EventKey, Key: '\n'}},
		{0x1b, Event{Type: EventUnknown}},
		{0x7f, Event{Type: EventKey, Key: 0x7f}},
		{0xe2, Event{Type: EventKey, Key: 0xe2}},
	}
	for _, tt := range tests {
		if got := Decode(tt.in); got != tt.want {
			t.Errorf("Decode(%#x) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestInputReplaysPendingFirst(t *testing.T) {
	pending := []byte("ab")
	in := NewInput(strings.NewReader("q\r\x1b"), pending)
	pending[0] = 'z'

	want := []Event{
		{Type: EventKey, Key: 'a'},
		{Type: EventKey, Key: 'b'},
		{Type: EventKey, Key: 'q'},
		{Type: EventKey, Key: '\n'},
		{Type: EventUnknown},
	}
	for i, w := range want {
		got, err := ReadEvent(in)
		if err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("event %d = %+v, want %+v", i, got, w)
		}
		if i == 1 && in.Pending() != 0 {
			t.Fatalf("pending bytes left after replay")
		}
	}
	if _, err := ReadEvent(in); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want EOF", err)
	}
}

func TestSymbolAndEventNames(t *testing.T) {
	if SymEmptyLine.Char() != '~' || Symbol(9).Char() != '?' {
		t.Fatalf("unexpected symbol glyphs")
	}
	if EventKey.String() != "key" || EventType(7).String() != "EventType(7)" {
		t.Fatalf("unexpected event names")
	}
}
