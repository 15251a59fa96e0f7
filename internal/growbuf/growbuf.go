// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/growbuf/growbuf.go
// Summary: Amortized-doubling dynamic array shared by lines, documents, the text pool and frame output.
// Usage: growbuf.New[byte](16) for a line buffer, growbuf.New[*Line](64) for a line table.

package growbuf

import "fmt"

// Buffer is a growable array whose capacity doubles when exhausted.
// The zero value is usable and starts at a capacity of 8.
type Buffer[T any] struct {
	data   []T
	minCap int
}

// New returns an empty buffer whose first allocation holds minCap items.
func New[T any](minCap int) *Buffer[T] {
	if minCap < 1 {
		minCap = 1
	}
	return &Buffer[T]{minCap: minCap}
}

// From returns a buffer holding a copy of items.
func From[T any](minCap int, items []T) *Buffer[T] {
	b := New[T](minCap)
	b.Append(items...)
	return b
}

func (b *Buffer[T]) Len() int { return len(b.data) }
func (b *Buffer[T]) Cap() int { return cap(b.data) }

// Slice exposes the live contents. The slice is invalidated by the next
// mutating call.
func (b *Buffer[T]) Slice() []T { return b.data }

// At returns the item at index i.
func (b *Buffer[T]) At(i int) T {
	b.check(i, len(b.data)-1, "At")
	return b.data[i]
}

// Set replaces the item at index i.
func (b *Buffer[T]) Set(i int, v T) {
	b.check(i, len(b.data)-1, "Set")
	b.data[i] = v
}

// Grow guarantees room for n more items without reallocating.
func (b *Buffer[T]) Grow(n int) {
	need := len(b.data) + n
	if need <= cap(b.data) {
		return
	}
	c := cap(b.data)
	if c == 0 {
		c = b.minCap
		if c == 0 {
			c = 8
		}
	}
	for c < need {
		c *= 2
	}
	next := make([]T, len(b.data), c)
	copy(next, b.data)
	b.data = next
}

// Append adds items at the end.
func (b *Buffer[T]) Append(items ...T) {
	b.Grow(len(items))
	b.data = append(b.data, items...)
}

// Insert places items before index, shifting the tail right.
// index must be within [0, Len].
func (b *Buffer[T]) Insert(index int, items ...T) {
	b.check(index, len(b.data), "Insert")
	n := len(items)
	if n == 0 {
		return
	}
	b.Grow(n)
	old := len(b.data)
	b.data = b.data[:old+n]
	copy(b.data[index+n:], b.data[index:old])
	copy(b.data[index:], items)
}

// Delete removes count items starting at index.
func (b *Buffer[T]) Delete(index, count int) {
	if count < 0 || index < 0 || index+count > len(b.data) {
		panic(fmt.Sprintf("growbuf: Delete(%d, %d) out of range [0, %d]", index, count, len(b.data)))
	}
	if count == 0 {
		return
	}
	old := len(b.data)
	copy(b.data[index:], b.data[index+count:])
	var zero T
	for i := old - count; i < old; i++ {
		b.data[i] = zero
	}
	b.data = b.data[:old-count]
}

// Truncate shortens the buffer to n items, keeping capacity.
func (b *Buffer[T]) Truncate(n int) {
	b.check(n, len(b.data), "Truncate")
	var zero T
	for i := n; i < len(b.data); i++ {
		b.data[i] = zero
	}
	b.data = b.data[:n]
}

// Reset empties the buffer and keeps the allocation for reuse.
func (b *Buffer[T]) Reset() { b.Truncate(0) }

func (b *Buffer[T]) check(i, max int, op string) {
	if i < 0 || i > max {
		panic(fmt.Sprintf("growbuf: %s index %d out of range [0, %d]", op, i, max))
	}
}
