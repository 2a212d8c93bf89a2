// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package buffer provides the low-level byte-region and lazy-sequence
// abstractions shared by the framer, client stream, and parser combinator
// packages.
//
// Bytes models a region that is partially initialized: callers may write into
// the uninitialized suffix and then assert, via CommitWritten, how much of it
// became valid. Seq models a pull-based sequence of items (bytes or file
// descriptors) so that a parse attempt which runs out of input can leave the
// remaining items untouched for a later retry.
package buffer

// Bytes is a fixed-capacity byte region with an initialized prefix
// [0, length) and an uninitialized suffix [length, cap(storage)).
//
// It is not safe for concurrent use.
type Bytes struct {
	storage []byte
	length  int // bytes currently holding valid data, starting at index 0
}

// NewBytes returns a Bytes backed by a freshly allocated region of the given
// capacity.
func NewBytes(capacity int) *Bytes {
	return &Bytes{storage: make([]byte, capacity)}
}

// Len returns the number of initialized (valid) bytes.
func (b *Bytes) Len() int { return b.length }

// Cap returns the total capacity of the backing storage.
func (b *Bytes) Cap() int { return len(b.storage) }

// Initialized returns the valid prefix of the region.
func (b *Bytes) Initialized() []byte { return b.storage[:b.length] }

// Uninit returns the uninitialized suffix that callers may write into
// directly (e.g. as the target of a syscall read). The caller must call
// CommitWritten with the number of bytes actually written before the
// contents of the returned slice are trusted as valid.
func (b *Bytes) Uninit() []byte { return b.storage[b.length:] }

// CommitWritten extends the initialized prefix by n bytes. The caller
// asserts that the first n bytes of the slice previously returned by Uninit
// now hold valid data; this is not verified.
func (b *Bytes) CommitWritten(n int) {
	if n < 0 || b.length+n > len(b.storage) {
		panic("buffer: CommitWritten out of range")
	}
	b.length += n
}

// Fill copies as many bytes of src as fit into the uninitialized suffix,
// committing them, and returns the count copied.
func (b *Bytes) Fill(src []byte) (n int) {
	n = copy(b.Uninit(), src)
	b.CommitWritten(n)
	return n
}

// Consume pops the first n bytes from the front of the initialized region,
// shifting any remainder down to offset 0.
func (b *Bytes) Consume(n int) {
	if n < 0 || n > b.length {
		panic("buffer: Consume out of range")
	}
	if n == 0 {
		return
	}
	remaining := b.length - n
	copy(b.storage[:remaining], b.storage[n:b.length])
	b.length = remaining
}

// Reset empties the region without releasing the backing storage.
func (b *Bytes) Reset() { b.length = 0 }

// Seq is a lazy pull-based sequence of T. Parsers consume input exclusively
// through this capability so that a parse attempt failing on a short
// sequence leaves whatever was not consumed in place for a later retry.
type Seq[T any] interface {
	// Take removes and returns the next item, or reports ok=false if the
	// sequence currently has nothing more to offer (not necessarily EOF —
	// more items may appear later).
	Take() (item T, ok bool)
}

// QueueSeq adapts a FIFO queue (a slice used as a ring via head index) into
// a Seq. Zero value is an empty queue ready to use.
type QueueSeq[T any] struct {
	items []T
	head  int
}

// Push enqueues an item at the back of the queue.
func (q *QueueSeq[T]) Push(item T) {
	q.items = append(q.items, item)
}

// Take implements Seq.
func (q *QueueSeq[T]) Take() (item T, ok bool) {
	if q.head >= len(q.items) {
		return item, false
	}
	item = q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return item, true
}

// Len reports the number of items not yet taken.
func (q *QueueSeq[T]) Len() int { return len(q.items) - q.head }

// Drain removes and returns every remaining item in FIFO order, emptying the
// queue. Useful for destructors that must account for every unconsumed item
// (e.g. closing leftover file descriptors).
func (q *QueueSeq[T]) Drain() []T {
	out := append([]T(nil), q.items[q.head:]...)
	q.items = q.items[:0]
	q.head = 0
	return out
}

// SliceSeq adapts a fixed slice into a one-shot forward Seq.
type SliceSeq[T any] struct {
	items []T
	pos   int
}

// NewSliceSeq returns a Seq over items, starting at the first element.
func NewSliceSeq[T any](items []T) *SliceSeq[T] {
	return &SliceSeq[T]{items: items}
}

// Take implements Seq.
func (s *SliceSeq[T]) Take() (item T, ok bool) {
	if s.pos >= len(s.items) {
		return item, false
	}
	item = s.items[s.pos]
	s.pos++
	return item, true
}

// Remaining returns the items not yet taken, without consuming them.
func (s *SliceSeq[T]) Remaining() []T { return s.items[s.pos:] }
