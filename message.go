// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"github.com/wlcore/wlcore/buffer"
	"github.com/wlcore/wlcore/internal/hostorder"
)

const (
	headerLen    = 8
	maxFrameSize = 1<<16 - 1 // size field is 16 bits
)

// RawMessage is a header plus body produced by Framer.Parse. Its Body slice
// borrows storage from the framer's internal ring buffer: it is only valid
// until the next call to Framer.Write, Uninit or Consume (or
// ClientStream.Receive) shifts or overwrites that storage, so callers that
// need to retain it must copy.
type RawMessage struct {
	ObjectID uint32
	Opcode   uint16
	Body     []byte
}

// Size returns the on-wire size of the message, including its 8-byte header
// but excluding any padding.
func (m RawMessage) Size() int { return headerLen + len(m.Body) }

// Framer incrementally frames a continuous byte stream into discrete
// RawMessages without loss across partial reads. It owns a fixed-capacity
// ring buffer and never allocates per message.
//
// A Framer is not safe for concurrent use.
type Framer struct {
	buf   *buffer.Bytes
	start int // bytes at the front of buf already returned by Parse
}

// NewFramer returns a Framer backed by a ring buffer of the given capacity.
// capacity must be large enough to hold the largest single message this
// framer will ever parse (header + body); ReadLimit-style enforcement is the
// caller's responsibility via capacity sizing.
func NewFramer(capacity int) *Framer {
	return &Framer{buf: buffer.NewBytes(capacity)}
}

// Write copies as many bytes of src as fit into the framer's remaining
// capacity and returns the count copied. Space held by messages already
// returned by Parse is reclaimed first, shifting the unparsed bytes to the
// front of the ring.
func (f *Framer) Write(src []byte) (n int) {
	f.compact()
	return f.buf.Fill(src)
}

// Consume discards n unparsed bytes from the front of the ring without
// framing them. It is exposed for callers that skip over data they have
// inspected by other means.
func (f *Framer) Consume(n int) { f.compact(); f.buf.Consume(n) }

// Uninit exposes the framer's uninitialized tail directly, for callers (such
// as ClientStream) that want to hand a syscall a destination buffer without
// an intermediate copy. CommitWritten must be called with the actual count
// read.
func (f *Framer) Uninit() []byte      { f.compact(); return f.buf.Uninit() }
func (f *Framer) CommitWritten(n int) { f.buf.CommitWritten(n) }
func (f *Framer) Available() int      { return f.buf.Len() - f.start }
func (f *Framer) Capacity() int       { return f.buf.Cap() }

// Parse inspects the buffered bytes for one complete framed message. It
// returns ok=false without consuming anything if fewer than a full frame is
// currently buffered. The returned RawMessage.Body aliases the framer's
// internal storage and is invalidated by the next Write, Uninit or Consume.
func (f *Framer) Parse() (msg RawMessage, ok bool) {
	data := f.buf.Initialized()[f.start:]
	if len(data) < headerLen {
		return RawMessage{}, false
	}

	bo := hostOrder()
	objectID := bo.Uint32(data[0:4])
	word2 := bo.Uint32(data[4:8])
	opcode := uint16(word2 & 0xffff)
	size := int(word2 >> 16)
	if size < headerLen {
		size = headerLen
	}
	padded := (size + 3) &^ 3

	if len(data) < padded {
		return RawMessage{}, false
	}

	body := data[headerLen:size]
	f.start += padded
	return RawMessage{ObjectID: objectID, Opcode: opcode, Body: body}, true
}

// compact drops the bytes of messages already returned by Parse, shifting
// the unparsed remainder to offset 0.
func (f *Framer) compact() {
	if f.start > 0 {
		f.buf.Consume(f.start)
		f.start = 0
	}
}

// hostOrder returns the byte-order implementation wlcore uses on the wire.
// It panics if called on an unsupported (big-endian) host. BindPath already
// surfaces ErrUnsupportedByteOrder before any stream exists, so this path
// is unreachable through the listener surface; it guards direct Framer use.
// Parse/Encode are hot paths that cannot return a fresh error cheaply on
// every call.
func hostOrder() nativeByteOrder {
	if !hostorder.LittleEndian {
		panic(hostorder.ErrUnsupportedByteOrder)
	}
	return nativeByteOrder{}
}

// nativeByteOrder reads/writes little-endian, the only host order wlcore
// supports (see internal/hostorder).
type nativeByteOrder struct{}

func (nativeByteOrder) Uint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (nativeByteOrder) PutUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
