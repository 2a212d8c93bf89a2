// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

// fixedWidth accumulates exactly n bytes across possibly many Parse calls,
// then hands the complete slice to convert. It is the shared resumable
// building block for every fixed-size scalar argument (int, uint, fixed,
// object id, new_id).
type fixedWidth[T any] struct {
	n       int
	partial []byte
	convert func([]byte) T
}

func (p *fixedWidth[T]) Parse(data []byte, _ FDSource) Result[T] {
	need := p.n - len(p.partial)
	take := need
	if take > len(data) {
		take = len(data)
	}

	buf := make([]byte, 0, p.n)
	buf = append(buf, p.partial...)
	buf = append(buf, data[:take]...)

	if len(buf) < p.n {
		return resultIncomplete[T](take, &fixedWidth[T]{n: p.n, partial: buf, convert: p.convert})
	}
	return resultDone(take, p.convert(buf))
}

func newFixedWidth[T any](n int, convert func([]byte) T) Parser[T] {
	return &fixedWidth[T]{n: n, convert: convert}
}

// I32 decodes a signed 32-bit wire integer ("int" in protocol XML).
func I32() Parser[int32] {
	return newFixedWidth(4, func(b []byte) int32 { return int32(order.Uint32(b)) })
}

// U32 decodes an unsigned 32-bit wire integer ("uint" in protocol XML).
func U32() Parser[uint32] {
	return newFixedWidth(4, order.Uint32)
}

// U16 decodes an unsigned 16-bit value. Wayland request/event arguments are
// never 16-bit on the wire; the framer reads the header as 32-bit words and
// generated enums decode through U32 or I32, so neither uses it.
func U16() Parser[uint16] {
	return newFixedWidth(2, order.Uint16)
}

// fixedPointShift is the fractional bit width of the Wayland 24.8 fixed
// point wire format ("fixed" in protocol XML).
const fixedPointShift = 8

// Fixed decodes a 24.8 fixed-point wire value into a float64.
func Fixed() Parser[float64] {
	return newFixedWidth(4, func(b []byte) float64 {
		return float64(int32(order.Uint32(b))) / float64(int32(1)<<fixedPointShift)
	})
}

// ObjID is a decoded object-id argument tagged with the interface it refers
// to, purely for compile-time distinctness between e.g. a wl_surface id and
// a wl_buffer id — mirroring the phantom-typed ObjId<Interface> the protocol
// was originally generated from. The zero value (id 0) is the Wayland null
// object reference.
type ObjID[Interface any] uint32

// NewID is a decoded new_id argument: an id the client has minted for an
// object the server must now associate with Interface.
type NewID[Interface any] uint32

// ObjIDOf decodes an object-id argument referring to Interface.
func ObjIDOf[Interface any]() Parser[ObjID[Interface]] {
	return newFixedWidth(4, func(b []byte) ObjID[Interface] { return ObjID[Interface](order.Uint32(b)) })
}

// NewIDOf decodes a new_id argument for a request whose target interface is
// fixed by the protocol schema (the common case).
func NewIDOf[Interface any]() Parser[NewID[Interface]] {
	return newFixedWidth(4, func(b []byte) NewID[Interface] { return NewID[Interface](order.Uint32(b)) })
}

// PolyNewID is the argument shape for requests like wl_registry.bind, whose
// new_id is preceded on the wire by the interface name and version the
// client is requesting rather than fixed by the schema.
type PolyNewID struct {
	Interface string
	Version   uint32
	ID        uint32
}

// FD dequeues the next file descriptor delivered alongside the message via
// SCM_RIGHTS. It consumes zero bytes of the body.
func FD() Parser[int] {
	return fdParser{}
}

type fdParser struct{}

func (fdParser) Parse(_ []byte, fds FDSource) Result[int] {
	fd, ok := fds.Take()
	if !ok {
		// Not yet an error: the fd may simply not have arrived in the
		// recvmsg call that delivered the bytes completing this message
		// yet. The caller resumes with the same fds source once more has
		// arrived.
		return resultIncomplete[int](0, fdParser{})
	}
	return resultDone(0, fd)
}

// Pass is the terminal parser: it consumes nothing and always succeeds with
// v, used to close a Then chain once every argument has been decoded.
func Pass[T any](v T) Parser[T] {
	return passParser[T]{v}
}

type passParser[T any] struct{ v T }

func (p passParser[T]) Parse(_ []byte, _ FDSource) Result[T] {
	return resultDone(0, p.v)
}
