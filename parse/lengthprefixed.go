// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"
	"unicode/utf8"
)

// padded4 returns the number of padding bytes needed to round n up to the
// next multiple of 4, matching the alignment every length-prefixed Wayland
// argument is padded to on the wire.
func padded4(n int) int {
	return (4 - n%4) % 4
}

// Bytes decodes a fixed n-byte field with no length prefix and no padding,
// for protocol constructs built directly on top of the combinator core
// rather than generated from a length-prefixed XML arg type.
func Bytes(n int) Parser[[]byte] {
	return newFixedWidth(n, func(b []byte) []byte {
		out := make([]byte, len(b))
		copy(out, b)
		return out
	})
}

// lengthPrefixed decodes a u32 length header, `length` payload bytes, and
// padding out to the next 4-byte boundary, handing the unpadded payload
// (sized exactly `length`) to convert. Array and String are both this
// shape; they differ only in how the payload is interpreted once complete.
type lengthPrefixed[T any] struct {
	length  Parser[uint32]
	unpad   int
	payload Parser[[]byte]
	convert func(payload []byte) (T, error)
}

func newLengthPrefixed[T any](convert func([]byte) (T, error)) *lengthPrefixed[T] {
	return &lengthPrefixed[T]{length: U32(), convert: convert}
}

func (p *lengthPrefixed[T]) Parse(data []byte, fds FDSource) Result[T] {
	consumed := 0

	if p.payload == nil {
		r := p.length.Parse(data, fds)
		consumed += r.Consumed
		data = data[r.Consumed:]

		switch r.Outcome {
		case Failed:
			return resultFailed[T](consumed, r.Err)
		case Incomplete:
			return resultIncomplete[T](consumed, &lengthPrefixed[T]{length: r.Next, convert: p.convert})
		}

		unpad := int(r.Value)
		padded := unpad + padded4(unpad)
		nested := &lengthPrefixed[T]{unpad: unpad, payload: Bytes(padded), convert: p.convert}
		return nested.parsePayload(data, fds, consumed)
	}

	return p.parsePayload(data, fds, consumed)
}

func (p *lengthPrefixed[T]) parsePayload(data []byte, fds FDSource, consumedSoFar int) Result[T] {
	r := p.payload.Parse(data, fds)
	consumed := consumedSoFar + r.Consumed

	switch r.Outcome {
	case Failed:
		return resultFailed[T](consumed, r.Err)
	case Incomplete:
		return resultIncomplete[T](consumed, &lengthPrefixed[T]{unpad: p.unpad, payload: r.Next, convert: p.convert})
	}

	payload := r.Value[:p.unpad]
	v, err := p.convert(payload)
	if err != nil {
		return resultFailed[T](consumed, err)
	}
	return resultDone(consumed, v)
}

// Array decodes a length-prefixed, 4-byte-padded opaque byte array ("array"
// in protocol XML). The returned slice excludes padding.
func Array() Parser[[]byte] {
	return newLengthPrefixed(func(payload []byte) ([]byte, error) {
		return payload, nil
	})
}

// String decodes a length-prefixed, 4-byte-padded string ("string" in
// protocol XML) as a UTF-8 lossy conversion of the raw array bytes,
// including whatever trailing NUL the sender included: this leaf performs
// no validation and never fails, matching the array decoder it shares its
// framing with. Strip policy for the trailing NUL, if any, is left to the
// consumer.
func String() Parser[string] {
	return newLengthPrefixed(func(payload []byte) (string, error) {
		return strings.ToValidUTF8(string(payload), string(utf8.RuneError)), nil
	})
}

// StringZ decodes a string argument like String but strips the single
// trailing NUL a non-null sender appends, yielding the text itself. This is
// the form the generated request decoders use: a protocol string argument's
// value is the text, not its on-wire terminator.
func StringZ() Parser[string] {
	return Map(String(), func(s string) string { return strings.TrimSuffix(s, "\x00") })
}
