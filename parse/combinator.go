// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

// Map transforms a parser's successful result with f, without affecting
// Incomplete or Failed outcomes.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return mapParser[A, B]{p, f}
}

type mapParser[A, B any] struct {
	p Parser[A]
	f func(A) B
}

func (m mapParser[A, B]) Parse(data []byte, fds FDSource) Result[B] {
	r := m.p.Parse(data, fds)
	switch r.Outcome {
	case Done:
		return resultDone(r.Consumed, m.f(r.Value))
	case Incomplete:
		return resultIncomplete[B](r.Consumed, mapParser[A, B]{r.Next, m.f})
	default:
		return resultFailed[B](r.Consumed, r.Err)
	}
}

// Some maps a parser's result through f, treating a false second return as
// decode failure (err) rather than a value. This is the combinator
// generated enum arguments are built from: decode the underlying integer,
// then look up the enum member, failing the whole request if the wire value
// is not a member of the declared enum.
func Some[A, B any](p Parser[A], f func(A) (B, bool), err error) Parser[B] {
	return someParser[A, B]{p, f, err}
}

type someParser[A, B any] struct {
	p   Parser[A]
	f   func(A) (B, bool)
	err error
}

func (s someParser[A, B]) Parse(data []byte, fds FDSource) Result[B] {
	r := s.p.Parse(data, fds)
	switch r.Outcome {
	case Done:
		v, ok := s.f(r.Value)
		if !ok {
			return resultFailed[B](r.Consumed, s.err)
		}
		return resultDone(r.Consumed, v)
	case Incomplete:
		return resultIncomplete[B](r.Consumed, someParser[A, B]{r.Next, s.f, s.err})
	default:
		return resultFailed[B](r.Consumed, r.Err)
	}
}

// Then sequences p and, once it completes, the parser f produces from its
// value (monadic bind). This is the combinator the generated request
// decoders fold right over their argument list with: decode arg 1, then
// (given arg 1) decode arg 2, ..., then Pass the assembled struct.
func Then[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return thenParser[A, B]{p: p, f: f}
}

type thenParser[A, B any] struct {
	p    Parser[A]
	f    func(A) Parser[B]
	next Parser[B] // set once p has completed; nil until then
}

func (t thenParser[A, B]) Parse(data []byte, fds FDSource) Result[B] {
	if t.next != nil {
		r := t.next.Parse(data, fds)
		if r.Outcome == Incomplete {
			return resultIncomplete[B](r.Consumed, thenParser[A, B]{next: r.Next})
		}
		return r
	}

	r := t.p.Parse(data, fds)
	switch r.Outcome {
	case Failed:
		return resultFailed[B](r.Consumed, r.Err)
	case Incomplete:
		return resultIncomplete[B](r.Consumed, thenParser[A, B]{p: r.Next, f: t.f})
	}

	data = data[r.Consumed:]
	rest := t.f(r.Value)
	r2 := rest.Parse(data, fds)
	total := r.Consumed + r2.Consumed
	switch r2.Outcome {
	case Failed:
		return resultFailed[B](total, r2.Err)
	case Incomplete:
		return resultIncomplete[B](total, thenParser[A, B]{next: r2.Next})
	}
	return resultDone(total, r2.Value)
}

// Pad skips n bytes, producing no value of its own. Used between wire
// fields that require explicit alignment padding not already folded into a
// length-prefixed combinator (Array, String already include their own).
func Pad(n int) Parser[struct{}] {
	return Map(Bytes(n), func([]byte) struct{} { return struct{}{} })
}
