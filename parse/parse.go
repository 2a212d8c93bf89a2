// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package parse is a small resumable parser-combinator core used to decode
// Wayland request arguments from a message body plus an ordered sequence of
// file descriptors delivered alongside it.
//
// Every Parser is a value, not a cursor: calling Parse never mutates the
// receiver. On an Incomplete outcome the returned Next is a fresh parser
// that has remembered everything already decoded, so resuming never re-does
// finished work and never re-reads bytes already consumed.
package parse

import (
	"encoding/binary"
	"errors"
)

// Outcome discriminates the three states a single Parse call can leave a
// Parser in.
type Outcome int

const (
	// Done means Value holds the fully decoded result.
	Done Outcome = iota
	// Incomplete means data was exhausted before a full value could be
	// produced; Next is a continuation that should be called again with
	// more data (and the same FDSource).
	Incomplete
	// Failed means the input could not be decoded into a valid value;
	// Err describes why. A Failed parser never resumes.
	Failed
)

// ErrInvalidEnum is returned when a decoded integer does not correspond to
// any entry of the target enum.
var ErrInvalidEnum = errors.New("parse: value is not a member of the enum")

// FDSource yields file descriptors delivered alongside the message body
// being decoded, in the order they arrived. *buffer.QueueSeq[int] satisfies
// this. wlcore.ClientStream's ParseFD has the same signature under a
// different name, so a ClientStream does not satisfy it directly.
type FDSource interface {
	Take() (fd int, ok bool)
}

// Result is the outcome of one Parse call. Exactly one of Value, Next, or
// Err is meaningful, selected by Outcome.
type Result[T any] struct {
	Consumed int
	Outcome  Outcome
	Value    T
	Next     Parser[T]
	Err      error
}

// Parser decodes a T from a byte stream and an accompanying FDSource. Parse
// consumes a prefix of data (possibly zero bytes, e.g. for an FD argument)
// and reports how much of data it used via Result.Consumed; callers must
// advance their own cursor by that amount before calling again.
type Parser[T any] interface {
	Parse(data []byte, fds FDSource) Result[T]
}

func resultDone[T any](consumed int, v T) Result[T] {
	return Result[T]{Consumed: consumed, Outcome: Done, Value: v}
}

func resultIncomplete[T any](consumed int, next Parser[T]) Result[T] {
	return Result[T]{Consumed: consumed, Outcome: Incomplete, Next: next}
}

func resultFailed[T any](consumed int, err error) Result[T] {
	return Result[T]{Consumed: consumed, Outcome: Failed, Err: err}
}

// order is the wire byte order for every fixed-width scalar. wlcore already
// refuses to operate on big-endian hosts (internal/hostorder); this package
// decodes request bodies that only ever reach it after that check passed.
var order = binary.LittleEndian
