// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
)

// defaultRecvBufferSize is the default capacity of a ClientStream's data
// framer; defaultCtrlBufferSize is that of its scratch control buffer.
const (
	defaultRecvBufferSize = 64 * 1024
	defaultCtrlBufferSize = 4 * 1024
)

// Options configures a Listener and the ClientStreams it accepts.
type Options struct {
	Logger         hclog.Logger
	RecvBufferSize int
	CtrlBufferSize int

	// RetryDelay controls how Accept and Receive handle ErrWouldBlock from
	// their underlying non-blocking syscall:
	//   - negative: nonblock, return ErrWouldBlock-shaped "no progress"
	//     immediately (ok=false, err=nil) — the embedding program's poll
	//     loop decides when to call again. This is the default.
	//   - zero: yield (runtime.Gosched) and retry in-line.
	//   - positive: sleep for the duration and retry in-line.
	RetryDelay time.Duration
}

var defaultOptions = Options{
	Logger:         hclog.NewNullLogger(),
	RecvBufferSize: defaultRecvBufferSize,
	CtrlBufferSize: defaultCtrlBufferSize,
	RetryDelay:     -1, // default: nonblock
}

// waitOnceOnWouldBlock reports whether the caller should retry its syscall
// in-line rather than surfacing "no progress" to the embedder, applying one
// unit of backoff per the configured RetryDelay policy.
func (o Options) waitOnceOnWouldBlock() bool {
	if o.RetryDelay < 0 {
		return false
	}
	if o.RetryDelay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(o.RetryDelay)
	return true
}

// Option configures a Listener. Options apply to the Listener itself and are
// inherited by every ClientStream it Accepts.
type Option func(*Options)

// WithLogger installs a structured logger used for the one place this
// package logs rather than errors: an ancillary control message whose level
// is neither SCM_RIGHTS nor SCM_CREDENTIALS is logged and ignored. The
// logger's configuration (backend, sink, verbosity) is the caller's
// concern; by default a no-op logger is used.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRecvBufferSize overrides the capacity of each accepted ClientStream's
// data-framing ring buffer. It bounds the largest single message the stream
// can frame.
func WithRecvBufferSize(n int) Option {
	return func(o *Options) { o.RecvBufferSize = n }
}

// WithCtrlBufferSize overrides the capacity of each accepted ClientStream's
// scratch ancillary-data buffer.
func WithCtrlBufferSize(n int) Option {
	return func(o *Options) { o.CtrlBufferSize = n }
}

// WithRetryDelay sets the retry/wait policy Accept and Receive use when the
// underlying syscall would block: a negative duration disables retrying
// (the default), zero yields and retries, and a positive duration sleeps
// and retries.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on what would
// otherwise be an ErrWouldBlock "no progress" result, emulating a blocking
// call on top of the non-blocking socket this package always uses.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock forces the default non-blocking behavior: Accept/Receive
// return immediately with ok=false when no progress is currently possible.
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}
