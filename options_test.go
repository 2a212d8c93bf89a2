// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestOptions_RetryDelayDefaultsToNonblock(t *testing.T) {
	if defaultOptions.RetryDelay >= 0 {
		t.Fatalf("RetryDelay = %v, want negative (nonblock default)", defaultOptions.RetryDelay)
	}
	if defaultOptions.waitOnceOnWouldBlock() {
		t.Fatal("waitOnceOnWouldBlock() = true with default (nonblock) options")
	}
}

func TestOptions_WithBlockAndWithNonblock(t *testing.T) {
	var o Options
	WithBlock()(&o)
	if o.RetryDelay != 0 {
		t.Fatalf("after WithBlock, RetryDelay = %v, want 0", o.RetryDelay)
	}
	if !o.waitOnceOnWouldBlock() {
		t.Fatal("waitOnceOnWouldBlock() = false after WithBlock")
	}

	WithNonblock()(&o)
	if o.RetryDelay >= 0 {
		t.Fatalf("after WithNonblock, RetryDelay = %v, want negative", o.RetryDelay)
	}
	if o.waitOnceOnWouldBlock() {
		t.Fatal("waitOnceOnWouldBlock() = true after WithNonblock")
	}
}

func TestOptions_WithRetryDelay(t *testing.T) {
	var o Options
	WithRetryDelay(5 * time.Millisecond)(&o)
	if o.RetryDelay != 5*time.Millisecond {
		t.Fatalf("RetryDelay = %v, want 5ms", o.RetryDelay)
	}

	start := time.Now()
	if !o.waitOnceOnWouldBlock() {
		t.Fatal("waitOnceOnWouldBlock() = false with positive RetryDelay")
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Fatalf("waitOnceOnWouldBlock returned after %v, want >= 5ms", elapsed)
	}
}

// TestClientStream_ReceiveBlocksUntilDataArrives exercises the WithRetryDelay
// sleep-and-retry path end to end: Receive is called before the peer has
// written anything, so it must loop on ErrWouldBlock until the goroutine
// below writes a message, rather than returning ok=false immediately.
func TestClientStream_ReceiveBlocksUntilDataArrives(t *testing.T) {
	serverFD, clientFD := socketpair(t)
	defer unix.Close(clientFD)

	opts := defaultOptions
	WithRetryDelay(time.Millisecond)(&opts)

	s := newClientStream(serverFD, 1, opts)
	defer s.Close()

	go func() {
		time.Sleep(20 * time.Millisecond)
		msg := RawMessage{ObjectID: 1, Opcode: 0}
		payload, _ := msg.Encode(nil)
		unix.Write(clientFD, payload)
	}()

	n, ok, err := s.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if !ok || n == 0 {
		t.Fatalf("Receive n=%d ok=%v, want data after blocking retry", n, ok)
	}
}
