// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func socketpair(t *testing.T) (a, b int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		t.Fatalf("Socketpair: %v", err)
	}
	return fds[0], fds[1]
}

// Scenario 5 — fd passing: client sends a message plus two fds via a single
// recvmsg-visible send. After Receive, ParseMessage yields the message once,
// ParseFD yields the fds in order, then none. Closing without consuming
// leftover fds is checked by TestClientStream_CloseClosesUnconsumedFDs.
func TestClientStream_ReceivesMessageAndFDsInOrder(t *testing.T) {
	serverFD, clientFD := socketpair(t)
	defer unix.Close(clientFD)

	pipeR1, pipeW1, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer pipeW1.Close()
	pipeR2, pipeW2, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer pipeW2.Close()

	body := []byte{1, 2, 3, 4}
	msg := RawMessage{ObjectID: 3, Opcode: 1, Body: body}
	payload, err := msg.Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	oob := unix.UnixRights(int(pipeR1.Fd()), int(pipeR2.Fd()))
	if err := unix.Sendmsg(clientFD, payload, oob, nil, 0); err != nil {
		t.Fatalf("Sendmsg: %v", err)
	}
	pipeR1.Close()
	pipeR2.Close()

	s := newClientStream(serverFD, 1, defaultOptions)
	defer s.Close()

	n, ok, err := s.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if !ok || n != len(payload) {
		t.Fatalf("Receive n=%d ok=%v want %d,true", n, ok, len(payload))
	}

	got, ok := s.ParseMessage()
	if !ok {
		t.Fatal("expected a parsed message")
	}
	if got.ObjectID != 3 || got.Opcode != 1 || !bytes.Equal(got.Body, body) {
		t.Fatalf("msg=%+v", got)
	}
	if _, ok := s.ParseMessage(); ok {
		t.Fatal("expected exactly one message")
	}

	fd1, ok := s.ParseFD()
	if !ok {
		t.Fatal("expected first fd")
	}
	defer unix.Close(fd1)
	fd2, ok := s.ParseFD()
	if !ok {
		t.Fatal("expected second fd")
	}
	defer unix.Close(fd2)
	if _, ok := s.ParseFD(); ok {
		t.Fatal("expected no third fd")
	}

	// Write something through fd1 to confirm it is a live, usable descriptor.
	if _, err := pipeW1.Write([]byte("x")); err != nil {
		t.Fatalf("write through received fd: %v", err)
	}
	buf := make([]byte, 1)
	if _, err := unix.Read(fd1, buf); err != nil {
		t.Fatalf("read through received fd: %v", err)
	}
	if buf[0] != 'x' {
		t.Fatalf("got %q want x", buf)
	}
}

func TestClientStream_CloseClosesUnconsumedFDs(t *testing.T) {
	serverFD, clientFD := socketpair(t)
	defer unix.Close(clientFD)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer w.Close()

	msg := RawMessage{ObjectID: 1, Opcode: 0}
	payload, _ := msg.Encode(nil)
	oob := unix.UnixRights(int(r.Fd()))
	if err := unix.Sendmsg(clientFD, payload, oob, nil, 0); err != nil {
		t.Fatalf("Sendmsg: %v", err)
	}
	r.Close()

	s := newClientStream(serverFD, 1, defaultOptions)
	if _, _, err := s.Receive(); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The fd was closed by Close without being consumed: writing to the
	// write end should now fail (broken pipe / EPIPE).
	_, werr := w.Write([]byte("y"))
	if werr == nil {
		t.Fatal("expected write to closed read end to fail")
	}
}

func TestClientStream_WouldBlockWhenNoData(t *testing.T) {
	serverFD, clientFD := socketpair(t)
	defer unix.Close(clientFD)

	s := newClientStream(serverFD, 1, defaultOptions)
	defer s.Close()

	n, ok, err := s.Receive()
	if err != nil || ok || n != 0 {
		t.Fatalf("Receive n=%d ok=%v err=%v want 0,false,nil", n, ok, err)
	}
}

func TestClientStream_SendRoundTrip(t *testing.T) {
	serverFD, clientFD := socketpair(t)
	defer unix.Close(clientFD)

	server := newClientStream(serverFD, 1, defaultOptions)
	defer server.Close()

	body := []byte("hello client")
	if err := server.Send(RawMessage{ObjectID: 9, Opcode: 4, Body: body}, nil); err != nil {
		t.Fatalf("Send: %v", err)
	}

	buf := make([]byte, 256)
	n, err := unix.Read(clientFD, buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	fr := NewFramer(256)
	fr.Write(buf[:n])
	got, ok := fr.Parse()
	if !ok {
		t.Fatal("expected a parsed message")
	}
	if got.ObjectID != 9 || got.Opcode != 4 || !bytes.Equal(got.Body, body) {
		t.Fatalf("got=%+v", got)
	}
}

func TestClientStream_ReceiveOnClosedStreamFails(t *testing.T) {
	serverFD, clientFD := socketpair(t)
	defer unix.Close(clientFD)

	s := newClientStream(serverFD, 1, defaultOptions)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, _, err := s.Receive(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Receive err=%v want ErrClosed", err)
	}
}
