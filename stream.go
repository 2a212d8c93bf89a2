// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/wlcore/wlcore/buffer"
)

// recvFlags requests close-on-exec on received file descriptors and
// non-blocking semantics.
const recvFlags = unix.MSG_CMSG_CLOEXEC | unix.MSG_DONTWAIT

// ClientStream owns one connected stream socket accepted by a Listener. It
// runs a recvmsg engine: a data-framing buffer
// plus a scratch ancillary-control buffer, together yielding framed messages
// and an ordered FIFO queue of received file descriptors.
//
// A ClientStream is not safe for concurrent use.
type ClientStream struct {
	id         ClientID
	listenerID ListenerID
	fd         int
	framer     *Framer
	ctrlBuf    []byte
	fds        buffer.QueueSeq[int]
	logger     interface {
		Debug(msg string, args ...interface{})
	}
	opts   Options
	closed bool
}

func newClientStream(fd int, listenerID ListenerID, opts Options) *ClientStream {
	return &ClientStream{
		id:         allocClientID(),
		listenerID: listenerID,
		fd:         fd,
		framer:     NewFramer(opts.RecvBufferSize),
		ctrlBuf:    make([]byte, opts.CtrlBufferSize),
		logger:     opts.Logger,
		opts:       opts,
	}
}

// ID returns the process-wide identifier assigned to this stream.
func (s *ClientStream) ID() ClientID { return s.id }

// ListenerID returns the identifier of the Listener that accepted this
// stream.
func (s *ClientStream) ListenerID() ListenerID { return s.listenerID }

// Receive performs one recvmsg call, extending the internal data buffer and
// enqueuing any SCM_RIGHTS file descriptors delivered alongside it. It
// returns ok=false (not an error) when no data is currently available;
// bytesRead is the number of payload bytes newly buffered. By default this
// is a single non-blocking attempt; WithBlock/WithRetryDelay change how it
// reacts to "would block" (see Options.RetryDelay).
//
// A control-message-truncated result is a hard error (ErrTruncatedControl):
// silently dropping an SCM_RIGHTS fd is unrecoverable. An unexpected
// ancillary record such as SCM_CREDENTIALS is also a hard error
// (ErrInvalidControl); this server never requests credentials.
func (s *ClientStream) Receive() (bytesRead int, ok bool, err error) {
	if s.closed {
		return 0, false, ErrClosed
	}

	dst := s.framer.Uninit()
	if len(dst) == 0 {
		return 0, false, ErrMessageTooLarge
	}

	var n, oobn, recvFlagsOut int
	for {
		clear(s.ctrlBuf)

		n, oobn, recvFlagsOut, _, err = unix.Recvmsg(s.fd, dst, s.ctrlBuf, recvFlags)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				if s.opts.waitOnceOnWouldBlock() {
					continue
				}
				return 0, false, nil
			}
			return 0, false, err
		}
		break
	}

	if n == 0 {
		// No new data right now. EOF is left to the caller to infer from
		// subsequent errors/zero reads.
		return 0, false, nil
	}

	s.framer.CommitWritten(n)

	if recvFlagsOut&unix.MSG_CTRUNC != 0 {
		return n, true, ErrTruncatedControl
	}

	if err := s.consumeControl(s.ctrlBuf[:oobn]); err != nil {
		return n, true, err
	}

	return n, true, nil
}

func (s *ClientStream) consumeControl(oob []byte) error {
	if len(oob) == 0 {
		return nil
	}

	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return err
	}

	for _, m := range msgs {
		switch {
		case m.Header.Level == unix.SOL_SOCKET && m.Header.Type == unix.SCM_RIGHTS:
			fds, err := unix.ParseUnixRights(&m)
			if err != nil {
				return err
			}
			for _, fd := range fds {
				s.fds.Push(fd)
			}
		case m.Header.Level == unix.SOL_SOCKET && m.Header.Type == unix.SCM_CREDENTIALS:
			return ErrInvalidControl
		default:
			if s.logger != nil {
				s.logger.Debug("wlcore: ignoring unrecognized ancillary control message",
					"level", m.Header.Level, "type", m.Header.Type)
			}
		}
	}
	return nil
}

// ParseMessage extracts one complete framed message from the data buffered
// by Receive, if one is available.
func (s *ClientStream) ParseMessage() (RawMessage, bool) {
	return s.framer.Parse()
}

// ParseFD dequeues the next file descriptor delivered alongside received
// messages, transferring ownership to the caller. The caller becomes
// responsible for closing it.
func (s *ClientStream) ParseFD() (int, bool) {
	return s.fds.Take()
}

// Send encodes msg and writes it to the peer in a single framed message,
// attaching fds as one SCM_RIGHTS ancillary record. This is the server-side
// mechanical inverse of Receive/ParseMessage/ParseFD.
func (s *ClientStream) Send(msg RawMessage, fds []int) error {
	if s.closed {
		return ErrClosed
	}

	payload, err := msg.Encode(nil)
	if err != nil {
		return err
	}

	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}

	for {
		n, err := unix.SendmsgN(s.fd, payload, oob, nil, unix.MSG_DONTWAIT)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return ErrWouldBlock
			}
			return err
		}
		// Ancillary data, if any, was attached to this call only; further
		// partial writes carry payload bytes alone.
		oob = nil
		payload = payload[n:]
		if len(payload) == 0 {
			return nil
		}
	}
}

// Close drains and closes every file descriptor queued but never consumed,
// then shuts down and closes the stream's connected socket.
func (s *ClientStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	for _, fd := range s.fds.Drain() {
		unix.Close(fd)
	}

	unix.Shutdown(s.fd, unix.SHUT_RDWR)
	return unix.Close(s.fd)
}
