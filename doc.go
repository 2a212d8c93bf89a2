// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wlcore implements the server half of the Wayland wire protocol:
// binding a race-free named Unix listener under the XDG runtime directory,
// accepting client stream connections, framing their byte streams into
// discrete messages, and carrying out-of-band file descriptors alongside
// them.
//
// Semantics and design:
//   - Non-blocking first: by default Accept and Receive make one
//     non-blocking attempt and report "no progress" as ok=false rather than
//     parking a goroutine; WithBlock and WithRetryDelay make them retry
//     in-line instead. Lock acquisition never waits: a held lock fails with
//     ErrLockHeld. ErrWouldBlock (re-exported from code.hybscloud.com/iox)
//     is what ClientStream.Send returns when the socket cannot take more
//     data. Embedding programs are expected to poll; a
//     readiness-multiplexing layer is an external collaborator.
//   - Ownership discipline: file descriptors are modeled as owned values
//     that travel through FIFO queues. Destructors close any descriptor that
//     was queued but never consumed.
//   - Scope: this package implements only the server half of the wire
//     protocol core — the listener, the client stream's recvmsg engine, and
//     message framing. The client half, a compositor, and non-POSIX hosts
//     are out of scope. The strongly-typed per-interface request/event types
//     and their decoders live in the sibling protocol package, written by
//     hand in the same shape protocolgen generates from Wayland protocol XML.
//
// Wire format: an 8-byte header (object_id uint32, opcode uint16, size
// uint16, all in host byte order — see internal/hostorder) followed by a
// body padded to the next multiple of 4 bytes. See RawMessage and Framer.
package wlcore
