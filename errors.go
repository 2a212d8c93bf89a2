// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"errors"

	"code.hybscloud.com/iox"

	"github.com/wlcore/wlcore/internal/hostorder"
)

var (
	// ErrWouldBlock means "no further progress without waiting". Re-exported
	// from iox so callers need not import it directly to use errors.Is.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrInvalidPath reports a socket path containing an interior NUL byte
	// or exceeding the platform's sun_path length.
	ErrInvalidPath = errors.New("wlcore: invalid socket path")

	// ErrLockHeld reports that another process already holds the advisory
	// lock for a listener's name.
	ErrLockHeld = errors.New("wlcore: lockfile held by another process")

	// ErrAddrInUse reports that a candidate socket name is already bound.
	ErrAddrInUse = errors.New("wlcore: address in use")

	// ErrAlreadyInUse reports that every name in a TryRange attempt was
	// already bound or locked.
	ErrAlreadyInUse = errors.New("wlcore: no socket name available in range")

	// ErrNoRuntimeDir reports that XDG_RUNTIME_DIR is unset.
	ErrNoRuntimeDir = errors.New("wlcore: XDG_RUNTIME_DIR is not set")

	// ErrTruncatedControl reports that the kernel truncated an ancillary
	// control message; any file descriptors carried by it are unrecoverable.
	ErrTruncatedControl = errors.New("wlcore: ancillary control data truncated")

	// ErrInvalidControl reports an unexpected ancillary control message,
	// such as SCM_CREDENTIALS, which this server never requests.
	ErrInvalidControl = errors.New("wlcore: unexpected ancillary control message")

	// ErrMessageTooLarge reports a framed message whose declared size
	// exceeds the supported wire format or a configured read limit.
	ErrMessageTooLarge = errors.New("wlcore: message too large")

	// ErrParseFailed reports structurally invalid decoded data, such as an
	// integer that does not match any entry of its declared enum.
	ErrParseFailed = errors.New("wlcore: parse failed")

	// ErrClosed reports use of a Listener or ClientStream after Close.
	ErrClosed = errors.New("wlcore: use of closed resource")

	// ErrUnsupportedByteOrder reports a big-endian host, on which the wire
	// byte order is ambiguous. Re-exported from internal/hostorder.
	ErrUnsupportedByteOrder = hostorder.ErrUnsupportedByteOrder
)
