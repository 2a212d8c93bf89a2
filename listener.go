// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/wlcore/wlcore/internal/hostorder"
)

// maxUnixPathLen is the size of sun_path on Linux, including the trailing
// NUL the kernel appends. Longer paths must fail, not silently truncate.
const maxUnixPathLen = 108

const listenBacklog = 20

// Listener owns a listening Unix-domain socket bound under a race-free
// advisory lock, plus the lockfile itself. Destroying it shuts down the
// listening descriptor and best-effort unlinks both paths.
//
// A Listener is not safe for concurrent use; Accept, Close, and ShortName
// are the only methods callers should call after construction.
type Listener struct {
	id        ListenerID
	sockFD    int
	lock      *AdvisoryLock
	sockPath  string
	lockPath  string
	shortName string
	closed    bool
	opts      Options
}

// BindPath binds a listening socket at the given path, guarded by an
// advisory lock on path+".lock". If a stale socket file exists at path (left
// by a crashed server) it is unlinked first — safe because the lock is held.
func BindPath(path string, opts ...Option) (*Listener, error) {
	if err := hostorder.Require(); err != nil {
		return nil, err
	}

	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}

	if err := validateSocketPath(path); err != nil {
		return nil, err
	}

	lockPath := path + ".lock"
	lock, err := AcquireLock(lockPath)
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Lstat(path); statErr == nil {
		if err := unix.Unlink(path); err != nil {
			lock.Close()
			return nil, err
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		lock.Close()
		return nil, statErr
	}

	sockFD, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		lock.Close()
		return nil, err
	}

	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Bind(sockFD, addr); err != nil {
		unix.Close(sockFD)
		lock.Close()
		if errors.Is(err, unix.EADDRINUSE) {
			return nil, ErrAddrInUse
		}
		return nil, err
	}

	if err := unix.Listen(sockFD, listenBacklog); err != nil {
		unix.Close(sockFD)
		lock.Close()
		return nil, err
	}

	return &Listener{
		id:       allocListenerID(),
		sockFD:   sockFD,
		lock:     lock,
		sockPath: path,
		lockPath: lockPath,
		opts:     o,
	}, nil
}

// TryRange binds the first free `$XDG_RUNTIME_DIR/wayland-N` name for N in
// [start, end]. AddrInUse and lock contention on a candidate name are
// treated as "try the next N"; any other error is fatal. On success the
// short name (e.g. "wayland-1") is remembered and returned by ShortName.
func TryRange(start, end int, opts ...Option) (*Listener, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, ErrNoRuntimeDir
	}

	for n := start; n <= end; n++ {
		name := fmt.Sprintf("wayland-%d", n)
		path := filepath.Join(runtimeDir, name)

		l, err := BindPath(path, opts...)
		switch {
		case err == nil:
			l.shortName = name
			return l, nil
		case errors.Is(err, ErrAddrInUse), errors.Is(err, ErrLockHeld):
			continue
		default:
			return nil, err
		}
	}
	return nil, ErrAlreadyInUse
}

// ID returns the process-wide identifier assigned to this listener.
func (l *Listener) ID() ListenerID { return l.id }

// ShortName returns the "wayland-N" name remembered by TryRange, or "" if
// this listener was constructed via BindPath directly.
func (l *Listener) ShortName() string { return l.shortName }

// Accept accepts one pending client connection. It returns ok=false (not an
// error) if no connection is currently pending. By default this is a single
// non-blocking attempt; WithBlock/WithRetryDelay change how it reacts to
// "would block" (see Options.RetryDelay).
func (l *Listener) Accept() (*ClientStream, bool, error) {
	if l.closed {
		return nil, false, ErrClosed
	}

	for {
		connFD, _, err := unix.Accept4(l.sockFD, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				if l.opts.waitOnceOnWouldBlock() {
					continue
				}
				return nil, false, nil
			}
			return nil, false, err
		}
		return newClientStream(connFD, l.id, l.opts), true, nil
	}
}

// Close shuts down the listening socket and best-effort unlinks the socket
// and lockfile paths. Failures during cleanup are silently ignored.
func (l *Listener) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	unix.Shutdown(l.sockFD, unix.SHUT_RDWR)
	unix.Close(l.sockFD)
	unix.Unlink(l.sockPath)
	unix.Unlink(l.lockPath)
	l.lock.Close()
	return nil
}

func validateSocketPath(path string) error {
	if strings.IndexByte(path, 0) >= 0 {
		return ErrInvalidPath
	}
	// +1 for the NUL terminator the kernel appends to sun_path.
	if len(path)+1 > maxUnixPathLen {
		return ErrInvalidPath
	}
	return nil
}
