// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import (
	"errors"

	"golang.org/x/sys/unix"
)

// lockFileMode is owner read/write, group read. The file's contents are
// irrelevant; only its inode identity and advisory lock matter.
const lockFileMode = 0o640

// AdvisoryLock holds a race-free POSIX advisory whole-file exclusive
// non-blocking lock on a named file. The lock is held for the lifetime of
// the handle; Close releases it and closes the file descriptor, but does
// not remove the path.
//
// The lock is per-open-file-description, so it is released automatically on
// process exit even if the owning program crashes — there is no cleanup
// step that must run for correctness.
type AdvisoryLock struct {
	fd int
}

// AcquireLock creates (or reuses) the lockfile at path and holds an
// exclusive, non-blocking whole-file lock for the returned handle's
// lifetime.
//
// Race-safe acquisition algorithm: open CREATE|RDWR|TRUNC, flock exclusive
// non-blocking, stat the pathname, fstat the held descriptor, and compare
// (device, inode). A mismatch means a concurrent process unlinked and
// recreated the file between our open and lock; the attempt restarts. This
// loop is required: without it, two competing servers can each lock a
// distinct inode sharing the same path.
func AcquireLock(path string) (*AdvisoryLock, error) {
	for {
		fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR|unix.O_TRUNC, lockFileMode)
		if err != nil {
			return nil, err
		}

		if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
			unix.Close(fd)
			if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
				return nil, ErrLockHeld
			}
			return nil, err
		}

		var pathStat unix.Stat_t
		if err := unix.Stat(path, &pathStat); err != nil {
			// The path no longer resolves: a concurrent tearer-down unlinked
			// the file we just locked. Drop this attempt and restart.
			unix.Close(fd)
			continue
		}

		var fdStat unix.Stat_t
		if err := unix.Fstat(fd, &fdStat); err != nil {
			unix.Close(fd)
			return nil, err
		}

		if pathStat.Dev != fdStat.Dev || pathStat.Ino != fdStat.Ino {
			// Another process recreated the file between our open and lock.
			unix.Close(fd)
			continue
		}

		return &AdvisoryLock{fd: fd}, nil
	}
}

// Close releases the lock and closes the underlying file descriptor. The
// lockfile path itself is left on disk; the owning Listener is responsible
// for unlinking it.
func (l *AdvisoryLock) Close() error {
	if l.fd < 0 {
		return nil
	}
	err := unix.Close(l.fd)
	l.fd = -1
	return err
}

// Fd returns the underlying file descriptor, for identity-comparison tests
// and diagnostics. The caller must not close it directly; use Close.
func (l *AdvisoryLock) Fd() int { return l.fd }
