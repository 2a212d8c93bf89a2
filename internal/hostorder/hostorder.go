// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hostorder resolves the host's native byte order and enforces the
// little-endian-only wire convention that wlcore adopts for Wayland framing.
//
// The Wayland wire protocol is specified as "host byte order", which in
// practice means little-endian on every common deployment platform. Rather
// than guess at big-endian semantics no real compositor or client exercises,
// wlcore refuses to operate on a big-endian host: see Require.
package hostorder

import "errors"

// ErrUnsupportedByteOrder is returned by Require on a big-endian host.
var ErrUnsupportedByteOrder = errors.New("wlcore: big-endian hosts are not supported; Wayland wire byte order is ambiguous on this platform")

// LittleEndian reports whether the host's native byte order is little-endian.
// Build-tag-specific files supply the answer for known little- and
// big-endian Go ports; hostorder_fallback.go provides a runtime-detected
// answer for anything else.
var LittleEndian = littleEndian()

// Require returns ErrUnsupportedByteOrder unless the host is little-endian.
func Require() error {
	if !LittleEndian {
		return ErrUnsupportedByteOrder
	}
	return nil
}
