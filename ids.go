// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

import "sync/atomic"

// ListenerID uniquely identifies a Listener for the lifetime of the process.
type ListenerID uint64

// ClientID uniquely identifies a ClientStream for the lifetime of the
// process, and is stable even across many listeners.
type ClientID uint64

var (
	nextListenerID atomic.Uint64
	nextClientID   atomic.Uint64
)

func allocListenerID() ListenerID {
	return ListenerID(nextListenerID.Add(1))
}

func allocClientID() ClientID {
	return ClientID(nextClientID.Add(1))
}
