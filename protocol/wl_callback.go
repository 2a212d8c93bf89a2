// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import "github.com/wlcore/wlcore"

// CallbackVersion is the wl_callback interface version this package models.
const CallbackVersion uint32 = 1

// wl_callback has no requests: it exists only to deliver a single done
// event, after which the server retires the object.

// CallbackDoneEvent fires once whatever the callback was tied to (a sync
// request or a frame request) has completed.
type CallbackDoneEvent struct {
	// CallbackData carries request-specific data: an event serial for
	// wl_display.sync, a timestamp for wl_surface.frame.
	CallbackData uint32
}

// Encode serializes the done event (wl_callback opcode 0).
func (e CallbackDoneEvent) Encode(callbackObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(4)
	enc.PutUint32(e.CallbackData)
	msg, _ := enc.Message(callbackObjectID, 0)
	return msg
}
