// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import "github.com/wlcore/wlcore"

// PointerVersion is the wl_pointer interface version this package models.
const PointerVersion uint32 = 5

// PointerButtonState is the generated enum for a wl_pointer.button event's
// pressed/released state.
type PointerButtonState uint32

const (
	PointerButtonStateReleased PointerButtonState = 0
	PointerButtonStatePressed  PointerButtonState = 1
)

// ParsePointerButtonState looks up the PointerButtonState member for a wire
// value.
func ParsePointerButtonState(v uint32) (PointerButtonState, bool) {
	switch PointerButtonState(v) {
	case PointerButtonStateReleased, PointerButtonStatePressed:
		return PointerButtonState(v), true
	default:
		return 0, false
	}
}

// wl_pointer's requests (set_cursor, release) carry no argument kind not
// already exercised elsewhere; this package models only its events, which
// are the representative case for the "fixed" (24.8 point) argument type.

// PointerMotionEvent reports the surface-local pointer coordinates at Time.
type PointerMotionEvent struct {
	Time int32
	X, Y float64 // wire-native 24.8 fixed point, decoded to float64
}

// Encode serializes the motion event (wl_pointer opcode 0).
func (e PointerMotionEvent) Encode(pointerObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(12)
	enc.PutUint32(uint32(e.Time))
	enc.PutFixed(e.X)
	enc.PutFixed(e.Y)
	msg, _ := enc.Message(pointerObjectID, 0)
	return msg
}

// PointerButtonEvent reports a pointer button press or release.
type PointerButtonEvent struct {
	Serial, Time, Button uint32
	State                PointerButtonState
}

// Encode serializes the button event (wl_pointer opcode 1).
func (e PointerButtonEvent) Encode(pointerObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(16)
	enc.PutUint32(e.Serial)
	enc.PutUint32(e.Time)
	enc.PutUint32(e.Button)
	enc.PutUint32(uint32(e.State))
	msg, _ := enc.Message(pointerObjectID, 1)
	return msg
}
