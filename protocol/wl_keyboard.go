// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/wlcore/wlcore"
	"github.com/wlcore/wlcore/parse"
)

// KeyboardVersion is the wl_keyboard interface version this package models.
const KeyboardVersion uint32 = 5

// wl_keyboard has no requests of its own beyond release, which carries no
// argument; it exists here purely to demonstrate its two distinctive event
// argument kinds: a file descriptor delivered with an event (keymap), and
// an opaque byte array (enter's pressed-keys list).

// KeyboardKeymapEvent delivers the compiled keymap as a shared-memory file
// the client should mmap. This is the representative case for an event
// argument of type "fd".
type KeyboardKeymapEvent struct {
	Format uint32
	FD     int
	Size   uint32
}

// Encode serializes the keymap event (wl_keyboard opcode 0). The returned
// fds must be sent alongside the message via SCM_RIGHTS
// (wlcore.ClientStream.Send's second argument).
func (e KeyboardKeymapEvent) Encode(keyboardObjectID uint32) (wlcore.RawMessage, []int) {
	enc := NewArgEncoder(8)
	enc.PutUint32(e.Format)
	enc.PutFD(e.FD)
	enc.PutUint32(e.Size)
	return enc.Message(keyboardObjectID, 0)
}

// KeyboardEnterEvent notifies the client that Surface gained keyboard
// focus, along with the keycodes already held down. This is the
// representative case for an "array" argument.
type KeyboardEnterEvent struct {
	Serial  uint32
	Surface parse.ObjID[Surface]
	Keys    []byte
}

// Encode serializes the enter event (wl_keyboard opcode 1).
func (e KeyboardEnterEvent) Encode(keyboardObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(16 + len(e.Keys))
	enc.PutUint32(e.Serial)
	enc.PutObjID(uint32(e.Surface))
	enc.PutArray(e.Keys)
	msg, _ := enc.Message(keyboardObjectID, 1)
	return msg
}
