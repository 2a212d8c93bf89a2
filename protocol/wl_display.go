// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/wlcore/wlcore"
	"github.com/wlcore/wlcore/parse"
)

// DisplayVersion is the wl_display interface version this package models.
const DisplayVersion uint32 = 1

// DisplayRequest is the sum of every request wl_display accepts.
type DisplayRequest interface{ isDisplayRequest() }

// DisplaySyncRequest asks the server for a callback fired once all requests
// sent before it have been processed.
type DisplaySyncRequest struct {
	Callback parse.NewID[Callback]
}

func (DisplaySyncRequest) isDisplayRequest() {}

// DisplayGetRegistryRequest asks the server to bind a new wl_registry.
type DisplayGetRegistryRequest struct {
	Registry parse.NewID[Registry]
}

func (DisplayGetRegistryRequest) isDisplayRequest() {}

// DisplayRequestParser returns the parser for a wl_display request opcode,
// or ok=false if wl_display has no such opcode.
func DisplayRequestParser(opcode uint16) (p parse.Parser[DisplayRequest], ok bool) {
	switch opcode {
	case 0: // sync
		return parse.Map(parse.NewIDOf[Callback](), func(id parse.NewID[Callback]) DisplayRequest {
			return DisplaySyncRequest{Callback: id}
		}), true
	case 1: // get_registry
		return parse.Map(parse.NewIDOf[Registry](), func(id parse.NewID[Registry]) DisplayRequest {
			return DisplayGetRegistryRequest{Registry: id}
		}), true
	default:
		return nil, false
	}
}

// DisplayError is the generated enum for wl_display's "error" event code,
// the global error codes every interface's implementation-error falls back
// to when it has no interface-specific enum of its own.
type DisplayError uint32

const (
	DisplayErrorInvalidObject  DisplayError = 0
	DisplayErrorInvalidMethod  DisplayError = 1
	DisplayErrorNoMemory       DisplayError = 2
	DisplayErrorImplementation DisplayError = 3
)

// Parse looks up the DisplayError member for a wire value.
func (DisplayError) Parse(v uint32) (DisplayError, bool) {
	switch DisplayError(v) {
	case DisplayErrorInvalidObject, DisplayErrorInvalidMethod, DisplayErrorNoMemory, DisplayErrorImplementation:
		return DisplayError(v), true
	default:
		return 0, false
	}
}

// DisplayErrorEvent reports a fatal protocol error against ObjectID.
type DisplayErrorEvent struct {
	ObjectID uint32
	Code     DisplayError
	Message  string
}

// Encode serializes the error event (wl_display opcode 0) addressed to
// displayObjectID (always 1 in a conformant client, but the caller decides).
func (e DisplayErrorEvent) Encode(displayObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(32)
	enc.PutObjID(e.ObjectID)
	enc.PutUint32(uint32(e.Code))
	enc.PutString(e.Message)
	msg, _ := enc.Message(displayObjectID, 0)
	return msg
}

// DisplayDeleteIDEvent tells the client an object id is now free to reuse.
type DisplayDeleteIDEvent struct {
	ID uint32
}

// Encode serializes the delete_id event (wl_display opcode 1).
func (e DisplayDeleteIDEvent) Encode(displayObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(8)
	enc.PutUint32(e.ID)
	msg, _ := enc.Message(displayObjectID, 1)
	return msg
}
