// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/wlcore/wlcore"
	"github.com/wlcore/wlcore/parse"
)

// SurfaceVersion is the wl_surface interface version this package models.
const SurfaceVersion uint32 = 4

// SurfaceRequest is the sum of every request wl_surface accepts.
type SurfaceRequest interface{ isSurfaceRequest() }

type SurfaceDestroyRequest struct{}

func (SurfaceDestroyRequest) isSurfaceRequest() {}

// SurfaceAttachRequest attaches Buffer as the surface's pending content at
// offset (X, Y). Buffer is nullable: a client detaches its surface's
// content by attaching object id 0, the representative case for a nullable
// "object" argument.
type SurfaceAttachRequest struct {
	Buffer parse.ObjID[Buffer] // 0 means "detach"
	X, Y   int32
}

func (SurfaceAttachRequest) isSurfaceRequest() {}

type SurfaceDamageRequest struct {
	X, Y, Width, Height int32
}

func (SurfaceDamageRequest) isSurfaceRequest() {}

// SurfaceFrameRequest requests a one-shot wl_callback fired at the next
// opportune time to start a new frame.
type SurfaceFrameRequest struct {
	Callback parse.NewID[Callback]
}

func (SurfaceFrameRequest) isSurfaceRequest() {}

type SurfaceCommitRequest struct{}

func (SurfaceCommitRequest) isSurfaceRequest() {}

// SurfaceRequestParser returns the parser for a wl_surface request opcode.
func SurfaceRequestParser(opcode uint16) (parse.Parser[SurfaceRequest], bool) {
	switch opcode {
	case 0: // destroy
		return parse.Pass[SurfaceRequest](SurfaceDestroyRequest{}), true
	case 1: // attach
		p := parse.Then(parse.ObjIDOf[Buffer](), func(buf parse.ObjID[Buffer]) parse.Parser[SurfaceRequest] {
			return parse.Then(parse.I32(), func(x int32) parse.Parser[SurfaceRequest] {
				return parse.Map(parse.I32(), func(y int32) SurfaceRequest {
					return SurfaceAttachRequest{Buffer: buf, X: x, Y: y}
				})
			})
		})
		return p, true
	case 2: // damage
		p := parse.Then(parse.I32(), func(x int32) parse.Parser[SurfaceRequest] {
			return parse.Then(parse.I32(), func(y int32) parse.Parser[SurfaceRequest] {
				return parse.Then(parse.I32(), func(w int32) parse.Parser[SurfaceRequest] {
					return parse.Map(parse.I32(), func(h int32) SurfaceRequest {
						return SurfaceDamageRequest{X: x, Y: y, Width: w, Height: h}
					})
				})
			})
		})
		return p, true
	case 3: // frame
		return parse.Map(parse.NewIDOf[Callback](), func(id parse.NewID[Callback]) SurfaceRequest {
			return SurfaceFrameRequest{Callback: id}
		}), true
	case 6: // commit
		return parse.Pass[SurfaceRequest](SurfaceCommitRequest{}), true
	default:
		return nil, false
	}
}

// SurfaceEnterEvent notifies the client that the surface entered Output.
type SurfaceEnterEvent struct {
	Output parse.ObjID[Output]
}

// Encode serializes the enter event (wl_surface opcode 0).
func (e SurfaceEnterEvent) Encode(surfaceObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(4)
	enc.PutObjID(uint32(e.Output))
	msg, _ := enc.Message(surfaceObjectID, 0)
	return msg
}

// SurfaceLeaveEvent notifies the client that the surface left Output.
type SurfaceLeaveEvent struct {
	Output parse.ObjID[Output]
}

// Encode serializes the leave event (wl_surface opcode 1).
func (e SurfaceLeaveEvent) Encode(surfaceObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(4)
	enc.PutObjID(uint32(e.Output))
	msg, _ := enc.Message(surfaceObjectID, 1)
	return msg
}
