// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import "github.com/wlcore/wlcore/parse"

// CompositorVersion is the wl_compositor interface version this package models.
const CompositorVersion uint32 = 4

// CompositorRequest is the sum of every request wl_compositor accepts.
type CompositorRequest interface{ isCompositorRequest() }

// CompositorCreateSurfaceRequest creates a new wl_surface.
type CompositorCreateSurfaceRequest struct {
	ID parse.NewID[Surface]
}

func (CompositorCreateSurfaceRequest) isCompositorRequest() {}

// CompositorCreateRegionRequest creates a new wl_region.
type CompositorCreateRegionRequest struct {
	ID parse.NewID[Region]
}

func (CompositorCreateRegionRequest) isCompositorRequest() {}

// CompositorRequestParser returns the parser for a wl_compositor request opcode.
func CompositorRequestParser(opcode uint16) (parse.Parser[CompositorRequest], bool) {
	switch opcode {
	case 0: // create_surface
		return parse.Map(parse.NewIDOf[Surface](), func(id parse.NewID[Surface]) CompositorRequest {
			return CompositorCreateSurfaceRequest{ID: id}
		}), true
	case 1: // create_region
		return parse.Map(parse.NewIDOf[Region](), func(id parse.NewID[Region]) CompositorRequest {
			return CompositorCreateRegionRequest{ID: id}
		}), true
	default:
		return nil, false
	}
}

// wl_compositor emits no events.
