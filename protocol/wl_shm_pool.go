// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import "github.com/wlcore/wlcore/parse"

// ShmPoolVersion is the wl_shm_pool interface version this package models.
const ShmPoolVersion uint32 = 1

// ShmPoolRequest is the sum of every request wl_shm_pool accepts.
type ShmPoolRequest interface{ isShmPoolRequest() }

// ShmPoolCreateBufferRequest creates a wl_buffer viewing a rectangular
// region of the pool's shared memory.
type ShmPoolCreateBufferRequest struct {
	ID     parse.NewID[Buffer]
	Offset int32
	Width  int32
	Height int32
	Stride int32
	Format ShmFormat
}

func (ShmPoolCreateBufferRequest) isShmPoolRequest() {}

// ShmPoolDestroyRequest destroys the pool and its wl_buffers once the
// client no longer needs them.
type ShmPoolDestroyRequest struct{}

func (ShmPoolDestroyRequest) isShmPoolRequest() {}

// ShmPoolRequestParser returns the parser for a wl_shm_pool request opcode.
func ShmPoolRequestParser(opcode uint16) (parse.Parser[ShmPoolRequest], bool) {
	switch opcode {
	case 0: // create_buffer
		p := parse.Then(parse.NewIDOf[Buffer](), func(id parse.NewID[Buffer]) parse.Parser[ShmPoolRequest] {
			return parse.Then(parse.I32(), func(offset int32) parse.Parser[ShmPoolRequest] {
				return parse.Then(parse.I32(), func(width int32) parse.Parser[ShmPoolRequest] {
					return parse.Then(parse.I32(), func(height int32) parse.Parser[ShmPoolRequest] {
						return parse.Then(parse.I32(), func(stride int32) parse.Parser[ShmPoolRequest] {
							return parse.Some(parse.U32(), func(v uint32) (ShmPoolRequest, bool) {
								format, ok := ParseShmFormat(v)
								if !ok {
									return nil, false
								}
								return ShmPoolCreateBufferRequest{
									ID: id, Offset: offset, Width: width, Height: height,
									Stride: stride, Format: format,
								}, true
							}, parse.ErrInvalidEnum)
						})
					})
				})
			})
		})
		return p, true
	case 1: // destroy
		return parse.Pass[ShmPoolRequest](ShmPoolDestroyRequest{}), true
	default:
		return nil, false
	}
}

// wl_shm_pool emits no events.
