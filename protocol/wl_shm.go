// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/wlcore/wlcore"
	"github.com/wlcore/wlcore/parse"
)

// ShmVersion is the wl_shm interface version this package models.
const ShmVersion uint32 = 1

// ShmFormat is the generated enum for the pixel formats a wl_shm_pool's
// buffers may declare.
type ShmFormat uint32

const (
	ShmFormatARGB8888 ShmFormat = 0
	ShmFormatXRGB8888 ShmFormat = 1
)

// ParseShmFormat looks up the ShmFormat member for a wire value.
func ParseShmFormat(v uint32) (ShmFormat, bool) {
	switch ShmFormat(v) {
	case ShmFormatARGB8888, ShmFormatXRGB8888:
		return ShmFormat(v), true
	default:
		return 0, false
	}
}

// ShmRequest is the sum of every request wl_shm accepts.
type ShmRequest interface{ isShmRequest() }

// ShmCreatePoolRequest creates a wl_shm_pool backed by the shared memory
// file descriptor FD, of Size bytes. This is the representative case for a
// request argument of type "fd": the descriptor itself never appears in the
// message body, only in the SCM_RIGHTS ancillary data delivered alongside
// it, so its parser consumes zero body bytes (parse.FD).
type ShmCreatePoolRequest struct {
	ID   parse.NewID[ShmPool]
	FD   int
	Size int32
}

func (ShmCreatePoolRequest) isShmRequest() {}

// ShmRequestParser returns the parser for a wl_shm request opcode.
func ShmRequestParser(opcode uint16) (parse.Parser[ShmRequest], bool) {
	switch opcode {
	case 0: // create_pool
		p := parse.Then(parse.NewIDOf[ShmPool](), func(id parse.NewID[ShmPool]) parse.Parser[ShmRequest] {
			return parse.Then(parse.FD(), func(fd int) parse.Parser[ShmRequest] {
				return parse.Map(parse.I32(), func(size int32) ShmRequest {
					return ShmCreatePoolRequest{ID: id, FD: fd, Size: size}
				})
			})
		})
		return p, true
	default:
		return nil, false
	}
}

// ShmFormatEvent advertises a pixel format this wl_shm instance supports.
type ShmFormatEvent struct {
	Format ShmFormat
}

// Encode serializes the format event (wl_shm opcode 0).
func (e ShmFormatEvent) Encode(shmObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(4)
	enc.PutUint32(uint32(e.Format))
	msg, _ := enc.Message(shmObjectID, 0)
	return msg
}
